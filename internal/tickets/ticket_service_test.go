package tickets

import (
	"context"
	"errors"
	"testing"

	"github.com/faeflux/faeflux-one/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestTicketService(t *testing.T) *TicketService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("access pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewTicketService(NewTicketRepository(db))
}

func TestCreateTicketDefaults(t *testing.T) {
	svc := newTestTicketService(t)

	ticket, err := svc.CreateTicket(context.Background(), CreateTicketOptions{
		Title:       "Printer on fire",
		Description: "Third floor printer emits smoke.",
	}, 7)
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}
	if ticket.Status != model.TicketStatusOpen {
		t.Errorf("new ticket should be open, got %q", ticket.Status)
	}
	if ticket.Priority != model.TicketPriorityMedium {
		t.Errorf("default priority should be medium, got %q", ticket.Priority)
	}
	if ticket.CreatedByID != 7 {
		t.Errorf("creator not recorded, got %d", ticket.CreatedByID)
	}
	if ticket.ResolvedAt != nil {
		t.Error("new ticket should not be resolved")
	}
}

func TestResolvingTicketStampsResolvedAt(t *testing.T) {
	svc := newTestTicketService(t)
	ctx := context.Background()

	ticket, err := svc.CreateTicket(ctx, CreateTicketOptions{
		Title:       "Printer on fire",
		Description: "Third floor printer emits smoke.",
		Priority:    model.TicketPriorityHigh,
	}, 7)
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}

	inProgress := model.TicketStatusInProgress
	updated, err := svc.UpdateTicket(ctx, ticket.ID, TicketPatch{Status: &inProgress})
	if err != nil {
		t.Fatalf("update ticket: %v", err)
	}
	if updated.ResolvedAt != nil {
		t.Error("in_progress should not stamp resolved_at")
	}

	resolved := model.TicketStatusResolved
	updated, err = svc.UpdateTicket(ctx, ticket.ID, TicketPatch{Status: &resolved})
	if err != nil {
		t.Fatalf("resolve ticket: %v", err)
	}
	if updated.ResolvedAt == nil {
		t.Error("resolving should stamp resolved_at")
	}
	if updated.Priority != model.TicketPriorityHigh {
		t.Errorf("untouched priority changed to %q", updated.Priority)
	}
}

func TestTicketNotFound(t *testing.T) {
	svc := newTestTicketService(t)
	ctx := context.Background()

	if _, err := svc.GetTicketByID(ctx, 999); !errors.Is(err, ErrTicketNotFound) {
		t.Errorf("expected ErrTicketNotFound, got %v", err)
	}
	title := "renamed"
	if _, err := svc.UpdateTicket(ctx, 999, TicketPatch{Title: &title}); !errors.Is(err, ErrTicketNotFound) {
		t.Errorf("expected ErrTicketNotFound, got %v", err)
	}
	if err := svc.DeleteTicket(ctx, 999); !errors.Is(err, ErrTicketNotFound) {
		t.Errorf("expected ErrTicketNotFound, got %v", err)
	}
}
