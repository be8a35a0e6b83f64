package tickets

import (
	"context"
	"errors"
	"time"

	"github.com/faeflux/faeflux-one/model"
	"gorm.io/gorm"
)

var ErrTicketNotFound = errors.New("ticket not found")

type CreateTicketOptions struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Priority     model.TicketPriority `json:"priority"`
	AssetID      *uint                `json:"assetId"`
	AssignedToID *uint                `json:"assignedToId"`
}

type TicketPatch struct {
	Title        *string               `json:"title"`
	Description  *string               `json:"description"`
	Status       *model.TicketStatus   `json:"status"`
	Priority     *model.TicketPriority `json:"priority"`
	AssetID      *uint                 `json:"assetId"`
	AssignedToID *uint                 `json:"assignedToId"`
}

type TicketService struct {
	ticketRepo TicketRepository
}

func NewTicketService(ticketRepo TicketRepository) *TicketService {
	return &TicketService{ticketRepo: ticketRepo}
}

func (s *TicketService) GetTicketByID(ctx context.Context, ticketID uint) (*model.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTicketNotFound
	}
	return ticket, err
}

func (s *TicketService) ListTickets(ctx context.Context, skip int, limit int) ([]*model.Ticket, error) {
	return s.ticketRepo.List(ctx, skip, limit)
}

func (s *TicketService) CreateTicket(ctx context.Context, opts CreateTicketOptions, createdByID uint) (*model.Ticket, error) {
	priority := opts.Priority
	if priority == "" {
		priority = model.TicketPriorityMedium
	}
	ticket := model.Ticket{
		Title:        opts.Title,
		Description:  opts.Description,
		Status:       model.TicketStatusOpen,
		Priority:     priority,
		AssetID:      opts.AssetID,
		AssignedToID: opts.AssignedToID,
		CreatedByID:  createdByID,
	}
	if err := s.ticketRepo.Create(ctx, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// UpdateTicket applies only the fields explicitly present in patch. Moving a
// ticket into resolved or closed stamps ResolvedAt.
func (s *TicketService) UpdateTicket(ctx context.Context, ticketID uint, patch TicketPatch) (*model.Ticket, error) {
	columns := map[string]interface{}{}
	if patch.Title != nil {
		columns["title"] = *patch.Title
	}
	if patch.Description != nil {
		columns["description"] = *patch.Description
	}
	if patch.Status != nil {
		columns["status"] = *patch.Status
		if *patch.Status == model.TicketStatusResolved || *patch.Status == model.TicketStatusClosed {
			columns["resolved_at"] = time.Now()
		}
	}
	if patch.Priority != nil {
		columns["priority"] = *patch.Priority
	}
	if patch.AssetID != nil {
		columns["asset_id"] = *patch.AssetID
	}
	if patch.AssignedToID != nil {
		columns["assigned_to_id"] = *patch.AssignedToID
	}
	if len(columns) > 0 {
		affected, err := s.ticketRepo.Updates(ctx, ticketID, columns)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, ErrTicketNotFound
		}
	}
	return s.GetTicketByID(ctx, ticketID)
}

func (s *TicketService) DeleteTicket(ctx context.Context, ticketID uint) error {
	affected, err := s.ticketRepo.Delete(ctx, ticketID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTicketNotFound
	}
	return nil
}
