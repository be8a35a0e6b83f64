package tickets

import (
	"context"

	"github.com/faeflux/faeflux-one/model"
	"gorm.io/gorm"
)

type TicketRepository interface {
	GetByID(ctx context.Context, ticketID uint) (*model.Ticket, error)
	List(ctx context.Context, skip int, limit int) ([]*model.Ticket, error)
	Create(ctx context.Context, ticket *model.Ticket) error
	Updates(ctx context.Context, ticketID uint, columns map[string]interface{}) (int64, error)
	Delete(ctx context.Context, ticketID uint) (int64, error)
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) GetByID(ctx context.Context, ticketID uint) (*model.Ticket, error) {
	var ticket model.Ticket
	if err := r.db.WithContext(ctx).First(&ticket, "id = ?", ticketID).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, skip int, limit int) ([]*model.Ticket, error) {
	var tickets []*model.Ticket
	err := r.db.WithContext(ctx).Order("created_at DESC").Offset(skip).Limit(limit).Find(&tickets).Error
	return tickets, err
}

func (r *ticketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *ticketRepository) Updates(ctx context.Context, ticketID uint, columns map[string]interface{}) (int64, error) {
	ret := r.db.WithContext(ctx).Model(&model.Ticket{}).Where("id = ?", ticketID).Updates(columns)
	return ret.RowsAffected, ret.Error
}

func (r *ticketRepository) Delete(ctx context.Context, ticketID uint) (int64, error) {
	ret := r.db.WithContext(ctx).Delete(&model.Ticket{}, "id = ?", ticketID)
	return ret.RowsAffected, ret.Error
}
