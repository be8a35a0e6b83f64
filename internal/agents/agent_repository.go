package agents

import (
	"context"

	"github.com/faeflux/faeflux-one/model"
	"gorm.io/gorm"
)

type AgentRepository interface {
	GetByID(ctx context.Context, agentID uint) (*model.Agent, error)
	GetByHostname(ctx context.Context, hostname string) (*model.Agent, error)
	List(ctx context.Context, skip int, limit int) ([]*model.Agent, error)
	Create(ctx context.Context, agent *model.Agent) error
	Updates(ctx context.Context, agentID uint, columns map[string]interface{}) (int64, error)
	Delete(ctx context.Context, agentID uint) (int64, error)
}

type agentRepository struct {
	db *gorm.DB
}

func NewAgentRepository(db *gorm.DB) AgentRepository {
	return &agentRepository{db: db}
}

func (r *agentRepository) GetByID(ctx context.Context, agentID uint) (*model.Agent, error) {
	var agent model.Agent
	if err := r.db.WithContext(ctx).First(&agent, "id = ?", agentID).Error; err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *agentRepository) GetByHostname(ctx context.Context, hostname string) (*model.Agent, error) {
	var agent model.Agent
	if err := r.db.WithContext(ctx).First(&agent, "hostname = ?", hostname).Error; err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *agentRepository) List(ctx context.Context, skip int, limit int) ([]*model.Agent, error) {
	var agents []*model.Agent
	err := r.db.WithContext(ctx).Order("hostname").Offset(skip).Limit(limit).Find(&agents).Error
	return agents, err
}

func (r *agentRepository) Create(ctx context.Context, agent *model.Agent) error {
	return r.db.WithContext(ctx).Create(agent).Error
}

func (r *agentRepository) Updates(ctx context.Context, agentID uint, columns map[string]interface{}) (int64, error) {
	ret := r.db.WithContext(ctx).Model(&model.Agent{}).Where("id = ?", agentID).Updates(columns)
	return ret.RowsAffected, ret.Error
}

func (r *agentRepository) Delete(ctx context.Context, agentID uint) (int64, error) {
	ret := r.db.WithContext(ctx).Delete(&model.Agent{}, "id = ?", agentID)
	return ret.RowsAffected, ret.Error
}
