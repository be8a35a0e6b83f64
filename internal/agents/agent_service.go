package agents

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/faeflux/faeflux-one/model"
	"github.com/faeflux/faeflux-one/params"
	"gorm.io/gorm"
)

type HeartbeatRequest struct {
	Hostname  string `json:"hostname"`
	OSType    string `json:"osType"`
	OSVersion string `json:"osVersion"`
	IPAddress string `json:"ipAddress"`
}

// AgentPatch carries an explicit field-by-field delta for the authenticated
// update endpoint; only non-nil fields are applied.
type AgentPatch struct {
	Name      *string            `json:"name"`
	OSVersion *string            `json:"osVersion"`
	IPAddress *string            `json:"ipAddress"`
	Status    *model.AgentStatus `json:"status"`
	SiteID    *uint              `json:"siteId"`
}

type AgentService struct {
	agentRepo AgentRepository
}

func NewAgentService(agentRepo AgentRepository) *AgentService {
	return &AgentService{agentRepo: agentRepo}
}

func (s *AgentService) GetAgentByID(ctx context.Context, agentID uint) (*model.Agent, error) {
	agent, err := s.agentRepo.GetByID(ctx, agentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAgentNotFound
	}
	return agent, err
}

func (s *AgentService) ListAgents(ctx context.Context, skip int, limit int) ([]*model.Agent, error) {
	return s.agentRepo.List(ctx, skip, limit)
}

// Heartbeat upserts the agent row keyed by hostname. The reconciler does no
// in-memory locking: the unique index on hostname is what serializes
// concurrent first-heartbeats, and a losing insert retries as an update.
func (s *AgentService) Heartbeat(ctx context.Context, req HeartbeatRequest) (*model.Agent, error) {
	for attempt := 0; ; attempt++ {
		agent, err := s.agentRepo.GetByHostname(ctx, req.Hostname)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			now := time.Now()
			created := model.Agent{
				Name:          req.Hostname,
				Hostname:      req.Hostname,
				OSType:        req.OSType,
				OSVersion:     req.OSVersion,
				IPAddress:     req.IPAddress,
				Status:        model.AgentStatusOnline,
				LastHeartbeat: &now,
			}
			err = s.agentRepo.Create(ctx, &created)
			if errors.Is(err, gorm.ErrDuplicatedKey) && attempt < params.AgentUpsertRetries {
				slog.Debug("Lost first-heartbeat race, retrying as update", "hostname", req.Hostname)
				continue
			}
			if err != nil {
				return nil, err
			}
			return &created, nil
		}
		if err != nil {
			return nil, err
		}
		return s.refresh(ctx, agent, req)
	}
}

func (s *AgentService) refresh(ctx context.Context, agent *model.Agent, req HeartbeatRequest) (*model.Agent, error) {
	now := time.Now()
	columns := map[string]interface{}{
		"os_type":        req.OSType,
		"status":         model.AgentStatusOnline,
		"last_heartbeat": now,
	}
	// Blank values keep whatever the previous heartbeat reported.
	if req.OSVersion != "" {
		columns["os_version"] = req.OSVersion
	}
	if req.IPAddress != "" {
		columns["ip_address"] = req.IPAddress
	}
	if _, err := s.agentRepo.Updates(ctx, agent.ID, columns); err != nil {
		return nil, err
	}
	return s.agentRepo.GetByID(ctx, agent.ID)
}

// SubmitInventory overwrites the agent's inventory blob wholesale. An agent
// must have heartbeated before; an unknown hostname is a hard error and
// never creates a row.
func (s *AgentService) SubmitInventory(ctx context.Context, hostname string, inventory model.JSONMap) error {
	agent, err := s.agentRepo.GetByHostname(ctx, hostname)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAgentNotFound
	}
	if err != nil {
		return err
	}
	_, err = s.agentRepo.Updates(ctx, agent.ID, map[string]interface{}{
		"inventory_data": inventory,
	})
	return err
}

// UpdateAgent applies only the fields explicitly present in patch.
func (s *AgentService) UpdateAgent(ctx context.Context, agentID uint, patch AgentPatch) (*model.Agent, error) {
	columns := map[string]interface{}{}
	if patch.Name != nil {
		columns["name"] = *patch.Name
	}
	if patch.OSVersion != nil {
		columns["os_version"] = *patch.OSVersion
	}
	if patch.IPAddress != nil {
		columns["ip_address"] = *patch.IPAddress
	}
	if patch.Status != nil {
		columns["status"] = *patch.Status
	}
	if patch.SiteID != nil {
		columns["site_id"] = *patch.SiteID
	}
	if len(columns) > 0 {
		affected, err := s.agentRepo.Updates(ctx, agentID, columns)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, ErrAgentNotFound
		}
	}
	return s.GetAgentByID(ctx, agentID)
}

func (s *AgentService) DeleteAgent(ctx context.Context, agentID uint) error {
	affected, err := s.agentRepo.Delete(ctx, agentID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAgentNotFound
	}
	return nil
}
