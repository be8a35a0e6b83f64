package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/faeflux/faeflux-one/model"
	"gorm.io/gorm"
)

// fakeAgentRepository is an in-memory AgentRepository. raceOnCreate simulates
// a concurrent writer winning the insert on the hostname unique index.
type fakeAgentRepository struct {
	nextID       uint
	byID         map[uint]*model.Agent
	raceOnCreate bool
}

func newFakeAgentRepository() *fakeAgentRepository {
	return &fakeAgentRepository{nextID: 1, byID: map[uint]*model.Agent{}}
}

func (r *fakeAgentRepository) GetByID(ctx context.Context, agentID uint) (*model.Agent, error) {
	agent, ok := r.byID[agentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *agent
	return &copied, nil
}

func (r *fakeAgentRepository) GetByHostname(ctx context.Context, hostname string) (*model.Agent, error) {
	for _, agent := range r.byID {
		if agent.Hostname == hostname {
			copied := *agent
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAgentRepository) List(ctx context.Context, skip int, limit int) ([]*model.Agent, error) {
	var out []*model.Agent
	for _, agent := range r.byID {
		copied := *agent
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeAgentRepository) insert(agent *model.Agent) {
	agent.ID = r.nextID
	r.nextID++
	copied := *agent
	r.byID[agent.ID] = &copied
}

func (r *fakeAgentRepository) Create(ctx context.Context, agent *model.Agent) error {
	if r.raceOnCreate {
		r.raceOnCreate = false
		rival := *agent
		rival.OSVersion = "rival-version"
		r.insert(&rival)
		return gorm.ErrDuplicatedKey
	}
	for _, existing := range r.byID {
		if existing.Hostname == agent.Hostname {
			return gorm.ErrDuplicatedKey
		}
	}
	r.insert(agent)
	return nil
}

func (r *fakeAgentRepository) Updates(ctx context.Context, agentID uint, columns map[string]interface{}) (int64, error) {
	agent, ok := r.byID[agentID]
	if !ok {
		return 0, nil
	}
	for column, value := range columns {
		switch column {
		case "name":
			agent.Name = value.(string)
		case "os_type":
			agent.OSType = value.(string)
		case "os_version":
			agent.OSVersion = value.(string)
		case "ip_address":
			agent.IPAddress = value.(string)
		case "status":
			agent.Status = value.(model.AgentStatus)
		case "site_id":
			siteID := value.(uint)
			agent.SiteID = &siteID
		case "last_heartbeat":
		case "inventory_data":
			agent.InventoryData = value.(model.JSONMap)
		}
	}
	return 1, nil
}

func (r *fakeAgentRepository) Delete(ctx context.Context, agentID uint) (int64, error) {
	if _, ok := r.byID[agentID]; !ok {
		return 0, nil
	}
	delete(r.byID, agentID)
	return 1, nil
}

func TestHeartbeatCreatesAgent(t *testing.T) {
	repo := newFakeAgentRepository()
	svc := NewAgentService(repo)

	agent, err := svc.Heartbeat(context.Background(), HeartbeatRequest{
		Hostname:  "ws-0042",
		OSType:    "windows",
		OSVersion: "11",
		IPAddress: "10.0.0.42",
	})
	if err != nil {
		t.Fatalf("heartbeat: %v", err)
	}
	if agent.ID == 0 {
		t.Error("created agent has no id")
	}
	if agent.Name != "ws-0042" {
		t.Errorf("name should default to hostname, got %q", agent.Name)
	}
	if agent.Status != model.AgentStatusOnline {
		t.Errorf("new agent should be online, got %q", agent.Status)
	}
	if agent.LastHeartbeat == nil {
		t.Error("last heartbeat not stamped")
	}
}

func TestHeartbeatUpdatesExisting(t *testing.T) {
	repo := newFakeAgentRepository()
	svc := NewAgentService(repo)
	ctx := context.Background()

	first, err := svc.Heartbeat(ctx, HeartbeatRequest{Hostname: "ws-0042", OSType: "windows", OSVersion: "10"})
	if err != nil {
		t.Fatalf("first heartbeat: %v", err)
	}
	second, err := svc.Heartbeat(ctx, HeartbeatRequest{Hostname: "ws-0042", OSType: "windows", OSVersion: "11"})
	if err != nil {
		t.Fatalf("second heartbeat: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("heartbeat created a second row: %d vs %d", second.ID, first.ID)
	}
	if second.OSVersion != "11" {
		t.Errorf("os version not updated, got %q", second.OSVersion)
	}
}

func TestHeartbeatBlankFieldsPreserved(t *testing.T) {
	repo := newFakeAgentRepository()
	svc := NewAgentService(repo)
	ctx := context.Background()

	if _, err := svc.Heartbeat(ctx, HeartbeatRequest{Hostname: "ws-0042", OSType: "windows", OSVersion: "11", IPAddress: "10.0.0.42"}); err != nil {
		t.Fatalf("first heartbeat: %v", err)
	}
	agent, err := svc.Heartbeat(ctx, HeartbeatRequest{Hostname: "ws-0042", OSType: "windows"})
	if err != nil {
		t.Fatalf("second heartbeat: %v", err)
	}
	if agent.OSVersion != "11" {
		t.Errorf("blank osVersion overwrote %q with %q", "11", agent.OSVersion)
	}
	if agent.IPAddress != "10.0.0.42" {
		t.Errorf("blank ipAddress overwrote stored value, got %q", agent.IPAddress)
	}
}

func TestHeartbeatLosingRaceRetriesAsUpdate(t *testing.T) {
	repo := newFakeAgentRepository()
	repo.raceOnCreate = true
	svc := NewAgentService(repo)

	agent, err := svc.Heartbeat(context.Background(), HeartbeatRequest{
		Hostname:  "ws-0042",
		OSType:    "windows",
		OSVersion: "11",
	})
	if err != nil {
		t.Fatalf("heartbeat after lost race: %v", err)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected a single row after the race, got %d", len(repo.byID))
	}
	if agent.OSVersion != "11" {
		t.Errorf("retry did not update the rival row, os version %q", agent.OSVersion)
	}
}

func TestSubmitInventoryRequiresHeartbeat(t *testing.T) {
	repo := newFakeAgentRepository()
	svc := NewAgentService(repo)
	ctx := context.Background()

	err := svc.SubmitInventory(ctx, "never-seen", model.JSONMap{"cpu": "i7"})
	if !errors.Is(err, ErrAgentNotFound) {
		t.Fatalf("expected ErrAgentNotFound, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Error("inventory submission created a row")
	}
}

func TestSubmitInventoryOverwrites(t *testing.T) {
	repo := newFakeAgentRepository()
	svc := NewAgentService(repo)
	ctx := context.Background()

	agent, err := svc.Heartbeat(ctx, HeartbeatRequest{Hostname: "ws-0042", OSType: "linux"})
	if err != nil {
		t.Fatalf("heartbeat: %v", err)
	}
	if err := svc.SubmitInventory(ctx, "ws-0042", model.JSONMap{"cpu": "i7", "ram": "32GB"}); err != nil {
		t.Fatalf("first inventory: %v", err)
	}
	if err := svc.SubmitInventory(ctx, "ws-0042", model.JSONMap{"cpu": "i9"}); err != nil {
		t.Fatalf("second inventory: %v", err)
	}

	stored, err := svc.GetAgentByID(ctx, agent.ID)
	if err != nil {
		t.Fatalf("get agent: %v", err)
	}
	if _, ok := stored.InventoryData["ram"]; ok {
		t.Error("inventory should be replaced wholesale, stale key survived")
	}
	if stored.InventoryData["cpu"] != "i9" {
		t.Errorf("inventory not overwritten, cpu=%v", stored.InventoryData["cpu"])
	}
}

func TestUpdateAgentUnknownID(t *testing.T) {
	svc := NewAgentService(newFakeAgentRepository())
	name := "renamed"
	if _, err := svc.UpdateAgent(context.Background(), 999, AgentPatch{Name: &name}); !errors.Is(err, ErrAgentNotFound) {
		t.Errorf("expected ErrAgentNotFound, got %v", err)
	}
	if err := svc.DeleteAgent(context.Background(), 999); !errors.Is(err, ErrAgentNotFound) {
		t.Errorf("expected ErrAgentNotFound, got %v", err)
	}
}
