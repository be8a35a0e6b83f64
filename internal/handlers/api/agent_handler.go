package api

import (
	"errors"
	"fmt"

	"github.com/faeflux/faeflux-one/internal/agents"
	"github.com/faeflux/faeflux-one/internal/audit"
	"github.com/faeflux/faeflux-one/model"
	"github.com/gofiber/fiber/v2"
)

type AgentHandler struct {
	agentService *agents.AgentService
	recorder     *audit.Recorder
}

func NewAgentHandler(agentService *agents.AgentService, recorder *audit.Recorder) *AgentHandler {
	return &AgentHandler{
		agentService: agentService,
		recorder:     recorder,
	}
}

// PostHeartbeat is unauthenticated: agents cannot hold user credentials.
// It upserts the agent row keyed by hostname.
func (h *AgentHandler) PostHeartbeat(c *fiber.Ctx) error {
	var req agents.HeartbeatRequest
	if err := c.BodyParser(&req); err != nil || req.Hostname == "" || req.OSType == "" {
		return fiber.NewError(fiber.StatusBadRequest, "hostname and osType are required")
	}
	if req.IPAddress == "" {
		req.IPAddress = c.IP()
	}
	agent, err := h.agentService.Heartbeat(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(NewDataResponse(fiber.Map{
		"status":  "ok",
		"agentId": agent.ID,
	}))
}

type inventoryRequest struct {
	Hostname  string        `json:"hostname"`
	Inventory model.JSONMap `json:"inventory"`
}

// PostInventory is unauthenticated and requires a prior heartbeat; an
// unknown hostname is a hard 404, never an upsert.
func (h *AgentHandler) PostInventory(c *fiber.Ctx) error {
	var req inventoryRequest
	if err := c.BodyParser(&req); err != nil || req.Hostname == "" {
		return fiber.NewError(fiber.StatusBadRequest, "hostname is required")
	}
	err := h.agentService.SubmitInventory(c.UserContext(), req.Hostname, req.Inventory)
	if errors.Is(err, agents.ErrAgentNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Agent not found. Please send heartbeat first.")
	}
	if err != nil {
		return err
	}
	return c.JSON(NewDataResponse(StatusResponse{Status: "ok", Message: "Inventory updated"}))
}

func (h *AgentHandler) GetAgents(c *fiber.Ctx) error {
	skip, limit := pagination(c)
	list, err := h.agentService.ListAgents(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(NewDataResponse(list))
}

func (h *AgentHandler) GetAgent(c *fiber.Ctx) error {
	agentID, err := parseID(c)
	if err != nil {
		return err
	}
	agent, err := h.agentService.GetAgentByID(c.UserContext(), agentID)
	if errors.Is(err, agents.ErrAgentNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Agent not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(NewDataResponse(agent))
}

func (h *AgentHandler) PutAgent(c *fiber.Ctx) error {
	agentID, err := parseID(c)
	if err != nil {
		return err
	}
	var patch agents.AgentPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	agent, err := h.agentService.UpdateAgent(c.UserContext(), agentID, patch)
	if errors.Is(err, agents.ErrAgentNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Agent not found")
	}
	if err != nil {
		return err
	}
	if err := recordAudit(c, h.recorder, model.AuditActionUpdate, "agent", &agent.ID, fmt.Sprintf("Updated agent: %s", agent.Name)); err != nil {
		return err
	}
	return c.JSON(NewDataResponse(agent))
}

func (h *AgentHandler) DeleteAgent(c *fiber.Ctx) error {
	agentID, err := parseID(c)
	if err != nil {
		return err
	}
	err = h.agentService.DeleteAgent(c.UserContext(), agentID)
	if errors.Is(err, agents.ErrAgentNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Agent not found")
	}
	if err != nil {
		return err
	}
	if err := recordAudit(c, h.recorder, model.AuditActionDelete, "agent", &agentID, fmt.Sprintf("Deleted agent %d", agentID)); err != nil {
		return err
	}
	return c.JSON(NewDataResponse(StatusResponse{Status: "ok", Message: "Agent deleted successfully"}))
}
