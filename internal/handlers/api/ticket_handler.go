package api

import (
	"errors"
	"fmt"

	"github.com/faeflux/faeflux-one/internal/audit"
	"github.com/faeflux/faeflux-one/internal/middlewares"
	"github.com/faeflux/faeflux-one/internal/tickets"
	"github.com/faeflux/faeflux-one/model"
	"github.com/gofiber/fiber/v2"
)

type TicketHandler struct {
	ticketService *tickets.TicketService
	recorder      *audit.Recorder
}

func NewTicketHandler(ticketService *tickets.TicketService, recorder *audit.Recorder) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
		recorder:      recorder,
	}
}

func (h *TicketHandler) GetTickets(c *fiber.Ctx) error {
	skip, limit := pagination(c)
	list, err := h.ticketService.ListTickets(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(NewDataResponse(list))
}

func (h *TicketHandler) GetTicket(c *fiber.Ctx) error {
	ticketID, err := parseID(c)
	if err != nil {
		return err
	}
	ticket, err := h.ticketService.GetTicketByID(c.UserContext(), ticketID)
	if errors.Is(err, tickets.ErrTicketNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Ticket not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(NewDataResponse(ticket))
}

func (h *TicketHandler) PostTicket(c *fiber.Ctx) error {
	var req tickets.CreateTicketOptions
	if err := c.BodyParser(&req); err != nil || req.Title == "" || req.Description == "" {
		return fiber.NewError(fiber.StatusBadRequest, "title and description are required")
	}
	actor := middlewares.CurrentUser(c)
	ticket, err := h.ticketService.CreateTicket(c.UserContext(), req, actor.ID)
	if err != nil {
		return err
	}
	if err := recordAudit(c, h.recorder, model.AuditActionCreate, "ticket", &ticket.ID, fmt.Sprintf("Created ticket: %s", ticket.Title)); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(NewDataResponse(ticket))
}

func (h *TicketHandler) PutTicket(c *fiber.Ctx) error {
	ticketID, err := parseID(c)
	if err != nil {
		return err
	}
	var patch tickets.TicketPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	ticket, err := h.ticketService.UpdateTicket(c.UserContext(), ticketID, patch)
	if errors.Is(err, tickets.ErrTicketNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Ticket not found")
	}
	if err != nil {
		return err
	}
	if err := recordAudit(c, h.recorder, model.AuditActionUpdate, "ticket", &ticket.ID, fmt.Sprintf("Updated ticket: %s", ticket.Title)); err != nil {
		return err
	}
	return c.JSON(NewDataResponse(ticket))
}

func (h *TicketHandler) DeleteTicket(c *fiber.Ctx) error {
	ticketID, err := parseID(c)
	if err != nil {
		return err
	}
	err = h.ticketService.DeleteTicket(c.UserContext(), ticketID)
	if errors.Is(err, tickets.ErrTicketNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Ticket not found")
	}
	if err != nil {
		return err
	}
	if err := recordAudit(c, h.recorder, model.AuditActionDelete, "ticket", &ticketID, fmt.Sprintf("Deleted ticket %d", ticketID)); err != nil {
		return err
	}
	return c.JSON(NewDataResponse(StatusResponse{Status: "ok", Message: "Ticket deleted successfully"}))
}
