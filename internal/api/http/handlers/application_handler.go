package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ms1708/academy-portal/internal/api/dto"
	"github.com/ms1708/academy-portal/internal/wizard"
	apperrors "github.com/ms1708/academy-portal/pkg/util"
)

// ApplicationHandler exposes the course-application wizard over HTTP.
type ApplicationHandler struct {
	app *wizard.Application
}

// NewApplicationHandler constructs handler.
func NewApplicationHandler(app *wizard.Application) *ApplicationHandler {
	return &ApplicationHandler{app: app}
}

// State handles GET /application.
func (h *ApplicationHandler) State(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.stateResponse()})
}

// Update handles PUT /application: partial field updates, each auto-saving
// the draft.
func (h *ApplicationHandler) Update(c *fiber.Ctx) error {
	var req dto.ApplicationUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	if req.UserInfo != nil {
		h.app.SetUserInfo(*req.UserInfo)
	}
	if req.AdditionalInfo != nil {
		h.app.SetAdditionalInfo(*req.AdditionalInfo)
	}
	if req.Education != nil {
		h.app.SetEducation(*req.Education)
	}
	if req.Work != nil {
		h.app.SetWork(*req.Work)
	}
	if req.Programme != nil {
		h.app.SetProgramme(*req.Programme)
	}
	if req.Payment != nil {
		h.app.SetPayment(*req.Payment)
	}
	if req.TermsAccepted != nil {
		h.app.SetTermsAccepted(*req.TermsAccepted)
	}

	return c.JSON(fiber.Map{"data": h.stateResponse()})
}

// Advance handles POST /application/advance.
func (h *ApplicationHandler) Advance(c *fiber.Ctx) error {
	if err := h.app.Advance(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.stateResponse()})
}

// Retreat handles POST /application/retreat.
func (h *ApplicationHandler) Retreat(c *fiber.Ctx) error {
	h.app.Retreat()
	return c.JSON(fiber.Map{"data": h.stateResponse()})
}

// Submit handles POST /application/submit.
func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	if err := h.app.Submit(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.stateResponse()})
}

func (h *ApplicationHandler) stateResponse() dto.ApplicationStateResponse {
	draft, step, submitted := h.app.Snapshot()
	return dto.ApplicationStateResponse{
		Flow:        wizard.FlowCourseApplication,
		CurrentStep: step,
		StepName:    h.app.StepName(),
		TotalSteps:  h.app.TotalSteps(),
		Submitted:   submitted,
		Draft:       draft,
	}
}
