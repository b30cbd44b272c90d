package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ms1708/academy-portal/internal/api/dto"
	"github.com/ms1708/academy-portal/internal/wizard"
	apperrors "github.com/ms1708/academy-portal/pkg/util"
)

// OnboardingHandler exposes the onboarding wizard over HTTP.
type OnboardingHandler struct {
	flow *wizard.Onboarding
}

// NewOnboardingHandler constructs handler.
func NewOnboardingHandler(flow *wizard.Onboarding) *OnboardingHandler {
	return &OnboardingHandler{flow: flow}
}

// State handles GET /onboarding.
func (h *OnboardingHandler) State(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.stateResponse()})
}

// Update handles PUT /onboarding.
func (h *OnboardingHandler) Update(c *fiber.Ctx) error {
	var req dto.OnboardingUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}

	if req.Student != nil {
		h.flow.SetStudent(*req.Student)
	}
	if req.AdditionalDetails != nil {
		h.flow.SetAdditionalDetails(*req.AdditionalDetails)
	}
	if req.NextOfKin != nil {
		h.flow.SetNextOfKin(*req.NextOfKin)
	}

	return c.JSON(fiber.Map{"data": h.stateResponse()})
}

// Advance handles POST /onboarding/advance.
func (h *OnboardingHandler) Advance(c *fiber.Ctx) error {
	if err := h.flow.Advance(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.stateResponse()})
}

// Retreat handles POST /onboarding/retreat.
func (h *OnboardingHandler) Retreat(c *fiber.Ctx) error {
	h.flow.Retreat()
	return c.JSON(fiber.Map{"data": h.stateResponse()})
}

// Submit handles POST /onboarding/submit.
func (h *OnboardingHandler) Submit(c *fiber.Ctx) error {
	if err := h.flow.Submit(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.stateResponse()})
}

func (h *OnboardingHandler) stateResponse() dto.OnboardingStateResponse {
	draft, step, submitted := h.flow.Snapshot()
	return dto.OnboardingStateResponse{
		Flow:        wizard.FlowOnboarding,
		CurrentStep: step,
		StepName:    h.flow.StepName(),
		TotalSteps:  h.flow.TotalSteps(),
		Submitted:   submitted,
		Draft:       draft,
	}
}
