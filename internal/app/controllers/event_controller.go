package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/affan/clubsphere/internal/app/auth"
	"github.com/affan/clubsphere/internal/app/models/dto"
	"github.com/affan/clubsphere/internal/app/services"
	"github.com/affan/clubsphere/internal/middleware"
	"github.com/affan/clubsphere/internal/pkg/helpers"
)

// EventController handles event related operations
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{eventService: eventService}
}

// ListEvents handles the public upcoming events listing
// @Summary List upcoming events
// @Description Retrieves approved events from now on, soonest first, with organizer club and the caller's registration state
// @Tags events
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.EventListResponse} "Events"
// @Router /events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	var actor *appauth.Actor
	if a, ok := middleware.GetActor(ctx); ok {
		actor = &a
	}

	resp, err := c.eventService.ListUpcoming(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CreateEvent handles an event proposal
// @Summary Propose an event
// @Description Creates an unapproved event for a club the caller heads
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event data"
// @Success 201 {object} dto.APIResponse{data=dto.EventResponse} "Event proposed"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Caller does not head the organizer club"
// @Failure 404 {object} dto.ErrorResponse "Organizer club not found"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.eventService.CreateEvent(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// ToggleRegistration handles registering for or unregistering from an event
// @Summary Toggle event registration
// @Description Registers the caller if they are not registered, unregisters them otherwise
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.RegistrationResponse} "Resulting registration state"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/registration [post]
func (c *EventController) ToggleRegistration(ctx *gin.Context) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.eventService.ToggleRegistration(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
