package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/affan/clubsphere/internal/app/models/dto"
	"github.com/affan/clubsphere/internal/app/services"
	"github.com/affan/clubsphere/internal/middleware"
	"github.com/affan/clubsphere/internal/pkg/helpers"
)

// AdminController handles the content review workflow
type AdminController struct {
	clubService  services.ClubService
	eventService services.EventService
}

// NewAdminController creates a new AdminController
func NewAdminController(clubService services.ClubService, eventService services.EventService) *AdminController {
	return &AdminController{
		clubService:  clubService,
		eventService: eventService,
	}
}

// ListPendingClubs handles the club review queue
// @Summary List pending clubs
// @Description Retrieves unapproved clubs, oldest proposal first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ClubListResponse} "Pending clubs"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/clubs/pending [get]
func (c *AdminController) ListPendingClubs(ctx *gin.Context) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	resp, err := c.clubService.ListPending(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ApproveClub handles approving a club proposal
// @Summary Approve a club
// @Description Marks a club approved; approving an approved club is a no-op
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClubResponse} "Approved club"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /admin/clubs/{id}/approve [post]
func (c *AdminController) ApproveClub(ctx *gin.Context) {
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

	resp, err := c.clubService.ApproveClub(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// RejectClub handles rejecting a club proposal
// @Summary Reject a club
// @Description Removes a club and everything under it
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse "Club removed"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /admin/clubs/{id}/reject [post]
func (c *AdminController) RejectClub(ctx *gin.Context) {
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

	if err := c.clubService.RejectClub(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Club rejected"))
}

// ListPendingEvents handles the event review queue
// @Summary List pending events
// @Description Retrieves unapproved events, oldest proposal first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.EventListResponse} "Pending events"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/events/pending [get]
func (c *AdminController) ListPendingEvents(ctx *gin.Context) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	resp, err := c.eventService.ListPending(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ApproveEvent handles approving an event proposal
// @Summary Approve an event
// @Description Marks an event approved; approving an approved event is a no-op
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Approved event"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /admin/events/{id}/approve [post]
func (c *AdminController) ApproveEvent(ctx *gin.Context) {
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

	resp, err := c.eventService.ApproveEvent(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// RejectEvent handles rejecting an event proposal
// @Summary Reject an event
// @Description Removes an event and its registrations
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse "Event removed"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /admin/events/{id}/reject [post]
func (c *AdminController) RejectEvent(ctx *gin.Context) {
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

	if err := c.eventService.RejectEvent(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Event rejected"))
}
