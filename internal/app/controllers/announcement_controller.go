package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/affan/clubsphere/internal/app/models/dto"
	"github.com/affan/clubsphere/internal/app/services"
	"github.com/affan/clubsphere/internal/middleware"
)

// AnnouncementController handles announcement related operations
type AnnouncementController struct {
	announcementService services.AnnouncementService
}

// NewAnnouncementController creates a new AnnouncementController
func NewAnnouncementController(announcementService services.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{announcementService: announcementService}
}

// ListAnnouncements handles the public announcement feed
// @Summary List recent announcements
// @Description Retrieves the newest announcements with their club and author
// @Tags announcements
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.AnnouncementListResponse} "Announcements"
// @Router /announcements [get]
func (c *AnnouncementController) ListAnnouncements(ctx *gin.Context) {
	resp, err := c.announcementService.ListRecent(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// PostAnnouncement handles publishing an announcement
// @Summary Post an announcement
// @Description Publishes a message from a club the caller heads
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAnnouncementRequest true "Announcement data"
// @Success 201 {object} dto.APIResponse{data=dto.AnnouncementResponse} "Announcement posted"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Caller does not head the club"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /announcements [post]
func (c *AnnouncementController) PostAnnouncement(ctx *gin.Context) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateAnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.announcementService.PostAnnouncement(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// GetStats handles the home page counters
// @Summary Get platform stats
// @Description Retrieves counts of approved clubs, upcoming events and announcements
// @Tags announcements
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.StatsResponse} "Stats"
// @Router /stats [get]
func (c *AnnouncementController) GetStats(ctx *gin.Context) {
	resp, err := c.announcementService.GetStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
