package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/affan/clubsphere/internal/app/auth"
	"github.com/affan/clubsphere/internal/app/models"
	"github.com/affan/clubsphere/internal/app/models/dto"
	"github.com/affan/clubsphere/internal/app/services"
	"github.com/affan/clubsphere/internal/middleware"
	"github.com/affan/clubsphere/internal/pkg/helpers"
)

// ClubController handles club related operations
type ClubController struct {
	clubService services.ClubService
}

// NewClubController creates a new ClubController
func NewClubController(clubService services.ClubService) *ClubController {
	return &ClubController{clubService: clubService}
}

// ListClubs handles the public club directory
// @Summary List approved clubs
// @Description Retrieves approved clubs, optionally filtered by category and a name/description search
// @Tags clubs
// @Produce json
// @Param category query string false "Exact category" Enums(Cultural, Technical, Literary, Sports)
// @Param search query string false "Case-insensitive substring match"
// @Success 200 {object} dto.APIResponse{data=dto.ClubListResponse} "Clubs"
// @Router /clubs [get]
func (c *ClubController) ListClubs(ctx *gin.Context) {
	filter := &dto.ClubFilterRequest{}

	if categoryStr := ctx.Query("category"); categoryStr != "" {
		category := models.Category(categoryStr)
		if !category.Valid() {
			middleware.HandleValidationError(ctx, errors.New("unknown category"))
			return
		}
		filter.Category = &category
	}
	if search := ctx.Query("search"); search != "" {
		filter.Search = &search
	}

	resp, err := c.clubService.ListApproved(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetClub handles a club profile page
// @Summary Get club by ID
// @Description Retrieves a club with member count, caller membership and upcoming events
// @Tags clubs
// @Produce json
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClubDetailResponse} "Club"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id} [get]
func (c *ClubController) GetClub(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var actor *appauth.Actor
	if a, ok := middleware.GetActor(ctx); ok {
		actor = &a
	}

	resp, err := c.clubService.GetClub(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CreateClub handles a club proposal
// @Summary Propose a club
// @Description Creates an unapproved club with the caller as head
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClubRequest true "Club data"
// @Success 201 {object} dto.APIResponse{data=dto.ClubResponse} "Club proposed"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /clubs [post]
func (c *ClubController) CreateClub(ctx *gin.Context) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateClubRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.clubService.CreateClub(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// ToggleMembership handles joining or leaving a club
// @Summary Toggle club membership
// @Description Joins the club if the caller is not a member, leaves it otherwise
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.MembershipResponse} "Resulting membership state"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{id}/membership [post]
func (c *ClubController) ToggleMembership(ctx *gin.Context) {
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

	resp, err := c.clubService.ToggleMembership(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Dashboard handles the club head dashboard
// @Summary Get own clubs and their events
// @Description Retrieves the clubs the caller heads, approved or pending, with their events
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Dashboard"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /clubs/dashboard [get]
func (c *ClubController) Dashboard(ctx *gin.Context) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	resp, err := c.clubService.Dashboard(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
}
