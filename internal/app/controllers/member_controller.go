package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emrekaya/clubsphere/internal/app/models/dto"
	"github.com/emrekaya/clubsphere/internal/app/services"
	"github.com/emrekaya/clubsphere/internal/middleware"
	"github.com/emrekaya/clubsphere/internal/pkg/helpers"
)

// MemberController handles member profile endpoints
type MemberController struct {
	memberService services.MemberService
	logger        zerolog.Logger
}

// NewMemberController creates a new MemberController
func NewMemberController(memberService services.MemberService, logger zerolog.Logger) *MemberController {
	return &MemberController{
		memberService: memberService,
		logger:        logger,
	}
}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Updates the authenticated member's profile fields
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.MemberResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Router /users/me [put]
func (c *MemberController) UpdateProfile(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err, "Invalid profile data")
		return
	}

	resp, err := c.memberService.UpdateProfile(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Profile updated"))
}

// ListMembers godoc
// @Summary List members
// @Description Lists members, optionally filtered by a search term. Admin only.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search in name or email"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.MemberListResponse}
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /users [get]
func (c *MemberController) ListMembers(ctx *gin.Context) {
	search := ctx.Query("search")
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.memberService.ListMembers(ctx, search, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}
