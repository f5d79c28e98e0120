package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emrekaya/clubsphere/internal/app/models/dto"
	"github.com/emrekaya/clubsphere/internal/app/services"
	"github.com/emrekaya/clubsphere/internal/middleware"
)

// AdminController handles administrative endpoints
type AdminController struct {
	adminService services.AdminService
	reconciler   *services.Reconciler
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService, reconciler *services.Reconciler, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		reconciler:   reconciler,
		logger:       logger,
	}
}

// Overview godoc
// @Summary Platform overview
// @Description Returns aggregate member, event and registration counts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.OverviewResponse}
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/overview [get]
func (c *AdminController) Overview(ctx *gin.Context) {
	resp, err := c.adminService.Overview(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// Reconcile godoc
// @Summary Reconcile attendee counters
// @Description Recomputes event attendee counters from the registration ledger and corrects drift
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ReconcileResultResponse}
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/reconcile [post]
func (c *AdminController) Reconcile(ctx *gin.Context) {
	c.logger.Info().Msg("On-demand attendee counter reconciliation requested")

	resp, err := c.reconciler.RunOnce(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Reconciliation complete"))
}
