package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/repwear/app/services"
	"github.com/shashiranjanraj/repwear/pkg/response"
)

type DashboardController struct {
	svc *services.DashboardService
}

func NewDashboardController(svc *services.DashboardService) *DashboardController {
	return &DashboardController{svc: svc}
}

func (c *DashboardController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.svc.Stats(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "", stats)
}

// Refresh forces a cache rebuild, bypassing the TTL.
func (c *DashboardController) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := c.svc.RefreshDashboardCache(r.Context()); err != nil {
		respondErr(w, r, err)
		return
	}
	response.Success(w, "Dashboard cache refreshed", nil)
}
