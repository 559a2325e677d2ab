package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/misha4322/ps-server/pkg/resp"
	"github.com/misha4322/ps-server/services"
)

type ComponentController struct{ Svc *services.CatalogService }

func NewComponentController(s *services.CatalogService) *ComponentController {
	return &ComponentController{Svc: s}
}

// GET /api/components
func (h *ComponentController) List(c *gin.Context) {
	grouped, err := h.Svc.ComponentsGrouped()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, grouped)
}

// GET /api/components/:id
func (h *ComponentController) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid component id")
		return
	}
	component, err := h.Svc.ComponentByID(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, component)
}
