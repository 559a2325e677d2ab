package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/misha4322/ps-server/pkg/resp"
	"github.com/misha4322/ps-server/services"
)

type BuildController struct{ Svc *services.CatalogService }

func NewBuildController(s *services.CatalogService) *BuildController {
	return &BuildController{Svc: s}
}

// GET /api/builds?predefined=true
func (h *BuildController) List(c *gin.Context) {
	predefinedOnly := c.Query("predefined") == "true"
	builds, err := h.Svc.ListBuilds(predefinedOnly)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, builds)
}

// GET /api/builds/:id/components
func (h *BuildController) Components(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid build id")
		return
	}
	components, err := h.Svc.BuildComponents(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, components)
}

// POST /api/builds
func (h *BuildController) Create(c *gin.Context) {
	var req services.CreateBuildIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	build, err := h.Svc.CreateBuild(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, build)
}
