package handler

import (
	"github.com/gin-gonic/gin"

	"nemukerja/internal/service"
)

type AdminHandler struct {
	view *service.AdminView
}

func NewAdminHandler(view *service.AdminView) *AdminHandler {
	return &AdminHandler{view: view}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	s, err := h.view.Stats(c.Request.Context(), a)
	respond(c, s, err)
}

func (h *AdminHandler) Activity(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	acts, err := h.view.RecentActivity(c.Request.Context(), a)
	respond(c, acts, err)
}

func (h *AdminHandler) Users(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	us, err := h.view.ListUsers(c.Request.Context(), a)
	respond(c, us, err)
}

func (h *AdminHandler) Companies(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	cs, err := h.view.ListCompanies(c.Request.Context(), a)
	respond(c, cs, err)
}

func (h *AdminHandler) Jobs(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	js, err := h.view.ListJobs(c.Request.Context(), a)
	respond(c, js, err)
}
