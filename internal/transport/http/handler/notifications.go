package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"nemukerja/internal/service"
)

type NotificationHandler struct {
	notif *service.Notifier
}

func NewNotificationHandler(n *service.Notifier) *NotificationHandler {
	return &NotificationHandler{notif: n}
}

func (h *NotificationHandler) Latest(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	n, _ := strconv.Atoi(c.DefaultQuery("n", "10"))
	ns, err := h.notif.Latest(c.Request.Context(), a, n)
	respond(c, ns, err)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	err := h.notif.MarkRead(c.Request.Context(), a, c.Param("id"))
	respond(c, gin.H{"read": err == nil}, err)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	err := h.notif.MarkAllRead(c.Request.Context(), a)
	respond(c, gin.H{"read": err == nil}, err)
}

func (h *NotificationHandler) ClearAll(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	err := h.notif.ClearAll(c.Request.Context(), a)
	respond(c, gin.H{"cleared": err == nil}, err)
}

// RelatedJob maps an application notification to its job for navigation.
func (h *NotificationHandler) RelatedJob(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	jobID, err := h.notif.RelatedJobID(c.Request.Context(), a, c.Param("id"))
	respond(c, gin.H{"jobId": jobID}, err)
}
