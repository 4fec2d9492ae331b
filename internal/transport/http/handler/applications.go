package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"nemukerja/internal/domain"
	"nemukerja/internal/service"
)

type ApplicationHandler struct {
	wf *service.Workflow
}

func NewApplicationHandler(wf *service.Workflow) *ApplicationHandler {
	return &ApplicationHandler{wf: wf}
}

// Apply takes multipart form data: cover_letter plus an optional cv file.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	coverLetter := c.PostForm("cover_letter")

	var cv *service.CVUpload
	if fh, err := c.FormFile("cv"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			respond(c, nil, domain.ErrUploadRejected)
			return
		}
		defer f.Close()
		cv = &service.CVUpload{Name: fh.Filename, Reader: f, Size: fh.Size}
	}

	app, err := h.wf.Apply(c.Request.Context(), a, c.Param("id"), coverLetter, cv)
	respond(c, app, err)
}

// Mine lists the actor's applications; ?status=pending|accepted|rejected
// narrows it. Unknown status values are ignored.
func (h *ApplicationHandler) Mine(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var status domain.ApplicationStatus
	switch domain.ApplicationStatus(c.Query("status")) {
	case domain.StatusPending:
		status = domain.StatusPending
	case domain.StatusAccepted:
		status = domain.StatusAccepted
	case domain.StatusRejected:
		status = domain.StatusRejected
	}
	apps, err := h.wf.ListMyApplications(c.Request.Context(), a, status)
	respond(c, apps, err)
}

func (h *ApplicationHandler) Summary(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	s, err := h.wf.MyApplicationSummary(c.Request.Context(), a)
	respond(c, s, err)
}

func (h *ApplicationHandler) CompanyList(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	apps, err := h.wf.ListCompanyApplications(c.Request.Context(), a, 0)
	respond(c, apps, err)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	app, err := h.wf.GetApplication(c.Request.Context(), a, c.Param("id"))
	respond(c, app, err)
}

func (h *ApplicationHandler) Accept(c *gin.Context) {
	h.decide(c, service.DecisionAccept)
}

func (h *ApplicationHandler) Reject(c *gin.Context) {
	h.decide(c, service.DecisionReject)
}

func (h *ApplicationHandler) decide(c *gin.Context, d service.Decision) {
	a, ok := actor(c)
	if !ok {
		return
	}
	app, err := h.wf.Decide(c.Request.Context(), a, c.Param("id"), d)
	respond(c, app, err)
}

// ServeCV streams a stored CV to a company-role caller.
func (h *ApplicationHandler) ServeCV(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	rc, err := h.wf.OpenCV(c.Request.Context(), a, c.Param("name"))
	if err != nil {
		respond(c, nil, err)
		return
	}
	defer rc.Close()
	c.Header("Content-Disposition", "attachment; filename="+c.Param("name"))
	c.Status(200)
	_, _ = io.Copy(c.Writer, rc)
}
