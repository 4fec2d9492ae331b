package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"nemukerja/internal/service"
)

type JobHandler struct {
	wf     *service.Workflow
	search *service.Search
}

func NewJobHandler(wf *service.Workflow, search *service.Search) *JobHandler {
	return &JobHandler{wf: wf, search: search}
}

// Search is the public listing view. Bad filter values degrade to "filter
// not applied" in the service, so binding never fails here.
func (h *JobHandler) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	out, err := h.search.Search(c.Request.Context(), service.SearchQuery{
		Keyword:   c.Query("q"),
		Location:  c.Query("location"),
		Company:   c.Query("company"),
		MinSalary: c.Query("salary"),
		Page:      page,
	})
	respond(c, out, err)
}

func (h *JobHandler) Latest(c *gin.Context) {
	n, _ := strconv.Atoi(c.DefaultQuery("n", "10"))
	jobs, err := h.search.Latest(c.Request.Context(), n)
	respond(c, jobs, err)
}

func (h *JobHandler) Detail(c *gin.Context) {
	out, err := h.wf.JobDetail(c.Request.Context(), c.Param("id"))
	respond(c, out, err)
}

func (h *JobHandler) PublicCompany(c *gin.Context) {
	out, err := h.wf.PublicCompany(c.Request.Context(), c.Param("id"))
	respond(c, out, err)
}

type jobIn struct {
	Title          string `json:"title" binding:"required,max=191"`
	Location       string `json:"location" binding:"omitempty,max=128"`
	Description    string `json:"description"`
	Qualifications string `json:"qualifications"`
	Slots          int    `json:"slots" binding:"required,min=1"`
	SalaryMin      int64  `json:"salaryMin" binding:"omitempty,min=0"`
	SalaryMax      int64  `json:"salaryMax" binding:"omitempty,min=0"`
}

func (in jobIn) toInput() service.JobInput {
	return service.JobInput{
		Title:          in.Title,
		Location:       in.Location,
		Description:    in.Description,
		Qualifications: in.Qualifications,
		Slots:          in.Slots,
		SalaryMin:      in.SalaryMin,
		SalaryMax:      in.SalaryMax,
	}
}

func (h *JobHandler) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var in jobIn
	if err := c.ShouldBindJSON(&in); err != nil {
		respond(c, nil, bindErr(err))
		return
	}
	job, err := h.wf.CreateJob(c.Request.Context(), a, in.toInput())
	respond(c, job, err)
}

func (h *JobHandler) Edit(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var in jobIn
	if err := c.ShouldBindJSON(&in); err != nil {
		respond(c, nil, bindErr(err))
		return
	}
	job, err := h.wf.EditJob(c.Request.Context(), a, c.Param("id"), in.toInput())
	respond(c, job, err)
}

func (h *JobHandler) Open(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	job, err := h.wf.SetJobOpen(c.Request.Context(), a, c.Param("id"), true)
	respond(c, job, err)
}

func (h *JobHandler) Close(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	job, err := h.wf.SetJobOpen(c.Request.Context(), a, c.Param("id"), false)
	respond(c, job, err)
}

func (h *JobHandler) Delete(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	err := h.wf.DeleteJob(c.Request.Context(), a, c.Param("id"))
	respond(c, gin.H{"deleted": err == nil}, err)
}

func (h *JobHandler) CompanyJobs(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	if limit <= 0 || limit > 100 {
		limit = 6
	}
	jobs, total, err := h.wf.ListCompanyJobs(c.Request.Context(), a, offset, limit)
	if err != nil {
		respond(c, nil, err)
		return
	}
	respond(c, gin.H{"items": jobs, "total": total}, nil)
}
