package handler

import (
	"github.com/gin-gonic/gin"

	"nemukerja/internal/domain"
	"nemukerja/internal/service"
)

type ProfileHandler struct {
	acct *service.Account
}

func NewProfileHandler(acct *service.Account) *ProfileHandler {
	return &ProfileHandler{acct: acct}
}

// Get returns the role-appropriate profile. For companies this lazily
// creates the placeholder profile on first visit.
func (h *ProfileHandler) Get(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	switch a.Role {
	case domain.RoleCompany:
		prof, err := h.acct.CompanyProfile(c.Request.Context(), a)
		respond(c, prof, err)
	default:
		me, err := h.acct.Me(c.Request.Context(), a)
		if err != nil {
			respond(c, nil, err)
			return
		}
		respond(c, me.Applicant, nil)
	}
}

type applicantProfileIn struct {
	FullName string `json:"fullName" binding:"required,max=128"`
	Phone    string `json:"phone" binding:"omitempty,max=32"`
	Skills   string `json:"skills" binding:"omitempty,max=3000"`
}

type companyProfileIn struct {
	CompanyName  string `json:"companyName" binding:"required,max=128"`
	Description  string `json:"description" binding:"omitempty,max=3000"`
	ContactEmail string `json:"contactEmail" binding:"omitempty,email"`
	Phone        string `json:"phone" binding:"omitempty,max=32"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	switch a.Role {
	case domain.RoleApplicant:
		var in applicantProfileIn
		if err := c.ShouldBindJSON(&in); err != nil {
			respond(c, nil, bindErr(err))
			return
		}
		prof, err := h.acct.UpdateApplicantProfile(c.Request.Context(), a, service.ApplicantProfileInput{
			FullName: in.FullName,
			Phone:    in.Phone,
			Skills:   in.Skills,
		})
		respond(c, prof, err)
	case domain.RoleCompany:
		var in companyProfileIn
		if err := c.ShouldBindJSON(&in); err != nil {
			respond(c, nil, bindErr(err))
			return
		}
		prof, err := h.acct.UpdateCompanyProfile(c.Request.Context(), a, service.CompanyProfileInput{
			CompanyName:  in.CompanyName,
			Description:  in.Description,
			ContactEmail: in.ContactEmail,
			Phone:        in.Phone,
		})
		respond(c, prof, err)
	default:
		respond(c, nil, domain.ErrUnauthorized)
	}
}
