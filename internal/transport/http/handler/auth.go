package handler

import (
	"github.com/gin-gonic/gin"

	"nemukerja/internal/domain"
	"nemukerja/internal/service"
)

type AuthHandler struct {
	acct *service.Account
}

func NewAuthHandler(acct *service.Account) *AuthHandler { return &AuthHandler{acct: acct} }

type registerIn struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Role        string `json:"role" binding:"required,oneof=applicant company"`
	Name        string `json:"name" binding:"omitempty,max=128"`
	Phone       string `json:"phone" binding:"omitempty,max=32"`
	CompanyName string `json:"companyName" binding:"omitempty,max=128"`
	Description string `json:"description" binding:"omitempty,max=3000"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in registerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		respond(c, nil, bindErr(err))
		return
	}
	user, err := h.acct.Register(c.Request.Context(), service.RegisterInput{
		Email:       in.Email,
		Password:    in.Password,
		Role:        domain.Role(in.Role),
		Name:        in.Name,
		Phone:       in.Phone,
		CompanyName: in.CompanyName,
		Description: in.Description,
	})
	respond(c, user, err)
}

type loginIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		respond(c, nil, bindErr(err))
		return
	}
	token, user, err := h.acct.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		respond(c, nil, err)
		return
	}
	respond(c, gin.H{"token": token, "user": user}, nil)
}

type resetRequestIn struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) ResetRequest(c *gin.Context) {
	var in resetRequestIn
	if err := c.ShouldBindJSON(&in); err != nil {
		respond(c, nil, bindErr(err))
		return
	}
	if err := h.acct.RequestPasswordReset(c.Request.Context(), in.Email); err != nil {
		respond(c, nil, err)
		return
	}
	// 无论邮箱是否存在，回复一致
	respond(c, gin.H{"sent": true}, nil)
}

type resetIn struct {
	Password string `json:"password" binding:"required,min=8"`
}

func (h *AuthHandler) Reset(c *gin.Context) {
	var in resetIn
	if err := c.ShouldBindJSON(&in); err != nil {
		respond(c, nil, bindErr(err))
		return
	}
	err := h.acct.ResetPassword(c.Request.Context(), c.Param("token"), in.Password)
	respond(c, gin.H{"reset": err == nil}, err)
}

func (h *AuthHandler) Me(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	me, err := h.acct.Me(c.Request.Context(), a)
	respond(c, me, err)
}
