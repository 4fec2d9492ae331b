package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nemukerja/internal/core/auth"
	"nemukerja/internal/domain"
	"nemukerja/internal/service"
	"nemukerja/internal/transport/http/handler"
	mdw "nemukerja/internal/transport/http/middleware"
)

type Services struct {
	Account  *service.Account
	Workflow *service.Workflow
	Search   *service.Search
	Notifier *service.Notifier
}

// NewAPIEngine wires the public + authenticated surface. Role enforcement
// happens twice on purpose: the route group rejects the wrong role early,
// and the service re-checks against the explicit actor.
func NewAPIEngine(l *zap.Logger, jwter *auth.JWTer, svc Services) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	authH := handler.NewAuthHandler(svc.Account)
	profileH := handler.NewProfileHandler(svc.Account)
	jobH := handler.NewJobHandler(svc.Workflow, svc.Search)
	appH := handler.NewApplicationHandler(svc.Workflow)
	notifH := handler.NewNotificationHandler(svc.Notifier)

	api := r.Group("/api/v1")

	// 公开接口，认证相关的单独按 IP 限速防爆破
	authGrp := api.Group("/auth", mdw.RateLimitPerIP(5, 10))
	authGrp.POST("/register", authH.Register)
	authGrp.POST("/login", authH.Login)
	authGrp.POST("/reset-request", authH.ResetRequest)
	authGrp.POST("/reset/:token", authH.Reset)
	api.GET("/jobs", jobH.Search)
	api.GET("/jobs/latest", jobH.Latest)
	api.GET("/jobs/:id", jobH.Detail)
	api.GET("/companies/:id", jobH.PublicCompany)

	// 登录即可
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter, ""))
	authed.GET("/me", authH.Me)
	authed.GET("/profile", profileH.Get)
	authed.PUT("/profile", profileH.Update)
	authed.GET("/notifications", notifH.Latest)
	authed.POST("/notifications/read-all", notifH.MarkAllRead)
	authed.POST("/notifications/clear", notifH.ClearAll)
	authed.POST("/notifications/:id/read", notifH.MarkRead)
	authed.GET("/notifications/:id/job", notifH.RelatedJob)

	// 求职者
	applicant := api.Group("")
	applicant.Use(mdw.AuthJWT(jwter, domain.RoleApplicant))
	applicant.POST("/jobs/:id/apply", appH.Apply)
	applicant.GET("/applications", appH.Mine)
	applicant.GET("/applications/summary", appH.Summary)

	// 企业
	company := api.Group("")
	company.Use(mdw.AuthJWT(jwter, domain.RoleCompany))
	company.POST("/jobs", jobH.Create)
	company.PUT("/jobs/:id", jobH.Edit)
	company.POST("/jobs/:id/open", jobH.Open)
	company.POST("/jobs/:id/close", jobH.Close)
	company.DELETE("/jobs/:id", jobH.Delete)
	company.GET("/company/jobs", jobH.CompanyJobs)
	company.GET("/company/applications", appH.CompanyList)
	company.GET("/company/applications/:id", appH.Get)
	company.POST("/company/applications/:id/accept", appH.Accept)
	company.POST("/company/applications/:id/reject", appH.Reject)
	company.GET("/cv/:name", appH.ServeCV)

	return r
}
