package router

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"nemukerja/internal/core/auth"
	"nemukerja/internal/domain"
	"nemukerja/internal/service"
	"nemukerja/internal/transport/http/handler"
	mdw "nemukerja/internal/transport/http/middleware"
)

// NewAdminEngine serves the administrator's read-only aggregate views plus
// the prometheus scrape endpoint. Separate engine, separate port.
func NewAdminEngine(l *zap.Logger, jwter *auth.JWTer, view *service.AdminView) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.Metrics(),
		ginzap.Ginzap(l, time.RFC3339, true),
		ginzap.RecoveryWithZap(l, true),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	adminH := handler.NewAdminHandler(view)

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, domain.RoleAdmin))
	admin.GET("/stats", adminH.Stats)
	admin.GET("/activity", adminH.Activity)
	admin.GET("/users", adminH.Users)
	admin.GET("/companies", adminH.Companies)
	admin.GET("/jobs", adminH.Jobs)

	return r
}
