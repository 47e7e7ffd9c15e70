package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"batdongsan-api/internal/core/auth"
	"batdongsan-api/internal/repo"
	mdw "batdongsan-api/internal/transport/http/middleware"
)

// NewAdminEngine assembles the back-office surface; the whole /admin/v1
// group requires an admin token.
func NewAdminEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer) *gin.Engine {
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
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	users := repo.NewUserRepo(db)

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AdminRequired(jwter, users))

	MountAllAdmin(admin)
	mountAdminActions(admin, users)

	return r
}
