package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"batdongsan-api/internal/core/auth"
	"batdongsan-api/internal/core/cache"
	"batdongsan-api/internal/repo"
	"batdongsan-api/internal/service"
	mdw "batdongsan-api/internal/transport/http/middleware"
)

// NewAPIEngine assembles the public/client surface: /users, /posts,
// /health, /metrics. A nil cache disables post read caching.
func NewAPIEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, cc *cache.Cache) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		cors.Default(),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := repo.NewUserRepo(db)
	posts := repo.NewPostRepo(db)
	userSvc := service.NewUserService(users, jwter, l)
	postSvc := service.NewPostService(posts, users, cc, l)

	root := r.Group("")
	MountAllAPI(root)
	mountUserRoutes(root, userSvc, postSvc, jwter, users)
	mountPostRoutes(root, postSvc, jwter, users)

	return r
}
