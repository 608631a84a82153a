package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/phan14/du-an-ss2/internal/config"
	"github.com/phan14/du-an-ss2/internal/server/http/handlers"
	"github.com/phan14/du-an-ss2/internal/server/http/middleware"
)

// maxRequestBytes bounds request bodies, including decoded gzip uploads.
const maxRequestBytes = 32 << 20

type routerParams struct {
	fx.In

	Facade handlers.WorkshopFacade
	Logger *slog.Logger
	Config *config.Config
}

// Setup configures gin router with handlers and middleware.
func Setup(p routerParams) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.MaxMultipartMemory = maxRequestBytes

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(corsMiddleware(p.Config.CORSOrigins))
	engine.Use(middleware.DecompressRequest(maxRequestBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(p.Facade)
	customerHandler := handlers.NewCustomerHandler(p.Facade)
	orderHandler := handlers.NewOrderHandler(p.Facade)
	alertHandler := handlers.NewAlertHandler(p.Facade)
	gluingHandler := handlers.NewGluingHandler(p.Facade)
	catalogHandler := handlers.NewCatalogHandler(p.Facade)
	systemHandler := handlers.NewSystemHandler(p.Facade)

	api := engine.Group("/api")
	api.POST("/user/login", authHandler.Login)
	api.POST("/user/logout", authHandler.Logout)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(p.Facade))
	authed.GET("/user/me", authHandler.Me)

	authed.GET("/customers", customerHandler.List)
	authed.POST("/customers", customerHandler.Save)
	authed.DELETE("/customers/:id", customerHandler.Delete)
	authed.GET("/customers/:id/stats", customerHandler.Stats)
	authed.GET("/customers/:id/stats/export", customerHandler.ExportStats)

	authed.GET("/orders", orderHandler.List)
	authed.POST("/orders", orderHandler.Create)
	authed.POST("/orders/reload", orderHandler.Reload)
	authed.GET("/orders/urgent", orderHandler.Urgent)
	authed.POST("/orders/import", systemHandler.Import)
	authed.GET("/orders/export", systemHandler.ExportOrders)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.DELETE("/orders/:id", orderHandler.Delete)
	authed.PUT("/orders/:id/status", orderHandler.UpdateStatus)
	authed.GET("/orders/:id/balance", orderHandler.Balance)
	authed.POST("/orders/:id/deliveries", orderHandler.AddDelivery)
	authed.DELETE("/orders/:id/deliveries/:eventID", orderHandler.RemoveDelivery)
	authed.POST("/orders/:id/report", orderHandler.Report)

	authed.GET("/gluing", gluingHandler.List)
	authed.POST("/gluing", gluingHandler.Save)
	authed.GET("/gluing/export", gluingHandler.Export)
	authed.DELETE("/gluing/:id", gluingHandler.Delete)

	authed.GET("/products", catalogHandler.Products)
	authed.GET("/dashboard", catalogHandler.Dashboard)
	authed.POST("/alerts/scan", alertHandler.Scan)

	authed.GET("/system/backup", systemHandler.Backup)
	authed.GET("/system/backup/status", systemHandler.BackupStatus)
	authed.POST("/system/restore", systemHandler.Restore)

	admin := authed.Group("")
	admin.Use(middleware.AdminRequired())
	admin.GET("/users", authHandler.Users)
	admin.POST("/users", authHandler.SaveUser)
	admin.DELETE("/users/:username", authHandler.DeleteUser)
	admin.GET("/settings/telegram", alertHandler.Telegram)
	admin.PUT("/settings/telegram", alertHandler.SaveTelegram)
	admin.POST("/settings/telegram/test", alertHandler.TestTelegram)

	return engine
}

// corsMiddleware allows the browser client served from origins. "*" allows any origin
// without credentials; explicit origins may send the auth cookie.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Encoding", "Authorization"},
		ExposeHeaders: []string{"Authorization", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
