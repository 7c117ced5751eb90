package main

import (
	"net/http"
	"slices"

	_ "opentreasury/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// setupRouter registers every route. The package-level store, gate and hub
// must be set first.
func setupRouter(r *gin.Engine, corsOrigins []string) *gin.Engine {
	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	upgrader.CheckOrigin = func(req *http.Request) bool {
		origin := req.Header.Get("Origin")
		return origin == "" || slices.Contains(corsOrigins, origin)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	// Public routes
	api.GET("/balance", getBalance)
	api.GET("/overview", getOverview)
	api.GET("/totals", getTotals)
	api.GET("/transactions", getTransactions)
	api.GET("/transactions/export", exportTransactions)
	api.GET("/events", getEvents)
	api.GET("/announcements", getAnnouncements)
	api.GET("/live", serveLive)

	api.POST("/auth/login", login)
	api.POST("/auth/logout", logout)
	api.GET("/auth/session", getSession)

	// Admin routes
	admin := api.Group("/admin", requireAdmin())
	admin.POST("/transactions", createTransaction)
	admin.PUT("/transactions/:id", updateTransaction)
	admin.DELETE("/transactions/:id", deleteTransaction)
	admin.POST("/events", createEvent)
	admin.PUT("/events/:id", updateEvent)
	admin.DELETE("/events/:id", deleteEvent)
	admin.POST("/events/:id/toggle-status", toggleEventStatus)
	admin.POST("/announcements", createAnnouncement)
	admin.PUT("/announcements/:id", updateAnnouncement)
	admin.DELETE("/announcements/:id", deleteAnnouncement)

	return r
}
