package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bookiniad-backend/controllers"
	"bookiniad-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controller instances onto the API routes.
func SetupRouter(
	cc *controllers.ChatController,
	sc *controllers.SearchController,
	bc *controllers.BookingController,
) *gin.Engine {
	r := gin.Default()

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		chat := api.Group("/chat")
		{
			chat.POST("/sessions", cc.CreateSession)
			chat.DELETE("/sessions/:session_id", cc.CloseSession)
			chat.POST("/message", cc.Message)
		}

		api.GET("/accommodations", sc.Accommodations)
		api.GET("/flights", sc.Flights)
		api.GET("/packages", sc.Packages)

		bookings := api.Group("/bookings")
		{
			bookings.POST("", bc.Create)
			bookings.GET("/:reservation_number", bc.Inquiry)
		}

		api.GET("/performance", cc.Performance)
	}

	return r
}
