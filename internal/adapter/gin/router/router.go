package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"users-api/internal/adapter/gin/docs"
	"users-api/internal/adapter/gin/handler"
	"users-api/internal/adapter/gin/middleware"
	"users-api/internal/adapter/ratelimit"
)

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	pinger handler.Pinger,
	rateLimiter *ratelimit.Limiter,
	serviceName string,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(middleware.Handlers(middleware.Pipeline(log, rateLimiter))...)

	router.GET("/", handler.Root)
	router.GET("/health", handler.Health(pinger, serviceName, log))

	router.GET("/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", docs.OpenAPI)
	})
	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
		httpSwagger.URL("/openapi.json"),
	)))

	registerUserRoutes(router.Group("/users"), userHandler)
	registerUserRoutes(router.Group("/v1/users"), userHandler)

	return router
}

func registerUserRoutes(users *gin.RouterGroup, h *handler.UserHandler) {
	users.GET("", h.ListUsers)
	users.POST("", h.CreateUser)
	users.GET("/:id", h.GetUser)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)
}
