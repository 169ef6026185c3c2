package httpserver

import (
	"context"
	"errors"
	"time"

	"applestore-clone/internal/catalog"
	"applestore-clone/internal/domain"
	"applestore-clone/internal/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger reports whether the document store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SessionManager is the part of session.Manager the handlers use.
type SessionManager interface {
	SignInWithFederatedProvider(ctx context.Context, provider session.FederatedProvider)
	EndSession()
	State() session.State
	User() *domain.User
	ErrorMessage() string
	Catalog() *catalog.Store
}

// Deps are the services the router dispatches to.
type Deps struct {
	Session        SessionManager
	Docs           Pinger
	AllowedOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, deps Deps) (*gin.Engine, error) {
	if deps.Session == nil {
		return nil, errors.New("httpserver: session manager is required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(zap.NewStdLog(logger).Writer()), gin.Recovery())
	if len(deps.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Docs))

	sessions := &sessionHandlers{manager: deps.Session, logger: logger}
	router.POST("/session/federated", sessions.signIn)
	router.GET("/session", sessions.show)
	router.DELETE("/session", sessions.end)

	items := &itemHandlers{logger: logger}
	group := router.Group("/items", sessionMiddleware(deps.Session))
	group.GET("", items.list)
	group.GET("/stream", items.stream)
	group.POST("/load", items.load)
	group.POST("", items.add)
	group.PUT("/:itemId", items.update)
	group.DELETE("/:itemId", items.remove)
	group.POST("/filter", items.filter)

	return router, nil
}
