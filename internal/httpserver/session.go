package httpserver

import (
	"net/http"

	"applestore-clone/internal/catalog"
	"applestore-clone/internal/domain"
	"applestore-clone/internal/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	catalogCtxKey = "catalog"
	userCtxKey    = "user"
)

type federatedSignInRequest struct {
	IDToken     string `json:"idToken"`
	AccessToken string `json:"accessToken"`
}

type sessionResponse struct {
	State session.State `json:"state"`
	User  *domain.User  `json:"user,omitempty"`
	Error string        `json:"error,omitempty"`
}

type sessionHandlers struct {
	manager SessionManager
	logger  *zap.Logger
}

func (h *sessionHandlers) current() sessionResponse {
	return sessionResponse{
		State: h.manager.State(),
		User:  h.manager.User(),
		Error: h.manager.ErrorMessage(),
	}
}

// signIn takes the tokens the client obtained from the provider SDK and runs the federated flow.
func (h *sessionHandlers) signIn(c *gin.Context) {
	var req federatedSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.manager.SignInWithFederatedProvider(c.Request.Context(), session.IssuedTokens{
		IDToken:     req.IDToken,
		AccessToken: req.AccessToken,
	})

	resp := h.current()
	if resp.State != session.Authenticated {
		h.logger.Info("http: federated sign-in rejected", zap.String("reason", resp.Error))
		c.JSON(http.StatusUnauthorized, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *sessionHandlers) show(c *gin.Context) {
	c.JSON(http.StatusOK, h.current())
}

func (h *sessionHandlers) end(c *gin.Context) {
	h.manager.EndSession()
	c.Status(http.StatusNoContent)
}

// sessionMiddleware rejects requests without an authenticated session and stores the session's
// catalog and user on the gin context.
func sessionMiddleware(manager SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if manager.State() != session.Authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
			return
		}
		store := manager.Catalog()
		user := manager.User()
		if store == nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session ended"})
			return
		}
		c.Set(catalogCtxKey, store)
		c.Set(userCtxKey, user)
		c.Next()
	}
}

func catalogFrom(c *gin.Context) *catalog.Store {
	return c.MustGet(catalogCtxKey).(*catalog.Store)
}

func userFrom(c *gin.Context) *domain.User {
	return c.MustGet(userCtxKey).(*domain.User)
}
