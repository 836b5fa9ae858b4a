// File: internal/github/handler.go
package github

import (
	"net/http"

	"devconnect_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for the GitHub lookup handler.
type Handler struct {
	client *Client
	logger *zap.Logger
}

// NewHandler creates a new GitHub lookup handler.
func NewHandler(client *Client, logger *zap.Logger) *Handler {
	return &Handler{
		client: client,
		logger: logger,
	}
}

// RegisterRoutes sets up the public GitHub lookup route under the profile group.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/profile/github/:username", h.getRepos)
}

func (h *Handler) getRepos(c *gin.Context) {
	username := c.Param("username")

	repos, err := h.client.ListRepos(c.Request.Context(), username)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, repos)
}
