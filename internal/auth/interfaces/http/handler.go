// Package http exposes the admin API key endpoints.
package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/response"

	"github.com/wyfcoding/ssrequity/internal/auth/application"
	"github.com/wyfcoding/ssrequity/pkg/logger"
)

// AdminHandler serves API key issuance and revocation.
type AdminHandler struct {
	keys *application.KeyService
}

func NewAdminHandler(keys *application.KeyService) *AdminHandler {
	return &AdminHandler{keys: keys}
}

// RegisterRoutes mounts the admin endpoints behind the admin token guard.
func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup, adminToken string) {
	g := router.Group("/admin", RequireAdmin(adminToken))
	g.POST("/api-keys", h.CreateKey)
	g.DELETE("/api-keys/:key", h.DeleteKey)
}

// CreateKeyRequest is the issuance payload.
type CreateKeyRequest struct {
	ClientID *int64 `json:"client_id"`
	Name     string `json:"name"`
}

// CreateKey issues a new API key for a client.
func (h *AdminHandler) CreateKey(c *gin.Context) {
	var req CreateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid request body", "")
		return
	}
	if req.ClientID == nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "client_id is required", "")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "name is required", "")
		return
	}

	key, err := h.keys.Issue(c.Request.Context(), *req.ClientID, name)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to issue API key", "client_id", *req.ClientID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to issue api key", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key":       key.Key,
		"name":      key.Name,
		"client_id": key.ClientID,
	})
}

// DeleteKey revokes a key by exact value.
func (h *AdminHandler) DeleteKey(c *gin.Context) {
	key := c.Param("key")

	deleted, err := h.keys.Revoke(c.Request.Context(), key)
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to revoke API key", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to revoke api key", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
