// Package http provides HTTP handlers for field encryption key administration.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	cryptoDomain "github.com/allisson/mealguard/internal/crypto/domain"
	"github.com/allisson/mealguard/internal/httputil"
)

// KeyCatalog describes the loaded field encryption keys.
type KeyCatalog interface {
	CurrentVersion() int
	Versions(ctx context.Context) ([]cryptoDomain.KeyInfo, error)
}

// KeyResponse lists the loaded key versions. Key material is never included.
type KeyResponse struct {
	CurrentVersion int                    `json:"current_version"`
	Keys           []cryptoDomain.KeyInfo `json:"keys"`
}

// KeyHandler handles HTTP requests for field encryption key status.
type KeyHandler struct {
	keys   KeyCatalog
	logger *slog.Logger
}

// NewKeyHandler creates a new key handler.
func NewKeyHandler(keys KeyCatalog, logger *slog.Logger) *KeyHandler {
	return &KeyHandler{
		keys:   keys,
		logger: logger,
	}
}

// ListHandler reports every loaded key version with its current and deprecated flags.
// GET /v1/admin/keys - Requires the super_admin role.
func (h *KeyHandler) ListHandler(c *gin.Context) {
	infos, err := h.keys.Versions(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, KeyResponse{
		CurrentVersion: h.keys.CurrentVersion(),
		Keys:           infos,
	})
}
