package admin

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/linechat/backend/internal/httpx"
)

// Handler exposes the admin HTTP surface.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(db *sqlx.DB, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: NewService(db), logger: logger}
}

// GenerateKeyResponse response body containing the new key string.
type GenerateKeyResponse struct {
	Key string `json:"key"`
}

// StatsResponse response body for aggregate stats.
type StatsResponse struct {
	UserCount int64 `json:"userCount"`
}

func (h *Handler) GenerateKey(w http.ResponseWriter, r *http.Request) {
	key, err := h.svc.GenerateKey(r.Context())
	if err != nil {
		h.logger.Warnw("key generation failed", "err", err)
		httpx.WriteError(w, err)
		return
	}
	h.logger.Infow("access key issued")
	httpx.WriteJSON(w, http.StatusOK, GenerateKeyResponse{Key: key})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.GetStats(r.Context())
	if err != nil {
		h.logger.Warnw("stats query failed", "err", err)
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, StatsResponse{UserCount: n})
}
