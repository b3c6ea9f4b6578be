package media

import (
	"io"
	"net/http"
	"strconv"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/linechat/backend/internal/httpx"
	"github.com/linechat/backend/pkg/apperrors"
)

// Handler exposes HTTP endpoints for media upload and download.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(db *sqlx.DB, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: NewService(db), logger: logger}
}

// UploadResponse response body containing the stored payload id.
type UploadResponse struct {
	MediaID int64 `json:"mediaId"`
}

// Upload reads the raw request body as the payload. The size limit is
// enforced while reading so an oversized body never sits fully in memory
// before rejection.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxPayloadBytes+1))
	if err != nil {
		h.logger.Debugw("upload body read failed", "err", err)
		httpx.WriteError(w, apperrors.InvalidArg("unreadable body"))
		return
	}
	if len(body) > MaxPayloadBytes {
		httpx.WriteError(w, apperrors.ErrPayloadTooLarge)
		return
	}
	id, err := h.svc.Upload(r.Context(), body, r.Header.Get("Content-Type"))
	if err != nil {
		h.logger.Warnw("upload failed", "err", err)
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, UploadResponse{MediaID: id})
}

// Download streams the stored bytes back with the original mime type.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, apperrors.InvalidArg("invalid media id"))
		return
	}
	data, mimeType, err := h.svc.Download(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", mimeType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
