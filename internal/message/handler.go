package message

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/linechat/backend/internal/httpx"
	"github.com/linechat/backend/pkg/apperrors"
)

// Handler exposes HTTP endpoints for sending and syncing messages.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(db *sqlx.DB, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: NewService(db), logger: logger}
}

// SendRequest request body for the send endpoint.
type SendRequest struct {
	SenderID    int64   `json:"sender_id"`
	ReceiverID  int64   `json:"receiver_id"`
	TextContent *string `json:"text_content"`
	MediaIDRef  *int64  `json:"media_id_ref"`
}

// SendResponse reports whether the append was accepted.
type SendResponse struct {
	Success bool `json:"success"`
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid send payload", "err", err)
		httpx.WriteError(w, apperrors.InvalidArg("invalid payload"))
		return
	}
	if err := h.svc.Send(r.Context(), req.SenderID, req.ReceiverID, req.TextContent, req.MediaIDRef); err != nil {
		h.logger.Warnw("send failed", "sender_id", req.SenderID, "err", err)
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, SendResponse{Success: true})
}

// Sync serves the cursor query. `after` defaults to 0, returning the full
// history for the user.
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	rawUser := r.URL.Query().Get("userId")
	if rawUser == "" {
		httpx.WriteError(w, apperrors.ErrMissingUserID)
		return
	}
	userID, err := strconv.ParseInt(rawUser, 10, 64)
	if err != nil {
		httpx.WriteError(w, apperrors.InvalidArg("invalid user id"))
		return
	}
	var after int64
	if rawAfter := r.URL.Query().Get("after"); rawAfter != "" {
		after, err = strconv.ParseInt(rawAfter, 10, 64)
		if err != nil {
			httpx.WriteError(w, apperrors.InvalidArg("invalid after cursor"))
			return
		}
	}
	msgs, err := h.svc.Sync(r.Context(), userID, after)
	if err != nil {
		h.logger.Warnw("sync failed", "user_id", userID, "err", err)
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, msgs)
}
