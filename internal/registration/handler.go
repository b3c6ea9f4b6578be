package registration

import (
	"encoding/json"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/linechat/backend/internal/httpx"
	"github.com/linechat/backend/pkg/apperrors"
)

// Handler exposes the HTTP endpoint for invitation-key registration.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(db *sqlx.DB, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: NewService(db, logger), logger: logger}
}

// RegisterRequest request body for the register endpoint.
type RegisterRequest struct {
	Key      string `json:"key"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResponse response body containing the new user id.
type RegisterResponse struct {
	Success bool  `json:"success"`
	UserID  int64 `json:"userId"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid register payload", "err", err)
		httpx.WriteError(w, apperrors.InvalidArg("invalid payload"))
		return
	}
	id, err := h.svc.Register(r.Context(), req.Key, req.Username, req.Password)
	if err != nil {
		h.logger.Debugw("registration failed", "username", req.Username, "err", err)
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, RegisterResponse{Success: true, UserID: id})
}
