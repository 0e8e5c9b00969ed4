// Package handlers implements SarychDB's HTTP handlers: decode the
// request, call the core, write the spec §6 response shape. None of
// the query/storage engine's semantics live here — only the wire
// boundary.
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"sarychdb/infrastructure/users"
	"sarychdb/pkg/common"
	apperrors "sarychdb/pkg/errors"
	"sarychdb/pkg/utils"
)

// UserHandler handles user registration requests.
type UserHandler struct {
	registry *users.Registry
	errs     *apperrors.Handler
	logger   *zap.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(registry *users.Registry, errs *apperrors.Handler, logger *zap.Logger) *UserHandler {
	return &UserHandler{registry: registry, errs: errs, logger: logger}
}

// CreateUserRequest is the POST /users request body.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=1"`
}

// CreateUserResponse is the POST /users response body.
type CreateUserResponse struct {
	Username string `json:"username"`
	Time     int64  `json:"time"`
}

// CreateUser handles POST /users.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	start, _ := common.GetStartTime(r.Context())

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errs.Handle(w, r, start, apperrors.NewBadRequest("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errs.Handle(w, r, start, apperrors.NewBadRequest(err.Error()))
		return
	}

	if err := h.registry.CreateUser(req.Username, req.Password); err != nil {
		h.errs.Handle(w, r, start, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, CreateUserResponse{
		Username: req.Username,
		Time:     common.ElapsedMillis(r.Context()),
	})
}
