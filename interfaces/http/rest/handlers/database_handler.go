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

// DatabaseHandler handles database creation and listing requests.
type DatabaseHandler struct {
	registry *users.Registry
	errs     *apperrors.Handler
	logger   *zap.Logger
}

// NewDatabaseHandler creates a DatabaseHandler.
func NewDatabaseHandler(registry *users.Registry, errs *apperrors.Handler, logger *zap.Logger) *DatabaseHandler {
	return &DatabaseHandler{registry: registry, errs: errs, logger: logger}
}

// CreateDatabaseRequest is the POST /databases request body.
type CreateDatabaseRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	DBName   string `json:"db_name" validate:"required,min=1,max=200"`
}

// CreateDatabaseResponse is the POST /databases response body.
type CreateDatabaseResponse struct {
	DBName string `json:"db_name"`
	Time   int64  `json:"time"`
}

// CreateDatabase handles POST /databases.
func (h *DatabaseHandler) CreateDatabase(w http.ResponseWriter, r *http.Request) {
	start, _ := common.GetStartTime(r.Context())

	var req CreateDatabaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errs.Handle(w, r, start, apperrors.NewBadRequest("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errs.Handle(w, r, start, apperrors.NewBadRequest(err.Error()))
		return
	}

	if err := h.registry.Authenticate(req.Username, req.Password); err != nil {
		h.errs.Handle(w, r, start, err)
		return
	}

	if err := h.registry.CreateDatabase(req.Username, req.DBName); err != nil {
		h.errs.Handle(w, r, start, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, CreateDatabaseResponse{
		DBName: req.DBName,
		Time:   common.ElapsedMillis(r.Context()),
	})
}

// ListDatabasesResponse is the GET /databases response body.
type ListDatabasesResponse struct {
	Databases []string `json:"databases"`
	Time      int64    `json:"time"`
}

// ListDatabases handles GET /databases?username=...&password=....
func (h *DatabaseHandler) ListDatabases(w http.ResponseWriter, r *http.Request) {
	start, _ := common.GetStartTime(r.Context())

	username := r.URL.Query().Get("username")
	password := r.URL.Query().Get("password")

	if username == "" || password == "" {
		h.errs.Handle(w, r, start, apperrors.NewAuthFailed("missing username or password query parameter"))
		return
	}
	if err := h.registry.Authenticate(username, password); err != nil {
		h.errs.Handle(w, r, start, err)
		return
	}

	dbs, err := h.registry.ListDatabases(username)
	if err != nil {
		h.errs.Handle(w, r, start, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, ListDatabasesResponse{
		Databases: dbs,
		Time:      common.ElapsedMillis(r.Context()),
	})
}
