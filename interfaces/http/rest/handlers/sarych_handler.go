package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"sarychdb/application/crud"
	"sarychdb/application/listing"
	"sarychdb/domain/search"
	"sarychdb/infrastructure/users"
	"sarychdb/interfaces/urlscheme"
	"sarychdb/pkg/common"
	apperrors "sarychdb/pkg/errors"
)

// SarychHandler serves ANY /sarych?url=<target>, dispatching to the
// CRUD Engine or List/Browse Pipeline per the parsed operation (spec §6).
type SarychHandler struct {
	registry *users.Registry
	engine   *crud.Engine
	errs     *apperrors.Handler
	logger   *zap.Logger
}

// NewSarychHandler creates a SarychHandler.
func NewSarychHandler(registry *users.Registry, engine *crud.Engine, errs *apperrors.Handler, logger *zap.Logger) *SarychHandler {
	return &SarychHandler{registry: registry, engine: engine, errs: errs, logger: logger}
}

// Serve handles ANY /sarych?url=....
func (h *SarychHandler) Serve(w http.ResponseWriter, r *http.Request) {
	start, _ := common.GetStartTime(r.Context())

	username, ok := common.GetUsername(r.Context())
	if !ok {
		h.errs.Handle(w, r, start, apperrors.NewAuthFailed(""))
		return
	}

	target, err := urlscheme.Parse(r.URL.Query().Get("url"))
	if err != nil {
		h.errs.Handle(w, r, start, err)
		return
	}

	if target.Username != "" && target.Username != username {
		h.logger.Debug("embedded url credentials ignored in favor of headers",
			zap.String("header_user", username), zap.String("url_user", target.Username))
	}

	if !urlscheme.ValidOperations[target.Operation] {
		h.errs.Handle(w, r, start, apperrors.NewBadRequest("unknown operation: "+target.Operation))
		return
	}

	owns, err := h.registry.OwnsDatabase(username, target.DatabaseName)
	if err != nil {
		h.errs.Handle(w, r, start, err)
		return
	}
	if !owns {
		h.errs.Handle(w, r, start, apperrors.NewForbidden("database does not belong to this user"))
		return
	}

	path := h.registry.DatabasePath(username, target.DatabaseName)
	mode := search.ParseMode(r.Header.Get("queryType"))
	query := target.Query.Get("query")

	var result interface{}
	switch target.Operation {
	case "get":
		result, err = h.handleGet(path, query, mode)
	case "post":
		result, err = h.handlePost(r, path)
	case "put":
		result, err = h.handlePut(r, path, query, mode)
	case "delete":
		result, err = h.handleDelete(path, query, mode)
	case "stats":
		result, err = h.handleStats(path)
	case "browse":
		result, err = h.handleBrowse(r, path)
	case "list":
		result, err = h.handleList(r, path)
	}

	if err != nil {
		h.errs.Handle(w, r, start, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, withTime(r, result))
}

func withTime(r *http.Request, body interface{}) map[string]interface{} {
	data, _ := json.Marshal(body)
	var m map[string]interface{}
	_ = json.Unmarshal(data, &m)
	if m == nil {
		m = make(map[string]interface{})
	}
	m["time"] = common.ElapsedMillis(r.Context())
	return m
}

func (h *SarychHandler) handleGet(path, query string, mode search.Mode) (interface{}, error) {
	records, err := h.engine.Get(path, query, mode)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"data": records}, nil
}

func (h *SarychHandler) handlePost(r *http.Request, path string) (interface{}, error) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		return nil, apperrors.NewBadRequest("invalid JSON body")
	}
	inserted, err := h.engine.Insert(path, fields)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"data": inserted}, nil
}

func (h *SarychHandler) handlePut(r *http.Request, path, query string, mode search.Mode) (interface{}, error) {
	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		return nil, apperrors.NewBadRequest("invalid JSON body")
	}

	if idUpdate := r.Header.Get("idUpdate"); idUpdate != "" {
		count, err := h.engine.UpdateByID(path, idUpdate, patch)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"updated": count}, nil
	}

	count, err := h.engine.UpdateByQuery(path, query, mode, patch)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"updated": count}, nil
}

func (h *SarychHandler) handleDelete(path, query string, mode search.Mode) (interface{}, error) {
	count, err := h.engine.DeleteByQuery(path, query, mode)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"deleted": count}, nil
}

func (h *SarychHandler) handleStats(path string) (interface{}, error) {
	stats, err := h.engine.Stats(path)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"total_records": stats.TotalRecords,
		"size_bytes":    stats.SizeBytes,
		"read_time_ms":  stats.ReadTimeMs,
		"cached":        stats.Cached,
	}, nil
}

func (h *SarychHandler) handleBrowse(r *http.Request, path string) (interface{}, error) {
	records, err := h.engine.Load(path)
	if err != nil {
		return nil, err
	}

	params, err := parseListParams(r)
	if err != nil {
		return nil, err
	}

	result, err := listing.Browse(records, listing.Params{Page: params.Page, Limit: params.Limit})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"data": result.Records, "pagination": result.Pagination}, nil
}

func (h *SarychHandler) handleList(r *http.Request, path string) (interface{}, error) {
	records, err := h.engine.Load(path)
	if err != nil {
		return nil, err
	}

	params, err := parseListParams(r)
	if err != nil {
		return nil, err
	}

	result, err := listing.List(records, params)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"data": result.Records, "pagination": result.Pagination}, nil
}

func parseListParams(r *http.Request) (listing.Params, error) {
	var params listing.Params

	if limitStr := r.Header.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return params, apperrors.NewBadRequest("limit must be an integer")
		}
		params.Limit = &limit
	}
	if pageStr := r.Header.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return params, apperrors.NewBadRequest("page must be an integer")
		}
		params.Page = &page
	}

	params.SortBy = r.Header.Get("sortBy")
	params.SortOrder = r.Header.Get("sortOrder")

	if filtersStr := r.Header.Get("filters"); filtersStr != "" {
		var filters map[string]interface{}
		if err := json.Unmarshal([]byte(filtersStr), &filters); err != nil {
			return params, apperrors.NewBadRequest("filters must be a JSON object")
		}
		params.Filters = filters
	}

	return params, nil
}
