package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/askdb-inc/askdb-engine/pkg/services"
)

// NL2SQLRequest is the request body for question endpoints.
type NL2SQLRequest struct {
	Question string `json:"question"`
	Confirm  bool   `json:"confirm"`
}

// ValidateRequest is the request body for the validation endpoint.
type ValidateRequest struct {
	SQL string `json:"sql"`
}

// ValidateResponse reports the safety verdict for a statement.
type ValidateResponse struct {
	IsSafe       bool   `json:"is_safe"`
	SanitizedSQL string `json:"sanitized_sql,omitempty"`
	Error        string `json:"error,omitempty"`
}

// SchemaResponse carries the text rendering of the datastore schema.
type SchemaResponse struct {
	Schema string `json:"schema"`
}

// NL2SQLHandler exposes the question pipeline over HTTP.
type NL2SQLHandler struct {
	svc    *services.NL2SQLService
	logger *zap.Logger
}

// NewNL2SQLHandler creates a new NL2SQLHandler.
func NewNL2SQLHandler(svc *services.NL2SQLService, logger *zap.Logger) *NL2SQLHandler {
	return &NL2SQLHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers the handler's routes on the given mux.
func (h *NL2SQLHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/nl2sql", h.Process)
	mux.HandleFunc("POST /api/nl2sql/generate", h.Generate)
	mux.HandleFunc("POST /api/nl2sql/validate", h.Validate)
	mux.HandleFunc("GET /api/nl2sql/schema", h.Schema)
}

// Process handles POST /api/nl2sql requests. It converts the question
// to SQL and either executes it or, for an unconfirmed write, returns
// a preview.
func (h *NL2SQLHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req NL2SQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result := h.svc.Process(r.Context(), req.Question, req.Confirm)

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode nl2sql response", zap.Error(err))
	}
}

// Generate handles POST /api/nl2sql/generate requests. It produces SQL
// for a question without executing it.
func (h *NL2SQLHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req NL2SQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.svc.GenerateOnly(r.Context(), req.Question)
	if err != nil {
		h.logger.Error("SQL generation failed", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "generation_failed", "failed to generate SQL")
		return
	}

	if err := WriteJSON(w, http.StatusOK, result); err != nil {
		h.logger.Error("Failed to encode generate response", zap.Error(err))
	}
}

// Validate handles POST /api/nl2sql/validate requests. It checks a SQL
// statement against the safety rules without executing it.
func (h *NL2SQLHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	verdict := h.svc.ValidateOnly(req.SQL)

	resp := ValidateResponse{IsSafe: verdict.Safe}
	if verdict.Safe {
		resp.SanitizedSQL = verdict.Sanitized
	} else {
		resp.Error = verdict.Reason
	}

	if err := WriteJSON(w, http.StatusOK, resp); err != nil {
		h.logger.Error("Failed to encode validate response", zap.Error(err))
	}
}

// Schema handles GET /api/nl2sql/schema requests.
func (h *NL2SQLHandler) Schema(w http.ResponseWriter, r *http.Request) {
	text, err := h.svc.Schema(r.Context())
	if err != nil {
		h.logger.Error("Schema discovery failed", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "schema_failed", "failed to discover schema")
		return
	}

	if err := WriteJSON(w, http.StatusOK, SchemaResponse{Schema: text}); err != nil {
		h.logger.Error("Failed to encode schema response", zap.Error(err))
	}
}
