package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/kibshh/component-tracker/backend/internal/registry"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  uint32 `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// writeRegistryError maps a registry rejection to an HTTP status and a body
// carrying the kind name and its numeric result code.
func writeRegistryError(w http.ResponseWriter, err error) {
	kind := registry.KindOf(err)
	writeJSON(w, statusFor(kind), errorResponse{Error: kind.String(), Code: kind.Code()})
}

func statusFor(kind registry.Kind) int {
	switch kind {
	case registry.KindUnauthorized:
		return http.StatusForbidden
	case registry.KindNotFound:
		return http.StatusNotFound
	case registry.KindAlreadyExists:
		return http.StatusConflict
	case registry.KindContractPaused:
		return http.StatusServiceUnavailable
	case registry.KindBatchTooLarge:
		return http.StatusRequestEntityTooLarge
	case registry.KindInvalidRole, registry.KindInvalidStatus, registry.KindInvalidTarget:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// requireCaller reads the caller identity header, answering 401 when absent.
func requireCaller(w http.ResponseWriter, r *http.Request) (registry.Identity, bool) {
	caller := strings.TrimSpace(r.Header.Get(CallerHeader))
	if caller == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing caller identity"})
		return "", false
	}
	return registry.Identity(caller), true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeBadRequest(w, "invalid json")
		return false
	}
	return true
}

func pathUint(w http.ResponseWriter, r *http.Request, name string) (uint64, bool) {
	n, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil {
		writeBadRequest(w, "invalid "+name)
		return 0, false
	}
	return n, true
}
