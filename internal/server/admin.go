package server

import (
	"net/http"
	"strconv"

	"github.com/kibshh/component-tracker/backend/internal/audit"
	"github.com/kibshh/component-tracker/backend/internal/registry"
)

type pauseRequest struct {
	Paused *bool `json:"paused"`
}

type pauseResponse struct {
	Paused bool `json:"paused"`
}

// handlePause toggles the registry pause gate (admin only).
func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req pauseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Paused == nil {
		writeBadRequest(w, "paused is required")
		return
	}

	paused, err := s.registry.SetPaused(caller, *req.Paused)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	s.publish(r.Context(), audit.Record{
		Action: audit.ActionPauseSet,
		Caller: string(caller),
		Detail: strconv.FormatBool(paused),
	})
	writeJSON(w, http.StatusOK, pauseResponse{Paused: paused})
}

type roleAssignRequest struct {
	User string `json:"user"`
	Role uint32 `json:"role"`
}

type roleResponse struct {
	User string `json:"user"`
	Role uint32 `json:"role"`
}

// handleRoleAssign grants a supplier or regulator role (admin only).
func (s *Server) handleRoleAssign(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req roleAssignRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.User == "" {
		writeBadRequest(w, "user is required")
		return
	}

	role := registry.Role(req.Role)
	if _, err := s.registry.AssignRole(caller, registry.Identity(req.User), role); err != nil {
		writeRegistryError(w, err)
		return
	}

	s.publish(r.Context(), audit.Record{
		Action: audit.ActionRoleAssigned,
		Caller: string(caller),
		Detail: req.User + "=" + role.String(),
	})
	writeJSON(w, http.StatusOK, roleResponse{User: req.User, Role: req.Role})
}

func (s *Server) handleRoleGet(w http.ResponseWriter, r *http.Request) {
	user := r.PathValue("user")
	role := s.registry.GetRole(registry.Identity(user))
	writeJSON(w, http.StatusOK, roleResponse{User: user, Role: uint32(role)})
}
