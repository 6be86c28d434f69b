package server

import (
	"net/http"

	"github.com/kibshh/component-tracker/backend/internal/audit"
	"github.com/kibshh/component-tracker/backend/internal/registry"
)

type componentResponse struct {
	ComponentID  uint64 `json:"component_id"`
	SerialNumber string `json:"serial_number"`
	Material     string `json:"material"`
	Producer     string `json:"producer"`
	CreatedAt    uint64 `json:"created_at"`
	UpdatedAt    uint64 `json:"updated_at"`
}

type lifecycleRequest struct {
	Status uint32 `json:"status"`
	Notes  string `json:"notes"`
}

type lifecycleAddResponse struct {
	EventIndex uint64 `json:"event_index"`
}

type eventResponse struct {
	ComponentID uint64 `json:"component_id"`
	EventIndex  uint64 `json:"event_index"`
	Status      uint32 `json:"status"`
	Timestamp   uint64 `json:"timestamp"`
	Notes       string `json:"notes"`
	RecordedBy  string `json:"recorded_by"`
}

type eventCountResponse struct {
	ComponentID uint64 `json:"component_id"`
	Count       uint64 `json:"count"`
}

// handleComponentGet serves GET /api/v1/components/{id}
func (s *Server) handleComponentGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}

	comp, err := s.registry.GetComponent(id)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, componentResponse{
		ComponentID:  id,
		SerialNumber: comp.SerialNumber,
		Material:     comp.Material,
		Producer:     string(comp.Producer),
		CreatedAt:    comp.CreatedAt,
		UpdatedAt:    comp.UpdatedAt,
	})
}

// handleLifecycleAdd serves POST /api/v1/components/{id}/events
func (s *Server) handleLifecycleAdd(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}

	var req lifecycleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	status := registry.Status(req.Status)
	index, err := s.registry.AddLifecycleEvent(caller, id, status, req.Notes)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	s.publish(r.Context(), audit.Record{
		Action:      audit.ActionLifecycleRecorded,
		Caller:      string(caller),
		ComponentID: id,
		EventIndex:  index,
		Detail:      status.String(),
	})
	writeJSON(w, http.StatusCreated, lifecycleAddResponse{EventIndex: index})
}

// handleEventCount never fails for a well-formed id; unknown components count 0.
func (s *Server) handleEventCount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, eventCountResponse{ComponentID: id, Count: s.registry.GetEventCount(id)})
}

// handleEventGet serves GET /api/v1/components/{id}/events/{index}
func (s *Server) handleEventGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(w, r, "id")
	if !ok {
		return
	}
	index, ok := pathUint(w, r, "index")
	if !ok {
		return
	}

	ev, err := s.registry.GetLifecycleEvent(id, index)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, eventResponse{
		ComponentID: id,
		EventIndex:  index,
		Status:      uint32(ev.Status),
		Timestamp:   ev.Timestamp,
		Notes:       ev.Notes,
		RecordedBy:  string(ev.RecordedBy),
	})
}
