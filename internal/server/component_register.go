package server

import (
	"net/http"
	"strconv"

	"github.com/kibshh/component-tracker/backend/internal/audit"
	"github.com/kibshh/component-tracker/backend/internal/registry"
)

type componentRequest struct {
	SerialNumber string `json:"serial_number"`
	Material     string `json:"material"`
}

type registerResponse struct {
	ComponentID uint64 `json:"component_id"`
}

type batchRequest struct {
	Components []componentRequest `json:"components"`
}

type batchResponse struct {
	LastComponentID uint64 `json:"last_component_id"`
}

func (s *Server) handleComponentRegister(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req componentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	id, err := s.registry.RegisterComponent(caller, req.SerialNumber, req.Material)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	s.publish(r.Context(), audit.Record{
		Action:      audit.ActionComponentRegistered,
		Caller:      string(caller),
		ComponentID: id,
		Detail:      req.SerialNumber,
	})
	writeJSON(w, http.StatusCreated, registerResponse{ComponentID: id})
}

// handleComponentBatch registers a batch all-or-nothing. One audit record is
// emitted per new component plus a summary record for the batch.
func (s *Server) handleComponentBatch(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req batchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	inputs := make([]registry.ComponentInput, len(req.Components))
	for i, c := range req.Components {
		inputs[i] = registry.ComponentInput{SerialNumber: c.SerialNumber, Material: c.Material}
	}

	lastID, err := s.registry.RegisterBatch(caller, inputs)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	if n := len(inputs); n > 0 {
		records := make([]audit.Record, 0, n+1)
		firstID := lastID - uint64(n) + 1
		for i, in := range inputs {
			records = append(records, audit.Record{
				Action:      audit.ActionComponentRegistered,
				Caller:      string(caller),
				ComponentID: firstID + uint64(i),
				Detail:      in.SerialNumber,
			})
		}
		records = append(records, audit.Record{
			Action:      audit.ActionBatchRegistered,
			Caller:      string(caller),
			ComponentID: lastID,
			Detail:      strconv.Itoa(n),
		})
		s.publish(r.Context(), records...)
	}
	writeJSON(w, http.StatusCreated, batchResponse{LastComponentID: lastID})
}
