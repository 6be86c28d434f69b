package registry

import "go.uber.org/zap"

type stagedComponent struct {
	id        uint64
	component *Component
}

// RegisterBatch registers inputs in order under sequential ids and returns the
// id of the last one. Either every entry is committed or none is: all records
// are staged and checked for collisions before the tables are touched.
//
// An empty batch changes nothing and returns the current last id.
func (r *Registry) RegisterBatch(caller Identity, inputs []ComponentInput) (uint64, error) {
	const op = "RegisterBatch"

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireProducer(op, caller); err != nil {
		return 0, err
	}
	if len(inputs) > r.maxBatchSize {
		return 0, r.reject(op, caller, KindBatchTooLarge)
	}

	now := r.clock.Now()
	staged := make([]stagedComponent, 0, len(inputs))
	lastID := r.lastComponentID
	for _, in := range inputs {
		id := lastID + 1
		if _, exists := r.components[id]; exists {
			return 0, r.reject(op, caller, KindAlreadyExists)
		}
		staged = append(staged, stagedComponent{
			id: id,
			component: &Component{
				SerialNumber: in.SerialNumber,
				Material:     in.Material,
				Producer:     caller,
				CreatedAt:    now,
				UpdatedAt:    now,
			},
		})
		lastID = id
	}

	for _, s := range staged {
		r.components[s.id] = s.component
		r.eventCounters[s.id] = 0
	}
	r.lastComponentID = lastID

	r.logger.Debug("batch registered",
		zap.String("caller", string(caller)),
		zap.Int("count", len(staged)),
		zap.Uint64("last_component_id", lastID),
	)
	return lastID, nil
}
