package registry

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

const (
	DefaultMaxBatchSize = 100
	// DefaultNullIdentity is the burn address that can never hold a role.
	DefaultNullIdentity Identity = "SP000000000000000000002Q6VF78"
)

// Registry is the component tracking state machine. All operations are
// serialised by mu; a batch registration is a single critical section.
type Registry struct {
	mu sync.RWMutex

	admin        Identity
	nullIdentity Identity
	maxBatchSize int
	clock        Clock
	logger       *zap.Logger

	paused          bool
	lastComponentID uint64
	roles           map[Identity]Role
	components      map[uint64]*Component
	lifecycleEvents map[eventKey]LifecycleEvent
	eventCounters   map[uint64]uint64
}

type Option func(*Registry)

func WithClock(c Clock) Option {
	return func(r *Registry) { r.clock = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

func WithMaxBatchSize(n int) Option {
	return func(r *Registry) { r.maxBatchSize = n }
}

func WithNullIdentity(id Identity) Option {
	return func(r *Registry) { r.nullIdentity = id }
}

// New creates an empty, unpaused registry administered by admin.
func New(admin Identity, opts ...Option) *Registry {
	r := &Registry{
		admin:           admin,
		nullIdentity:    DefaultNullIdentity,
		maxBatchSize:    DefaultMaxBatchSize,
		clock:           UnixClock{},
		logger:          zap.NewNop(),
		roles:           make(map[Identity]Role),
		components:      make(map[uint64]*Component),
		lifecycleEvents: make(map[eventKey]LifecycleEvent),
		eventCounters:   make(map[uint64]uint64),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.Named("registry")
	return r
}

func (r *Registry) Admin() Identity { return r.admin }

func (r *Registry) Paused() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.paused
}

func (r *Registry) LastComponentID() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastComponentID
}

func (r *Registry) IsAdmin(caller Identity) bool {
	return caller == r.admin
}

// SetPaused toggles the pause gate. Admin only; allowed while paused.
func (r *Registry) SetPaused(caller Identity, pause bool) (bool, error) {
	const op = "SetPaused"
	if err := r.requireAdmin(op, caller); err != nil {
		return false, err
	}

	r.mu.Lock()
	r.paused = pause
	r.mu.Unlock()

	r.logger.Debug("pause updated", zap.String("caller", string(caller)), zap.Bool("paused", pause))
	return pause, nil
}

// AssignRole grants user a Supplier or Regulator role, replacing any prior role.
func (r *Registry) AssignRole(caller, user Identity, role Role) (bool, error) {
	const op = "AssignRole"
	if err := r.requireAdmin(op, caller); err != nil {
		return false, err
	}
	if user == r.nullIdentity {
		return false, r.reject(op, caller, KindInvalidTarget)
	}
	if !role.Assignable() {
		return false, r.reject(op, caller, KindInvalidRole)
	}

	r.mu.Lock()
	r.roles[user] = role
	r.mu.Unlock()

	r.logger.Debug("role assigned",
		zap.String("caller", string(caller)),
		zap.String("user", string(user)),
		zap.Stringer("role", role),
	)
	return true, nil
}

// RegisterComponent stores a new component produced by caller and returns its id.
func (r *Registry) RegisterComponent(caller Identity, serialNumber, material string) (uint64, error) {
	const op = "RegisterComponent"

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireProducer(op, caller); err != nil {
		return 0, err
	}

	id := r.lastComponentID + 1
	if _, exists := r.components[id]; exists {
		return 0, r.reject(op, caller, KindAlreadyExists)
	}

	now := r.clock.Now()
	r.components[id] = &Component{
		SerialNumber: serialNumber,
		Material:     material,
		Producer:     caller,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.eventCounters[id] = 0
	r.lastComponentID = id

	r.logger.Debug("component registered",
		zap.String("caller", string(caller)),
		zap.Uint64("component_id", id),
		zap.String("serial_number", serialNumber),
	)
	return id, nil
}

// AddLifecycleEvent appends an event to a component and returns its 1-based index.
// Stage order is not enforced.
func (r *Registry) AddLifecycleEvent(caller Identity, componentID uint64, status Status, notes string) (uint64, error) {
	const op = "AddLifecycleEvent"

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireProducer(op, caller); err != nil {
		return 0, err
	}
	comp, ok := r.components[componentID]
	if !ok {
		return 0, r.reject(op, caller, KindNotFound)
	}
	if !status.Valid() {
		return 0, r.reject(op, caller, KindInvalidStatus)
	}

	count, ok := r.eventCounters[componentID]
	if !ok {
		panic(fmt.Sprintf("registry: component %d has no event counter", componentID))
	}

	index := count + 1
	now := r.clock.Now()
	r.lifecycleEvents[eventKey{componentID: componentID, index: index}] = LifecycleEvent{
		Status:     status,
		Timestamp:  now,
		Notes:      notes,
		RecordedBy: caller,
	}
	r.eventCounters[componentID] = index
	comp.UpdatedAt = now

	r.logger.Debug("lifecycle event recorded",
		zap.String("caller", string(caller)),
		zap.Uint64("component_id", componentID),
		zap.Uint64("event_index", index),
		zap.Stringer("status", status),
	)
	return index, nil
}

func (r *Registry) GetComponent(id uint64) (Component, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comp, ok := r.components[id]
	if !ok {
		return Component{}, opError("GetComponent", KindNotFound)
	}
	return *comp, nil
}

func (r *Registry) GetLifecycleEvent(componentID, eventIndex uint64) (LifecycleEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ev, ok := r.lifecycleEvents[eventKey{componentID: componentID, index: eventIndex}]
	if !ok {
		return LifecycleEvent{}, opError("GetLifecycleEvent", KindNotFound)
	}
	return ev, nil
}

// GetEventCount never fails; unknown components report 0.
func (r *Registry) GetEventCount(componentID uint64) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.eventCounters[componentID]
}

// GetRole never fails; unassigned identities report RoleNone.
func (r *Registry) GetRole(user Identity) Role {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.roles[user]
}
