package audit

// Action identifies the registry mutation an audit record describes.
type Action uint8

const (
	ActionPauseSet Action = iota + 1
	ActionRoleAssigned
	ActionComponentRegistered
	ActionBatchRegistered
	ActionLifecycleRecorded
)

func (a Action) String() string {
	switch a {
	case ActionPauseSet:
		return "pause_set"
	case ActionRoleAssigned:
		return "role_assigned"
	case ActionComponentRegistered:
		return "component_registered"
	case ActionBatchRegistered:
		return "batch_registered"
	case ActionLifecycleRecorded:
		return "lifecycle_recorded"
	default:
		return "unknown"
	}
}

// Record is one committed registry mutation.
type Record struct {
	Action      Action
	Caller      string
	ComponentID uint64 // Zero for pause and role changes
	EventIndex  uint64 // Only set for lifecycle records
	Detail      string
}
