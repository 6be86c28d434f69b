package registry

// Identity is an opaque caller or account token. Only equality is meaningful.
type Identity string

// Role is the access level held by an identity.
type Role uint32

const (
	RoleNone Role = iota
	RoleAdmin
	RoleSupplier
	RoleRegulator
)

// Assignable reports whether r can be granted through AssignRole.
// Admin is fixed at construction and never assignable.
func (r Role) Assignable() bool {
	return r == RoleSupplier || r == RoleRegulator
}

func (r Role) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleAdmin:
		return "admin"
	case RoleSupplier:
		return "supplier"
	case RoleRegulator:
		return "regulator"
	default:
		return "unknown"
	}
}

// Status is a lifecycle stage code.
type Status uint32

const (
	StatusProduced Status = iota + 1
	StatusTested
	StatusShipped
	StatusDelivered
)

// Valid reports whether s is one of the four defined lifecycle stages.
func (s Status) Valid() bool {
	return s >= StatusProduced && s <= StatusDelivered
}

func (s Status) String() string {
	switch s {
	case StatusProduced:
		return "produced"
	case StatusTested:
		return "tested"
	case StatusShipped:
		return "shipped"
	case StatusDelivered:
		return "delivered"
	default:
		return "unknown"
	}
}

type Component struct {
	SerialNumber string
	Material     string
	Producer     Identity
	CreatedAt    uint64 // Logical time, see Clock
	UpdatedAt    uint64 // Refreshed on every lifecycle event
}

type LifecycleEvent struct {
	Status     Status
	Timestamp  uint64
	Notes      string
	RecordedBy Identity
}

// ComponentInput is one entry of a batch registration.
type ComponentInput struct {
	SerialNumber string
	Material     string
}

type eventKey struct {
	componentID uint64
	index       uint64
}
