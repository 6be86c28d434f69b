package registry

import "go.uber.org/zap"

func (r *Registry) requireAdmin(op string, caller Identity) error {
	if !r.IsAdmin(caller) {
		return r.reject(op, caller, KindUnauthorized)
	}
	return nil
}

// requireProducer gates the operations that record production data.
// Caller must hold r.mu.
func (r *Registry) requireProducer(op string, caller Identity) error {
	// Step 1: pause gate
	if r.paused {
		return r.reject(op, caller, KindContractPaused)
	}

	// Step 2: any assigned role, or the admin
	if r.roles[caller] == RoleNone && !r.IsAdmin(caller) {
		return r.reject(op, caller, KindUnauthorized)
	}

	return nil
}

func (r *Registry) reject(op string, caller Identity, kind Kind) error {
	r.logger.Debug("operation rejected",
		zap.String("op", op),
		zap.String("caller", string(caller)),
		zap.Stringer("kind", kind),
	)
	return opError(op, kind)
}
