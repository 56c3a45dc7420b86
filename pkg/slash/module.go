package slash

import "fmt"

// Registration pairs one command definition with its handler.
type Registration struct {
	Command CommandSpec
	Run     CommandHandler
}

// Validate checks registration coherence.
func (r Registration) Validate() error {
	if err := r.Command.Validate(); err != nil {
		return fmt.Errorf("validate registration: %w", err)
	}
	if r.Run == nil {
		return fmt.Errorf("validate registration %s: nil run: %w", r.Command.Name, ErrInvalidArgument)
	}

	return nil
}

// ModuleSpec declares everything one module registers at startup.
type ModuleSpec struct {
	// Commands lists command registrations in registration order.
	Commands []Registration
	// Events lists world event subscriptions in subscription order.
	Events []EventRegistration
}

// Module is one plugin feature bundle installed during startup.
//
// Spec is read exactly once; the returned lists are not mutated afterwards.
type Module interface {
	// Name returns a stable module identifier.
	Name() string
	// Spec returns the declarative commands and events of the module.
	Spec() ModuleSpec
}
