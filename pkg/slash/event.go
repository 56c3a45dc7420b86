package slash

import (
	"fmt"
	"strings"
)

// EventPhase selects the host event group: 0 for before-events, 1 for after-events.
type EventPhase int

const (
	// EventPhaseBefore subscribes to the pre-event group.
	EventPhaseBefore EventPhase = 0
	// EventPhaseAfter subscribes to the post-event group.
	EventPhaseAfter EventPhase = 1
)

// String returns a readable phase name.
func (p EventPhase) String() string {
	switch p {
	case EventPhaseBefore:
		return "before"
	case EventPhaseAfter:
		return "after"
	default:
		return fmt.Sprintf("EventPhase(%d)", int(p))
	}
}

// Validate checks whether one phase maps to a host event group.
func (p EventPhase) Validate() error {
	switch p {
	case EventPhaseBefore, EventPhaseAfter:
		return nil
	default:
		return fmt.Errorf("validate event phase: unsupported phase %d: %w", int(p), ErrInvalidArgument)
	}
}

// EventRegistration declares one world event subscription.
type EventRegistration struct {
	// Name is the host event name such as "playerSpawn".
	Name string
	// Phase selects the before or after group.
	Phase EventPhase
	// Run receives every delivery's arguments unchanged.
	Run EventCallback
}

// Validate checks event registration coherence.
func (r EventRegistration) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("validate event registration: missing name: %w", ErrInvalidArgument)
	}
	if err := r.Phase.Validate(); err != nil {
		return fmt.Errorf("validate event registration %s: %w", r.Name, err)
	}
	if r.Run == nil {
		return fmt.Errorf("validate event registration %s: nil run: %w", r.Name, ErrInvalidArgument)
	}

	return nil
}
