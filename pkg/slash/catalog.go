package slash

import "context"

// RegisteredCommand describes one command registered with the host.
type RegisteredCommand struct {
	// ModuleName identifies which module registered this command.
	ModuleName string `json:"module,omitempty"`
	// Command is the final definition, name already prefixed.
	Command CommandSpec `json:"definition"`
}

// RegisteredEvent describes one event subscription registered with the host.
type RegisteredEvent struct {
	// ModuleName identifies which module registered this subscription.
	ModuleName string `json:"module,omitempty"`
	// Name is the host event name.
	Name string `json:"name"`
	// Phase is the selected event group.
	Phase EventPhase `json:"type"`
}

// CommandCatalog provides read access to registered commands.
type CommandCatalog interface {
	// ListCommands returns all registered command entries.
	//
	// Returned entries are deep copies so caller mutation does not affect
	// registration state.
	ListCommands(ctx context.Context) ([]RegisteredCommand, error)
}
