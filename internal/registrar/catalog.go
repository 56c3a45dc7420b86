package registrar

import (
	"context"
	"fmt"
	"sort"

	"bedrock-slash/pkg/slash"
)

// Manifest is the registration snapshot printed by diagnostics.
type Manifest struct {
	Prefix   string                    `json:"prefix"`
	Modules  []string                  `json:"modules"`
	Enums    map[string][]string       `json:"enums"`
	Commands []slash.RegisteredCommand `json:"commands"`
	Events   []slash.RegisteredEvent   `json:"events"`
}

// ListCommands returns all registered command entries sorted by final name.
func (r *Registrar) ListCommands(ctx context.Context) ([]slash.RegisteredCommand, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list commands: %w", err)
	}
	if r == nil {
		return nil, fmt.Errorf("list commands: nil registrar")
	}

	return r.snapshotCommands(), nil
}

// Manifest returns a deep-copied snapshot of everything registered so far.
func (r *Registrar) Manifest() Manifest {
	commands := r.snapshotCommands()

	r.mu.RLock()
	defer r.mu.RUnlock()

	enums := make(map[string][]string, len(r.enums))
	for name, values := range r.enums {
		enums[name] = append([]string(nil), values...)
	}

	return Manifest{
		Prefix:   r.cfg.commandPrefix,
		Modules:  append([]string{}, r.moduleOrder...),
		Enums:    enums,
		Commands: commands,
		Events:   append([]slash.RegisteredEvent{}, r.events...),
	}
}

func (r *Registrar) snapshotCommands() []slash.RegisteredCommand {
	r.mu.RLock()
	commands := make([]slash.RegisteredCommand, 0, len(r.commands))
	for _, registration := range r.commands {
		commands = append(commands, slash.RegisteredCommand{
			ModuleName: registration.moduleName,
			Command:    registration.spec.Clone(),
		})
	}
	r.mu.RUnlock()

	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Command.Name < commands[j].Command.Name
	})

	return commands
}

var _ slash.CommandCatalog = (*Registrar)(nil)
