package ping

import (
	"context"
	"fmt"

	"bedrock-slash/pkg/slash"
)

const pingCommandName = "ping"

// Module greets the invoking source and echoes its arguments for /<prefix>ping.
type Module struct {
	messenger slash.Messenger
}

// New creates a ping module that replies through messenger.
func New(messenger slash.Messenger) *Module {
	return &Module{messenger: messenger}
}

// Name returns the stable module identifier.
func (m *Module) Name() string {
	return "ping"
}

// Spec declares the ping command with one mandatory and one optional parameter.
func (m *Module) Spec() slash.ModuleSpec {
	return slash.ModuleSpec{
		Commands: []slash.Registration{
			{
				Command: slash.NewCommand().
					SetName(pingCommandName).
					SetDescription("Ping pong").
					AddStringOption("name", true).
					AddIntegerOption("amount", false).
					SetPermissionName("Any").
					MustBuild(),
				Run: m.handleCommand,
			},
		},
	}
}

func (m *Module) handleCommand(ctx context.Context, origin slash.Origin, args []any) *slash.CommandResult {
	if m.messenger == nil {
		return slash.Failure("ping: messenger not configured")
	}

	lines := []string{fmt.Sprintf("Hello, %s!", greetingName(origin))}
	if len(args) > 0 {
		lines = append(lines, fmt.Sprintf("another %v", args[0]))
	}
	if len(args) > 1 && args[1] != nil {
		lines = append(lines, fmt.Sprintf("yo %v", args[1]))
	}

	for _, line := range lines {
		if err := m.messenger.SendMessage(ctx, line); err != nil {
			return slash.Failure(fmt.Sprintf("ping send message: %v", err))
		}
	}

	return nil
}

// greetingName prefers the entity name for entity origins and falls back to the source type.
func greetingName(origin slash.Origin) string {
	if origin.SourceType == slash.SourceTypeEntity {
		if entity, ok := origin.Entity(); ok {
			return entity.Name
		}
	}

	return string(origin.SourceType)
}

var _ slash.Module = (*Module)(nil)
