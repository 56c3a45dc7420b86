package enumpick

import (
	"context"
	"fmt"

	"bedrock-slash/pkg/slash"
)

const (
	enumCommandName = "enum"
	enumLocalName   = "foo_enum"
)

// enumValues lists the choices offered by the enum command.
var enumValues = []string{"foo", "bar", "doe"}

// Module announces the value picked from a registered enum.
type Module struct {
	prefix    string
	messenger slash.Messenger
}

// New creates an enum demo module. prefix must match the registrar command prefix
// because the host requires enum names to share the command namespace.
func New(prefix string, messenger slash.Messenger) *Module {
	return &Module{prefix: prefix, messenger: messenger}
}

// Name returns the stable module identifier.
func (m *Module) Name() string {
	return "enumpick"
}

// EnumName returns the namespaced enum name registered by this module.
func (m *Module) EnumName() string {
	return m.prefix + enumLocalName
}

// Spec declares the enum command with one mandatory enum parameter.
func (m *Module) Spec() slash.ModuleSpec {
	return slash.ModuleSpec{
		Commands: []slash.Registration{
			{
				Command: slash.NewCommand().
					SetName(enumCommandName).
					SetDescription("Pick one value from a fixed list").
					RegisterEnum(m.EnumName(), enumValues).
					AddEnumOption(m.EnumName(), true).
					SetPermissionName("Any").
					MustBuild(),
				Run: m.handleCommand,
			},
		},
	}
}

func (m *Module) handleCommand(ctx context.Context, _ slash.Origin, args []any) *slash.CommandResult {
	if m.messenger == nil {
		return slash.Failure("enumpick: messenger not configured")
	}
	if len(args) == 0 {
		return slash.Failure("enumpick: missing enum value")
	}

	if err := m.messenger.SendMessage(ctx, fmt.Sprintf("Selected enum: %v", args[0])); err != nil {
		return slash.Failure(fmt.Sprintf("enumpick send message: %v", err))
	}

	return nil
}

var _ slash.Module = (*Module)(nil)
