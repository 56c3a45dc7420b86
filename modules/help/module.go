package help

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"bedrock-slash/pkg/slash"
)

const helpCommandName = "help"

// Module replies with command reference text for /<prefix>help.
type Module struct {
	messenger      slash.Messenger
	commandCatalog slash.CommandCatalog
}

// New creates a help module reading registered commands from commandCatalog.
func New(messenger slash.Messenger, commandCatalog slash.CommandCatalog) *Module {
	return &Module{messenger: messenger, commandCatalog: commandCatalog}
}

// Name returns the stable module identifier.
func (m *Module) Name() string {
	return "help"
}

// Spec declares the help command.
func (m *Module) Spec() slash.ModuleSpec {
	return slash.ModuleSpec{
		Commands: []slash.Registration{
			{
				Command: slash.NewCommand().
					SetName(helpCommandName).
					SetDescription("show all available commands").
					SetPermission(slash.PermissionAny).
					MustBuild(),
				Run: m.handleCommand,
			},
		},
	}
}

func (m *Module) handleCommand(ctx context.Context, _ slash.Origin, _ []any) *slash.CommandResult {
	if m.messenger == nil {
		return slash.Failure("help: messenger not configured")
	}
	if m.commandCatalog == nil {
		return slash.Failure("help: command catalog not configured")
	}

	commands, err := m.commandCatalog.ListCommands(ctx)
	if err != nil {
		return slash.Failure(fmt.Sprintf("help list commands: %v", err))
	}
	if err := m.messenger.SendMessage(ctx, renderHelp(commands)); err != nil {
		return slash.Failure(fmt.Sprintf("help send help message: %v", err))
	}

	return nil
}

func renderHelp(commands []slash.RegisteredCommand) string {
	if len(commands) == 0 {
		return "Available commands:\n(none)"
	}

	sorted := append([]slash.RegisteredCommand(nil), commands...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Command.Name == sorted[j].Command.Name {
			return sorted[i].ModuleName < sorted[j].ModuleName
		}
		return sorted[i].Command.Name < sorted[j].Command.Name
	})

	lines := make([]string, 0, len(sorted)*4+1)
	lines = append(lines, "Available commands:")
	for _, command := range sorted {
		lines = append(lines, renderUsage(command.Command))
		if description := strings.TrimSpace(command.Command.Description); description != "" {
			lines = append(lines, "  "+description)
		}
		if command.Command.PermissionLevel != slash.PermissionAny {
			lines = append(lines, fmt.Sprintf("  requires %s", command.Command.PermissionLevel))
		}
	}

	return strings.Join(lines, "\n")
}

// renderUsage formats mandatory parameters as <name: Type> and optional ones as [name: Type].
func renderUsage(command slash.CommandSpec) string {
	parts := make([]string, 0, 1+len(command.MandatoryParameters)+len(command.OptionalParameters))
	parts = append(parts, "/"+command.Name)
	for _, param := range command.MandatoryParameters {
		parts = append(parts, fmt.Sprintf("<%s>", renderParameter(param)))
	}
	for _, param := range command.OptionalParameters {
		parts = append(parts, fmt.Sprintf("[%s]", renderParameter(param)))
	}

	return strings.Join(parts, " ")
}

func renderParameter(param slash.Parameter) string {
	if param.Type == slash.ParamTypeEnum {
		return param.Name
	}

	return fmt.Sprintf("%s: %s", param.Name, param.Type)
}

var _ slash.Module = (*Module)(nil)
