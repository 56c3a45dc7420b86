package slash

import "context"

// CommandStatus is the host custom command status code.
type CommandStatus int

const (
	// CommandStatusSuccess reports a successful invocation.
	CommandStatusSuccess CommandStatus = 0
	// CommandStatusFailure reports a failed invocation.
	CommandStatusFailure CommandStatus = 1
)

// CommandResult is returned to the host after one invocation.
//
// A nil *CommandResult means host-default success.
type CommandResult struct {
	Status  CommandStatus `json:"status"`
	Message string        `json:"message,omitempty"`
}

// Success builds a success result carrying an optional message.
func Success(message string) *CommandResult {
	return &CommandResult{Status: CommandStatusSuccess, Message: message}
}

// Failure builds a failure result carrying a message.
func Failure(message string) *CommandResult {
	return &CommandResult{Status: CommandStatusFailure, Message: message}
}

// CommandHandler runs one module command with a normalized origin.
//
// args holds host-parsed values positionally: mandatory parameters first,
// then optional ones. Absent optional parameters are nil or missing.
type CommandHandler func(ctx context.Context, origin Origin, args []any) *CommandResult

// HostCommandHandler is the callback shape the host invokes for a registered command.
type HostCommandHandler func(ctx context.Context, origin RawOrigin, args []any) *CommandResult

// EventCallback receives the arguments of one host event delivery unchanged.
type EventCallback func(ctx context.Context, args ...any)

// CommandRegistry is the host custom command registry available during startup.
type CommandRegistry interface {
	// RegisterEnum registers one named value set.
	RegisterEnum(name string, values []string) error
	// RegisterCommand registers one final definition and its handler.
	RegisterCommand(definition CommandSpec, handler HostCommandHandler) error
}

// EventGroup is one host event subscription collection keyed by event name.
type EventGroup interface {
	// Subscribe attaches one callback to the named event.
	Subscribe(eventName string, callback EventCallback) error
}

// Host is the host engine surface the plugin registers against.
type Host interface {
	// CommandRegistry returns the custom command registry.
	CommandRegistry() CommandRegistry
	// BeforeEvents returns the pre-event subscription group.
	BeforeEvents() EventGroup
	// AfterEvents returns the post-event subscription group.
	AfterEvents() EventGroup
}

// Messenger is the host world messaging call.
type Messenger interface {
	// SendMessage broadcasts one chat line to every player.
	SendMessage(ctx context.Context, text string) error
}
