package slash

import "errors"

var (
	// ErrInvalidArgument indicates a command definition input outside its allowed set.
	ErrInvalidArgument = errors.New("slash: invalid argument")
	// ErrCommandAlreadyRegistered indicates duplicate final command name registration.
	ErrCommandAlreadyRegistered = errors.New("slash: command already registered")
	// ErrModuleAlreadyRegistered indicates duplicate module registration.
	ErrModuleAlreadyRegistered = errors.New("slash: module already registered")
	// ErrUnknownCommand indicates invocation of a command the host never registered.
	ErrUnknownCommand = errors.New("slash: unknown command")
)
