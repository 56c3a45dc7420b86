// Package memhost provides an in-memory recording host engine.
//
// It mirrors the host registration rules closely enough to dry-run plugin
// startup and to drive command and event handlers in tests.
package memhost

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"bedrock-slash/pkg/slash"
)

var (
	// ErrDuplicateCommand indicates a second registration of one final command name.
	ErrDuplicateCommand = errors.New("memhost: duplicate command")
	// ErrDuplicateEnum indicates a second registration of one enum name.
	ErrDuplicateEnum = errors.New("memhost: duplicate enum")
	// ErrUnknownEnum indicates an enum parameter referencing an unregistered enum.
	ErrUnknownEnum = errors.New("memhost: unknown enum")
)

// Host is the recording host engine.
type Host struct {
	logger *slog.Logger

	mu          sync.Mutex
	enums       map[string][]string
	commands    map[string]commandEntry
	order       []string
	messages    []string
	beforeGroup *Group
	afterGroup  *Group
}

type commandEntry struct {
	definition slash.CommandSpec
	handler    slash.HostCommandHandler
}

// New creates an empty host. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}

	return &Host{
		logger:      logger,
		enums:       make(map[string][]string),
		commands:    make(map[string]commandEntry),
		order:       make([]string, 0),
		messages:    make([]string, 0),
		beforeGroup: newGroup(),
		afterGroup:  newGroup(),
	}
}

// CommandRegistry returns the host itself as command registry.
func (h *Host) CommandRegistry() slash.CommandRegistry {
	return h
}

// BeforeEvents returns the pre-event group.
func (h *Host) BeforeEvents() slash.EventGroup {
	return h.beforeGroup
}

// AfterEvents returns the post-event group.
func (h *Host) AfterEvents() slash.EventGroup {
	return h.afterGroup
}

// RegisterEnum records one enum. Names are unique per host.
func (h *Host) RegisterEnum(name string, values []string) error {
	if name == "" {
		return fmt.Errorf("register enum: empty name")
	}
	if len(values) == 0 {
		return fmt.Errorf("register enum %s: no values", name)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.enums[name]; exists {
		return fmt.Errorf("register enum %s: %w", name, ErrDuplicateEnum)
	}
	h.enums[name] = append([]string(nil), values...)

	return nil
}

// RegisterCommand records one definition and its handler.
func (h *Host) RegisterCommand(definition slash.CommandSpec, handler slash.HostCommandHandler) error {
	if definition.Name == "" {
		return fmt.Errorf("register command: empty name")
	}
	if handler == nil {
		return fmt.Errorf("register command %s: nil handler", definition.Name)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.commands[definition.Name]; exists {
		return fmt.Errorf("register command %s: %w", definition.Name, ErrDuplicateCommand)
	}
	for _, param := range definition.Parameters() {
		if param.Type != slash.ParamTypeEnum {
			continue
		}
		if _, exists := h.enums[param.Name]; !exists {
			return fmt.Errorf("register command %s: parameter %s: %w", definition.Name, param.Name, ErrUnknownEnum)
		}
	}

	h.commands[definition.Name] = commandEntry{definition: definition.Clone(), handler: handler}
	h.order = append(h.order, definition.Name)

	return nil
}

// SendMessage records one world chat line.
func (h *Host) SendMessage(ctx context.Context, text string) error {
	h.mu.Lock()
	h.messages = append(h.messages, text)
	h.mu.Unlock()

	h.logger.InfoContext(ctx, "world message", "text", text)

	return nil
}

// Invoke runs one registered command the way the host would.
func (h *Host) Invoke(
	ctx context.Context,
	name string,
	origin slash.RawOrigin,
	args ...any,
) (*slash.CommandResult, error) {
	h.mu.Lock()
	entry, exists := h.commands[name]
	h.mu.Unlock()
	if !exists {
		return nil, fmt.Errorf("invoke %s: %w", name, slash.ErrUnknownCommand)
	}

	return entry.handler(ctx, origin, args), nil
}

// Emit delivers one event to every subscriber of the selected group and
// returns the number of callbacks run.
func (h *Host) Emit(ctx context.Context, phase slash.EventPhase, name string, args ...any) (int, error) {
	switch phase {
	case slash.EventPhaseBefore:
		return h.beforeGroup.emit(ctx, name, args), nil
	case slash.EventPhaseAfter:
		return h.afterGroup.emit(ctx, name, args), nil
	default:
		return 0, fmt.Errorf("emit %s: %w", name, phase.Validate())
	}
}

// Definitions returns registered definitions in registration order.
func (h *Host) Definitions() []slash.CommandSpec {
	h.mu.Lock()
	defer h.mu.Unlock()

	definitions := make([]slash.CommandSpec, 0, len(h.order))
	for _, name := range h.order {
		definitions = append(definitions, h.commands[name].definition.Clone())
	}

	return definitions
}

// Enums returns a copy of the registered enums.
func (h *Host) Enums() map[string][]string {
	h.mu.Lock()
	defer h.mu.Unlock()

	enums := make(map[string][]string, len(h.enums))
	for name, values := range h.enums {
		enums[name] = append([]string(nil), values...)
	}

	return enums
}

// Messages returns recorded world messages in send order.
func (h *Host) Messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]string(nil), h.messages...)
}

// Group is one recording event subscription collection.
type Group struct {
	mu          sync.Mutex
	subscribers map[string][]slash.EventCallback
}

func newGroup() *Group {
	return &Group{subscribers: make(map[string][]slash.EventCallback)}
}

// Subscribe attaches one callback to the named event.
func (g *Group) Subscribe(eventName string, callback slash.EventCallback) error {
	if eventName == "" {
		return fmt.Errorf("subscribe: empty event name")
	}
	if callback == nil {
		return fmt.Errorf("subscribe %s: nil callback", eventName)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.subscribers[eventName] = append(g.subscribers[eventName], callback)

	return nil
}

// EventNames returns event names with at least one subscriber.
func (g *Group) EventNames() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	names := make([]string, 0, len(g.subscribers))
	for name := range g.subscribers {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func (g *Group) emit(ctx context.Context, name string, args []any) int {
	g.mu.Lock()
	callbacks := append([]slash.EventCallback(nil), g.subscribers[name]...)
	g.mu.Unlock()

	for _, callback := range callbacks {
		callback(ctx, args...)
	}

	return len(callbacks)
}

var (
	_ slash.Host            = (*Host)(nil)
	_ slash.CommandRegistry = (*Host)(nil)
	_ slash.Messenger       = (*Host)(nil)
	_ slash.EventGroup      = (*Group)(nil)
)
