package registrar

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"bedrock-slash/pkg/slash"
)

// Registrar registers module commands and events against one host.
//
// Registration happens once at startup. The catalog lock only protects
// diagnostics reading registrations while they happen.
type Registrar struct {
	cfg config

	mu          sync.RWMutex
	moduleOrder []string
	modules     map[string]struct{}
	commands    map[string]commandRegistration
	enums       map[string][]string
	events      []slash.RegisteredEvent
}

// commandRegistration stores one final definition and its owning module.
type commandRegistration struct {
	moduleName string
	spec       slash.CommandSpec
}

// New creates a registrar after validating the configured command prefix.
func New(options ...Option) (*Registrar, error) {
	cfg := defaultConfig()
	for _, option := range options {
		option(&cfg)
	}
	if err := validatePrefix(cfg.commandPrefix); err != nil {
		return nil, fmt.Errorf("new registrar: %w", err)
	}

	return &Registrar{
		cfg:         cfg,
		moduleOrder: make([]string, 0),
		modules:     make(map[string]struct{}),
		commands:    make(map[string]commandRegistration),
		enums:       make(map[string][]string),
		events:      make([]slash.RegisteredEvent, 0),
	}, nil
}

// Prefix returns the namespace prepended to command names.
func (r *Registrar) Prefix() string {
	return r.cfg.commandPrefix
}

// Install registers modules in order and stops at the first failure.
func (r *Registrar) Install(ctx context.Context, host slash.Host, modules ...slash.Module) error {
	for _, module := range modules {
		if err := r.RegisterModule(ctx, host, module); err != nil {
			return err
		}
	}

	return nil
}

// RegisterModule validates one module spec, then registers its commands and events.
//
// The whole spec is validated before the first host call because the host
// offers no way to undo a registration.
func (r *Registrar) RegisterModule(ctx context.Context, host slash.Host, module slash.Module) error {
	if host == nil {
		return fmt.Errorf("register module: nil host")
	}
	if module == nil {
		return fmt.Errorf("register module: nil module")
	}
	name := module.Name()
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("register module: empty module name")
	}

	r.mu.Lock()
	if _, exists := r.modules[name]; exists {
		r.mu.Unlock()
		return fmt.Errorf("register module %s: %w", name, slash.ErrModuleAlreadyRegistered)
	}
	r.modules[name] = struct{}{}
	r.moduleOrder = append(r.moduleOrder, name)
	r.mu.Unlock()

	spec := module.Spec()
	if err := r.validateModuleSpec(spec); err != nil {
		r.forgetModule(name)
		return fmt.Errorf("register module %s: %w", name, err)
	}
	if err := r.registerCommands(ctx, host.CommandRegistry(), name, spec.Commands); err != nil {
		return fmt.Errorf("register module %s: %w", name, err)
	}
	if err := r.registerEvents(ctx, host, name, spec.Events); err != nil {
		return fmt.Errorf("register module %s: %w", name, err)
	}

	return nil
}

// RegisterCommands registers standalone command registrations outside any module.
func (r *Registrar) RegisterCommands(
	ctx context.Context,
	registry slash.CommandRegistry,
	registrations []slash.Registration,
) error {
	if err := r.validateModuleSpec(slash.ModuleSpec{Commands: registrations}); err != nil {
		return fmt.Errorf("register commands: %w", err)
	}

	return r.registerCommands(ctx, registry, "", registrations)
}

// RegisterEvents subscribes standalone event registrations outside any module.
func (r *Registrar) RegisterEvents(ctx context.Context, host slash.Host, events []slash.EventRegistration) error {
	if host == nil {
		return fmt.Errorf("register events: nil host")
	}
	if err := r.validateModuleSpec(slash.ModuleSpec{Events: events}); err != nil {
		return fmt.Errorf("register events: %w", err)
	}

	return r.registerEvents(ctx, host, "", events)
}

// registerCommands registers enums, then the prefixed definition and a wrapped handler.
func (r *Registrar) registerCommands(
	ctx context.Context,
	registry slash.CommandRegistry,
	moduleName string,
	registrations []slash.Registration,
) error {
	if registry == nil {
		return fmt.Errorf("register commands: nil command registry")
	}

	for _, registration := range registrations {
		spec := registration.Command
		for _, enumName := range spec.EnumNames() {
			if err := r.registerEnum(ctx, registry, enumName, spec.Enums[enumName]); err != nil {
				return fmt.Errorf("register command %s: %w", spec.Name, err)
			}
		}

		definition := spec.Clone()
		definition.Name = r.cfg.commandPrefix + spec.Name
		if err := registry.RegisterCommand(definition, r.wrapHandler(definition.Name, registration.Run)); err != nil {
			return fmt.Errorf("register command %s: %w", definition.Name, err)
		}

		r.mu.Lock()
		r.commands[definition.Name] = commandRegistration{moduleName: moduleName, spec: definition}
		r.mu.Unlock()

		r.cfg.logger.DebugContext(ctx, "registered command",
			"module", moduleName,
			"command", definition.Name,
			"permission", definition.PermissionLevel.String(),
			"mandatory", len(definition.MandatoryParameters),
			"optional", len(definition.OptionalParameters),
		)
	}

	return nil
}

// registerEnum registers one enum with the host once. Identical re-declarations
// from other commands are skipped.
func (r *Registrar) registerEnum(
	ctx context.Context,
	registry slash.CommandRegistry,
	name string,
	values []string,
) error {
	r.mu.RLock()
	existing, exists := r.enums[name]
	r.mu.RUnlock()
	if exists {
		if slices.Equal(existing, values) {
			return nil
		}
		return fmt.Errorf("register enum %s: conflicting values: %w", name, slash.ErrInvalidArgument)
	}

	if err := registry.RegisterEnum(name, append([]string(nil), values...)); err != nil {
		return fmt.Errorf("register enum %s: %w", name, err)
	}

	r.mu.Lock()
	r.enums[name] = append([]string(nil), values...)
	r.mu.Unlock()

	r.cfg.logger.DebugContext(ctx, "registered enum", "enum", name, "values", len(values))

	return nil
}

// wrapHandler adapts the host origin before invoking run and passes its result back unchanged.
func (r *Registrar) wrapHandler(commandName string, run slash.CommandHandler) slash.HostCommandHandler {
	return func(ctx context.Context, raw slash.RawOrigin, args []any) *slash.CommandResult {
		logger := r.cfg.logger.With("command", commandName, "invocation_id", uuid.NewString())
		origin := slash.NormalizeOrigin(raw)
		if !raw.SourceType.Known() {
			logger.WarnContext(ctx, "command origin has unknown source type",
				"source_type", string(raw.SourceType),
			)
		}
		logger.DebugContext(ctx, "command invoked",
			"source_type", string(raw.SourceType),
			"args", len(args),
		)

		var result *slash.CommandResult
		err := runSafely("command "+commandName, func() error {
			result = run(ctx, origin, args)
			return nil
		})
		if err != nil {
			logger.ErrorContext(ctx, "command handler failed", "error", err)
			return slash.Failure(fmt.Sprintf("command %s failed", commandName))
		}

		return result
	}
}

// registerEvents subscribes one forwarding callback per declared event.
func (r *Registrar) registerEvents(
	ctx context.Context,
	host slash.Host,
	moduleName string,
	events []slash.EventRegistration,
) error {
	for _, declared := range events {
		group, err := eventGroupFor(host, declared.Phase)
		if err != nil {
			return fmt.Errorf("register event %s: %w", declared.Name, err)
		}

		eventName := declared.Name
		run := declared.Run
		callback := func(ctx context.Context, args ...any) {
			err := runSafely("event "+eventName, func() error {
				run(ctx, args...)
				return nil
			})
			if err != nil {
				r.cfg.logger.ErrorContext(ctx, "event handler failed", "event", eventName, "error", err)
			}
		}
		if err := group.Subscribe(eventName, callback); err != nil {
			return fmt.Errorf("subscribe %s event %s: %w", declared.Phase, eventName, err)
		}

		r.mu.Lock()
		r.events = append(r.events, slash.RegisteredEvent{
			ModuleName: moduleName,
			Name:       eventName,
			Phase:      declared.Phase,
		})
		r.mu.Unlock()

		r.cfg.logger.DebugContext(ctx, "subscribed event",
			"module", moduleName,
			"event", eventName,
			"phase", declared.Phase.String(),
		)
	}

	return nil
}

// validateModuleSpec checks registrations, enum prefixes, and final name uniqueness.
func (r *Registrar) validateModuleSpec(spec slash.ModuleSpec) error {
	seen := make(map[string]struct{}, len(spec.Commands))
	declaredEnums := make(map[string][]string)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for index, registration := range spec.Commands {
		if err := registration.Validate(); err != nil {
			return fmt.Errorf("command %d: %w", index, err)
		}
		for _, enumName := range registration.Command.EnumNames() {
			if !strings.HasPrefix(enumName, r.cfg.commandPrefix) || enumName == r.cfg.commandPrefix {
				return fmt.Errorf(
					"command %s: enum %q must be named %s<name>: %w",
					registration.Command.Name,
					enumName,
					r.cfg.commandPrefix,
					slash.ErrInvalidArgument,
				)
			}

			values := registration.Command.Enums[enumName]
			existing, exists := r.enums[enumName]
			if !exists {
				existing, exists = declaredEnums[enumName]
			}
			if exists && !slices.Equal(existing, values) {
				return fmt.Errorf(
					"command %s: enum %q: conflicting values: %w",
					registration.Command.Name,
					enumName,
					slash.ErrInvalidArgument,
				)
			}
			declaredEnums[enumName] = values
		}

		finalName := r.cfg.commandPrefix + registration.Command.Name
		if _, exists := seen[finalName]; exists {
			return fmt.Errorf("command %d %s: %w", index, finalName, slash.ErrCommandAlreadyRegistered)
		}
		if _, exists := r.commands[finalName]; exists {
			return fmt.Errorf("command %d %s: %w", index, finalName, slash.ErrCommandAlreadyRegistered)
		}
		seen[finalName] = struct{}{}
	}

	for index, declared := range spec.Events {
		if err := declared.Validate(); err != nil {
			return fmt.Errorf("event %d: %w", index, err)
		}
	}

	return nil
}

// forgetModule removes a module name reserved by RegisterModule before any host call.
func (r *Registrar) forgetModule(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.modules, name)
	r.moduleOrder = slices.DeleteFunc(r.moduleOrder, func(item string) bool { return item == name })
}

func eventGroupFor(host slash.Host, phase slash.EventPhase) (slash.EventGroup, error) {
	var group slash.EventGroup
	switch phase {
	case slash.EventPhaseBefore:
		group = host.BeforeEvents()
	case slash.EventPhaseAfter:
		group = host.AfterEvents()
	default:
		return nil, phase.Validate()
	}
	if group == nil {
		return nil, fmt.Errorf("nil %s event group", phase)
	}

	return group, nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("validate command prefix: empty prefix: %w", slash.ErrInvalidArgument)
	}
	if strings.ContainsAny(prefix, " \t\r\n") {
		return fmt.Errorf("validate command prefix: %q contains whitespace: %w", prefix, slash.ErrInvalidArgument)
	}
	if !strings.HasSuffix(prefix, ":") || len(prefix) < 2 || strings.Count(prefix, ":") != 1 {
		return fmt.Errorf("validate command prefix: %q must look like namespace: %w", prefix, slash.ErrInvalidArgument)
	}

	return nil
}
