package slash

import (
	"fmt"
	"sort"
	"strings"
)

// CommandSpec is one immutable custom command definition.
//
// The JSON form matches the host definition shape. Enums are registered with
// the host separately and are therefore not serialized.
type CommandSpec struct {
	// Name is the command name. The registrar prepends the deployment prefix.
	Name string `json:"name"`
	// Description is the help text shown by the host.
	Description string `json:"description"`
	// PermissionLevel is the minimum permission tier required to run the command.
	PermissionLevel PermissionLevel `json:"permissionLevel"`
	// MandatoryParameters lists required parameters in declaration order.
	MandatoryParameters []Parameter `json:"mandatoryParameters"`
	// OptionalParameters lists optional parameters in declaration order.
	OptionalParameters []Parameter `json:"optionalParameters"`
	// Enums maps enum names to their ordered value sets.
	Enums map[string][]string `json:"-"`
}

// Validate checks command specification coherence.
func (s CommandSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("validate command spec: missing name: %w", ErrInvalidArgument)
	}
	if err := s.PermissionLevel.Validate(); err != nil {
		return fmt.Errorf("validate command spec %s: %w", s.Name, err)
	}
	for name, values := range s.Enums {
		if len(values) == 0 {
			return fmt.Errorf("validate command spec %s: enum %q has no values: %w", s.Name, name, ErrInvalidArgument)
		}
	}
	for index, param := range s.Parameters() {
		if err := param.Type.Validate(); err != nil {
			return fmt.Errorf("validate command spec %s parameter[%d]: %w", s.Name, index, err)
		}
		if param.Type != ParamTypeEnum {
			continue
		}
		if _, exists := s.Enums[param.EnumName]; !exists {
			return fmt.Errorf(
				"validate command spec %s parameter[%d]: enum %q is not registered: %w",
				s.Name,
				index,
				param.EnumName,
				ErrInvalidArgument,
			)
		}
	}

	return nil
}

// Parameters returns mandatory then optional parameters, the positional
// order the host uses for invocation arguments.
func (s CommandSpec) Parameters() []Parameter {
	params := make([]Parameter, 0, len(s.MandatoryParameters)+len(s.OptionalParameters))
	params = append(params, s.MandatoryParameters...)
	params = append(params, s.OptionalParameters...)

	return params
}

// EnumNames returns registered enum names in sorted order.
func (s CommandSpec) EnumNames() []string {
	names := make([]string, 0, len(s.Enums))
	for name := range s.Enums {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Clone returns a deep copy so caller mutation cannot leak into registrations.
func (s CommandSpec) Clone() CommandSpec {
	cloned := s
	cloned.MandatoryParameters = append(make([]Parameter, 0, len(s.MandatoryParameters)), s.MandatoryParameters...)
	cloned.OptionalParameters = append(make([]Parameter, 0, len(s.OptionalParameters)), s.OptionalParameters...)
	if s.Enums != nil {
		cloned.Enums = make(map[string][]string, len(s.Enums))
		for name, values := range s.Enums {
			cloned.Enums[name] = append([]string(nil), values...)
		}
	}

	return cloned
}

// Command accumulates one command definition through chained calls.
//
// The first invalid input is kept as a sticky error; later calls are no-ops
// and Build reports it. A Command is not safe for concurrent use.
type Command struct {
	spec CommandSpec
	err  error
}

// NewCommand creates an empty builder at PermissionAny.
func NewCommand() *Command {
	return &Command{
		spec: CommandSpec{
			PermissionLevel:     PermissionAny,
			MandatoryParameters: make([]Parameter, 0),
			OptionalParameters:  make([]Parameter, 0),
			Enums:               make(map[string][]string),
		},
	}
}

// SetName sets the command name without prefix.
func (c *Command) SetName(name string) *Command {
	if c.err != nil {
		return c
	}
	c.spec.Name = name

	return c
}

// SetDescription sets the command help text.
func (c *Command) SetDescription(description string) *Command {
	if c.err != nil {
		return c
	}
	c.spec.Description = description

	return c
}

// SetPermission sets the required permission by numeric level 0 through 4.
func (c *Command) SetPermission(level PermissionLevel) *Command {
	if c.err != nil {
		return c
	}
	if err := level.Validate(); err != nil {
		c.err = fmt.Errorf("set permission: %w", err)
		return c
	}
	c.spec.PermissionLevel = level

	return c
}

// SetPermissionName sets the required permission by host name: Any,
// GameDirectors, Admin, Host or Owner.
func (c *Command) SetPermissionName(name string) *Command {
	if c.err != nil {
		return c
	}
	level, err := ParsePermissionLevel(name)
	if err != nil {
		c.err = fmt.Errorf("set permission: %w", err)
		return c
	}
	c.spec.PermissionLevel = level

	return c
}

// RegisterEnum stores one named value set for later AddEnumOption calls.
//
// The name must carry the deployment prefix, for example "cmd:colors".
func (c *Command) RegisterEnum(name string, values []string) *Command {
	if c.err != nil {
		return c
	}
	if strings.TrimSpace(name) == "" {
		c.err = fmt.Errorf("register enum: missing name: %w", ErrInvalidArgument)
		return c
	}
	if len(values) == 0 {
		c.err = fmt.Errorf("register enum %s: values must be a non-empty list: %w", name, ErrInvalidArgument)
		return c
	}
	if _, exists := c.spec.Enums[name]; exists {
		c.err = fmt.Errorf("register enum %s: duplicate enum name: %w", name, ErrInvalidArgument)
		return c
	}
	c.spec.Enums[name] = append([]string(nil), values...)

	return c
}

// AddEnumOption adds a parameter restricted to one enum registered on this builder.
func (c *Command) AddEnumOption(enumName string, required bool) *Command {
	if c.err != nil {
		return c
	}
	if _, exists := c.spec.Enums[enumName]; !exists {
		c.err = fmt.Errorf("add enum option: enum %q is not registered: %w", enumName, ErrInvalidArgument)
		return c
	}

	return c.addOption(Parameter{
		Name:     enumName,
		Type:     ParamTypeEnum,
		Required: required,
		EnumName: enumName,
	})
}

// AddStringOption adds a string parameter.
func (c *Command) AddStringOption(name string, required bool) *Command {
	return c.addTypedOption(name, ParamTypeString, required)
}

// AddBooleanOption adds a boolean parameter.
func (c *Command) AddBooleanOption(name string, required bool) *Command {
	return c.addTypedOption(name, ParamTypeBoolean, required)
}

// AddIntegerOption adds an integer parameter.
func (c *Command) AddIntegerOption(name string, required bool) *Command {
	return c.addTypedOption(name, ParamTypeInteger, required)
}

// AddFloatOption adds a float parameter.
func (c *Command) AddFloatOption(name string, required bool) *Command {
	return c.addTypedOption(name, ParamTypeFloat, required)
}

// AddEntitySelectorOption adds an entity selector parameter such as @e.
func (c *Command) AddEntitySelectorOption(name string, required bool) *Command {
	return c.addTypedOption(name, ParamTypeEntitySelector, required)
}

// AddPlayerSelectorOption adds a player selector parameter such as @a or @s.
func (c *Command) AddPlayerSelectorOption(name string, required bool) *Command {
	return c.addTypedOption(name, ParamTypePlayerSelector, required)
}

// AddPositionOption adds an x y z position parameter.
func (c *Command) AddPositionOption(name string, required bool) *Command {
	return c.addTypedOption(name, ParamTypePosition, required)
}

// AddBlockTypeOption adds a block type parameter.
func (c *Command) AddBlockTypeOption(name string, required bool) *Command {
	return c.addTypedOption(name, ParamTypeBlockType, required)
}

// AddItemTypeOption adds an item type parameter.
func (c *Command) AddItemTypeOption(name string, required bool) *Command {
	return c.addTypedOption(name, ParamTypeItemType, required)
}

// Err returns the first error recorded by the chain, if any.
func (c *Command) Err() error {
	return c.err
}

// Build returns a detached copy of the accumulated definition.
func (c *Command) Build() (CommandSpec, error) {
	if c.err != nil {
		return CommandSpec{}, fmt.Errorf("build command %s: %w", c.spec.Name, c.err)
	}
	if err := c.spec.Validate(); err != nil {
		return CommandSpec{}, fmt.Errorf("build command: %w", err)
	}

	return c.spec.Clone(), nil
}

// MustBuild is like Build but panics on error. It is meant for static
// command tables evaluated at package initialization.
func (c *Command) MustBuild() CommandSpec {
	spec, err := c.Build()
	if err != nil {
		panic(err)
	}

	return spec
}

func (c *Command) addTypedOption(name string, paramType ParamType, required bool) *Command {
	if c.err != nil {
		return c
	}

	return c.addOption(Parameter{Name: name, Type: paramType, Required: required})
}

func (c *Command) addOption(param Parameter) *Command {
	if param.Required {
		c.spec.MandatoryParameters = append(c.spec.MandatoryParameters, param)
	} else {
		c.spec.OptionalParameters = append(c.spec.OptionalParameters, param)
	}

	return c
}
