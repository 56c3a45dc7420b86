package slash

import "fmt"

// ParamType identifies the host parameter kind of one command parameter.
//
// Values follow the host CustomCommandParamType numbering and are sent as-is.
type ParamType int

const (
	// ParamTypeBoolean accepts true or false.
	ParamTypeBoolean ParamType = 0
	// ParamTypeInteger accepts a whole number.
	ParamTypeInteger ParamType = 1
	// ParamTypeFloat accepts a decimal number.
	ParamTypeFloat ParamType = 2
	// ParamTypeString accepts one word or quoted string.
	ParamTypeString ParamType = 3
	// ParamTypeEntitySelector accepts an entity selector such as @e.
	ParamTypeEntitySelector ParamType = 4
	// ParamTypePlayerSelector accepts a player selector such as @a or @s.
	ParamTypePlayerSelector ParamType = 5
	// ParamTypePosition accepts x y z coordinates. The host calls this Location.
	ParamTypePosition ParamType = 6
	// ParamTypeBlockType accepts a block type identifier.
	ParamTypeBlockType ParamType = 7
	// ParamTypeItemType accepts an item type identifier.
	ParamTypeItemType ParamType = 8
	// ParamTypeEnum accepts one value of a registered enum.
	ParamTypeEnum ParamType = 9
)

var paramTypeNames = map[ParamType]string{
	ParamTypeBoolean:        "Boolean",
	ParamTypeInteger:        "Integer",
	ParamTypeFloat:          "Float",
	ParamTypeString:         "String",
	ParamTypeEntitySelector: "EntitySelector",
	ParamTypePlayerSelector: "PlayerSelector",
	ParamTypePosition:       "Position",
	ParamTypeBlockType:      "BlockType",
	ParamTypeItemType:       "ItemType",
	ParamTypeEnum:           "Enum",
}

// String returns the readable parameter type name.
func (t ParamType) String() string {
	if name, ok := paramTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("ParamType(%d)", int(t))
}

// Validate checks whether one parameter type is supported by the host.
func (t ParamType) Validate() error {
	if _, ok := paramTypeNames[t]; !ok {
		return fmt.Errorf("validate param type: unsupported type %d: %w", int(t), ErrInvalidArgument)
	}

	return nil
}

// Parameter declares one positional command parameter.
type Parameter struct {
	// Name is the parameter label shown by the host. Enum parameters use the enum name.
	Name string `json:"name"`
	// Type is the host parameter kind.
	Type ParamType `json:"type"`
	// Required reports whether the parameter belongs to the mandatory list.
	Required bool `json:"-"`
	// EnumName references the owning spec's enum when Type is ParamTypeEnum.
	EnumName string `json:"-"`
}

// PermissionLevel is the host permission tier required to run a command.
type PermissionLevel int

const (
	// PermissionAny allows every player.
	PermissionAny PermissionLevel = 0
	// PermissionGameDirectors allows game directors and above.
	PermissionGameDirectors PermissionLevel = 1
	// PermissionAdmin allows admins and above.
	PermissionAdmin PermissionLevel = 2
	// PermissionHost allows the world host and owner.
	PermissionHost PermissionLevel = 3
	// PermissionOwner allows only the owner.
	PermissionOwner PermissionLevel = 4
)

var permissionNames = []string{"Any", "GameDirectors", "Admin", "Host", "Owner"}

// String returns the host name of one permission level.
func (l PermissionLevel) String() string {
	if l.Validate() != nil {
		return fmt.Sprintf("PermissionLevel(%d)", int(l))
	}

	return permissionNames[l]
}

// Validate checks that the level lies in the host range 0 through 4.
func (l PermissionLevel) Validate() error {
	if l < PermissionAny || l > PermissionOwner {
		return fmt.Errorf("validate permission level: number %d out of range 0-4: %w", int(l), ErrInvalidArgument)
	}

	return nil
}

// ParsePermissionLevel resolves one of the five host permission names.
//
// Matching is exact, as the host enum member names are case-sensitive.
func ParsePermissionLevel(name string) (PermissionLevel, error) {
	for index, candidate := range permissionNames {
		if candidate == name {
			return PermissionLevel(index), nil
		}
	}

	return 0, fmt.Errorf("parse permission level: unknown name %q: %w", name, ErrInvalidArgument)
}
