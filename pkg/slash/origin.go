package slash

// SourceType identifies what triggered one command invocation.
type SourceType string

const (
	// SourceTypeEntity identifies an entity, usually a player, as the trigger.
	SourceTypeEntity SourceType = "Entity"
	// SourceTypeBlock identifies a block such as a command block.
	SourceTypeBlock SourceType = "Block"
	// SourceTypeNPCDialogue identifies an NPC dialogue action.
	SourceTypeNPCDialogue SourceType = "NPCDialogue"
	// SourceTypeServer identifies the server console or a scripted call.
	SourceTypeServer SourceType = "Server"
)

// Known reports whether the source type is one of the four host kinds.
func (t SourceType) Known() bool {
	switch t {
	case SourceTypeEntity, SourceTypeBlock, SourceTypeNPCDialogue, SourceTypeServer:
		return true
	default:
		return false
	}
}

// Vector3 is one host world coordinate.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Source is one host record that can trigger a command: *Entity or *Block.
type Source interface {
	sourceKind() string
}

// Entity is the host view of one entity.
type Entity struct {
	// ID is the runtime entity identifier.
	ID string `json:"id"`
	// TypeID is the entity type identifier such as "minecraft:player".
	TypeID string `json:"typeId"`
	// Name is the display name for players and the name tag otherwise.
	Name string `json:"name"`
	// Dimension identifies the dimension the entity is in.
	Dimension string `json:"dimension,omitempty"`
	// Location is the entity position.
	Location Vector3 `json:"location"`
}

func (*Entity) sourceKind() string { return "entity" }

// Block is the host view of one placed block.
type Block struct {
	// TypeID is the block type identifier such as "minecraft:command_block".
	TypeID string `json:"typeId"`
	// Dimension identifies the dimension the block is in.
	Dimension string `json:"dimension,omitempty"`
	// Location is the block position.
	Location Vector3 `json:"location"`
}

func (*Block) sourceKind() string { return "block" }

// RawOrigin is the variant origin shape delivered by the host.
//
// Which field is populated depends on SourceType.
type RawOrigin struct {
	SourceType   SourceType
	SourceEntity *Entity
	SourceBlock  *Block
	// Initiator is the player that triggered an NPC dialogue command.
	Initiator *Entity
}

// Origin is the normalized {source, sourceType} view passed to command handlers.
type Origin struct {
	// Source is the triggering record, nil when SourceType is unknown or the
	// host supplied none.
	Source Source
	// SourceType is copied verbatim from the host origin.
	SourceType SourceType
}

// NormalizeOrigin resolves the host variant into Origin.
//
// Entity and Server read SourceEntity, Block reads SourceBlock, NPCDialogue
// reads Initiator. Unknown kinds produce a nil Source. Records are shared by
// reference, never copied.
func NormalizeOrigin(raw RawOrigin) Origin {
	origin := Origin{SourceType: raw.SourceType}
	switch raw.SourceType {
	case SourceTypeEntity, SourceTypeServer:
		if raw.SourceEntity != nil {
			origin.Source = raw.SourceEntity
		}
	case SourceTypeBlock:
		if raw.SourceBlock != nil {
			origin.Source = raw.SourceBlock
		}
	case SourceTypeNPCDialogue:
		if raw.Initiator != nil {
			origin.Source = raw.Initiator
		}
	}

	return origin
}

// Entity returns the source entity when the origin carries one.
func (o Origin) Entity() (*Entity, bool) {
	entity, ok := o.Source.(*Entity)
	return entity, ok && entity != nil
}

// Block returns the source block when the origin carries one.
func (o Origin) Block() (*Block, bool) {
	block, ok := o.Source.(*Block)
	return block, ok && block != nil
}
