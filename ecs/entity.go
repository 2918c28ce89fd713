package ecs

// EntityId packs the archetype table (upper 32 bits) and the row inside that
// table (lower 32 bits).
type EntityId uint64

// NewEntityId builds an EntityId from an archetype ID and a row index.
func NewEntityId(archetypeId uint32, row uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(row))
}

// ArchetypeId returns the archetype table the entity lives in.
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index returns the entity's row inside its archetype table.
func (e EntityId) Index() uint32 {
	return uint32(e)
}
