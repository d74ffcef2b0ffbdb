package gamestate

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"pkg.world.dev/world-engine/handle"
	"pkg.world.dev/world-engine/handle/codec"
	ecslog "pkg.world.dev/world-engine/handle/log"
	"pkg.world.dev/world-engine/handle/types"
)

var _ handle.Store = &EntityStore{}
var _ ecslog.Loggable = &EntityStore{}

// compKey is a tuple of a component type ID and an entity ID, used as the
// cache key for in-memory component values.
type compKey struct {
	typeID   types.ComponentID
	entityID types.EntityID
}

// EntityStore is the reference store implementation: a write-through,
// redis-backed component store with an in-memory index and read cache.
type EntityStore struct {
	dbStorage PrimitiveStorage[string]

	compValues      VolatileStorage[compKey, any]
	typeToComponent VolatileStorage[types.ComponentID, types.ComponentMetadata]
	nameToComponent VolatileStorage[string, types.ComponentMetadata]

	// entityToCompIDs is the authority for liveness: an entity ID is live
	// iff it has an entry. The per-entity ID lists are kept sorted.
	entityToCompIDs VolatileStorage[types.EntityID, []types.ComponentID]

	nextEntityID     uint64
	isEntityIDLoaded bool

	logger *zerolog.Logger
}

// NewEntityStore creates an entity store on top of the given storage. No
// state is touched until RegisterComponents is called.
func NewEntityStore(storage PrimitiveStorage[string]) (*EntityStore, error) {
	s := &EntityStore{
		dbStorage:       storage,
		compValues:      NewMapStorage[compKey, any](),
		typeToComponent: NewMapStorage[types.ComponentID, types.ComponentMetadata](),
		nameToComponent: NewMapStorage[string, types.ComponentMetadata](),
		entityToCompIDs: NewMapStorage[types.EntityID, []types.ComponentID](),
		logger:          &zlog.Logger,
	}
	return s, nil
}

// RegisterComponents assigns IDs to the given component metadata, indexes
// them, and recovers any previously persisted state from the storage layer.
// It must be called exactly once, before any entity or component operation.
func (s *EntityStore) RegisterComponents(comps []types.ComponentMetadata) error {
	for i, c := range comps {
		if err := c.SetID(types.ComponentID(i + 1)); err != nil {
			return err
		}
	}
	for _, c := range comps {
		if _, err := s.nameToComponent.Get(c.Name()); err == nil {
			return eris.Errorf("duplicate component %q", c.Name())
		}
		if err := s.nameToComponent.Set(c.Name(), c); err != nil {
			return err
		}
		if err := s.typeToComponent.Set(c.ID(), c); err != nil {
			return err
		}
	}

	ctx := context.Background()
	for _, c := range comps {
		if err := s.checkSchema(ctx, c); err != nil {
			return err
		}
	}
	if err := s.loadNextEntityID(ctx); err != nil {
		return err
	}
	if err := s.loadEntityIndex(ctx); err != nil {
		return err
	}

	ecslog.Components(s.logger, s, zerolog.DebugLevel)
	return nil
}

// GetRegisteredComponents returns the metadata of every registered
// component.
func (s *EntityStore) GetRegisteredComponents() []types.ComponentMetadata {
	ids, _ := s.typeToComponent.Keys()
	acc := make([]types.ComponentMetadata, 0, len(ids))
	for _, id := range ids {
		c, err := s.typeToComponent.Get(id)
		if err != nil {
			continue
		}
		acc = append(acc, c)
	}
	return acc
}

// InjectLogger sets the logger used for store events.
func (s *EntityStore) InjectLogger(logger *zerolog.Logger) {
	s.logger = logger
}

// Close closes the underlying storage.
func (s *EntityStore) Close() error {
	return s.dbStorage.Close(context.Background())
}

// ---------------------------------------------------------------------------
// Entity lifecycle
// ---------------------------------------------------------------------------

// CreateEntity creates a single entity with the given components attached
// and returns its ID. Creating an entity with no components is allowed; the
// result is a live orphan.
func (s *EntityStore) CreateEntity(comps ...types.Component) (types.EntityID, error) {
	ids, err := s.CreateManyEntities(1, comps...)
	if err != nil {
		return types.NullEntity, err
	}
	return ids[0], nil
}

// CreateManyEntities creates num entities, each with the given components
// attached, and returns their IDs.
func (s *EntityStore) CreateManyEntities(num int, comps ...types.Component) ([]types.EntityID, error) {
	ctx := context.Background()
	ids := make([]types.EntityID, 0, num)
	for i := 0; i < num; i++ {
		id, err := s.createEntity(ctx, comps)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *EntityStore) createEntity(ctx context.Context, comps []types.Component) (types.EntityID, error) {
	id, err := s.allocateEntityID(ctx)
	if err != nil {
		return types.NullEntity, err
	}
	if err := s.entityToCompIDs.Set(id, []types.ComponentID{}); err != nil {
		return types.NullEntity, err
	}
	if err := s.writeCompIDs(ctx, id); err != nil {
		return types.NullEntity, err
	}
	for _, comp := range comps {
		if err := s.EmplaceComponent(comp, id); err != nil {
			return types.NullEntity, err
		}
	}

	metas, _ := s.GetComponentTypesForEntity(id)
	ecslog.Entity(s.logger, zerolog.DebugLevel, id, metas)
	return id, nil
}

// RemoveEntity destroys the entity and all its components. The entity ID
// becomes invalid; this implementation never reuses it.
func (s *EntityStore) RemoveEntity(id types.EntityID) error {
	ctx := context.Background()
	compIDs, err := s.entityToCompIDs.Get(id)
	if err != nil {
		return eris.Wrap(ErrEntityDoesNotExist, id.String())
	}

	tx, err := s.dbStorage.StartTransaction(ctx)
	if err != nil {
		return err
	}
	for _, typeID := range compIDs {
		if err := tx.Delete(ctx, storageComponentKey(typeID, id)); err != nil {
			return err
		}
	}
	if err := tx.Delete(ctx, storageComponentTypesKey(id)); err != nil {
		return err
	}
	if err := tx.EndTransaction(ctx); err != nil {
		return err
	}

	for _, typeID := range compIDs {
		_ = s.compValues.Delete(compKey{typeID, id})
	}
	if err := s.entityToCompIDs.Delete(id); err != nil {
		return err
	}

	s.logger.Debug().
		Str("entity_id", id.String()).
		Msg("entity removed")
	return nil
}

// Valid reports whether the given entity ID currently denotes a live
// entity.
func (s *EntityStore) Valid(id types.EntityID) (bool, error) {
	if _, err := s.entityToCompIDs.Get(id); err != nil {
		return false, nil
	}
	return true, nil
}

// Orphan reports whether the entity has zero components attached.
func (s *EntityStore) Orphan(id types.EntityID) (bool, error) {
	compIDs, err := s.compIDsFor(id)
	if err != nil {
		return false, err
	}
	return len(compIDs) == 0, nil
}

// ---------------------------------------------------------------------------
// Component operations
// ---------------------------------------------------------------------------

// HasComponent reports whether the entity has the given component type.
func (s *EntityStore) HasComponent(comp types.Component, id types.EntityID) (bool, error) {
	c, err := s.metadataByName(comp.Name())
	if err != nil {
		return false, err
	}
	compIDs, err := s.compIDsFor(id)
	if err != nil {
		return false, err
	}
	return containsComponentID(compIDs, c.ID()), nil
}

// GetComponentForEntity returns the component value attached to the entity
// for the given component type.
func (s *EntityStore) GetComponentForEntity(comp types.Component, id types.EntityID) (any, error) {
	ctx := context.Background()
	c, err := s.metadataByName(comp.Name())
	if err != nil {
		return nil, err
	}
	compIDs, err := s.compIDsFor(id)
	if err != nil {
		return nil, err
	}
	if !containsComponentID(compIDs, c.ID()) {
		return nil, eris.Wrap(ErrComponentNotOnEntity, comp.Name())
	}

	key := compKey{c.ID(), id}
	if value, err := s.compValues.Get(key); err == nil {
		return value, nil
	}
	bz, err := s.dbStorage.GetBytes(ctx, storageComponentKey(c.ID(), id))
	if err != nil {
		return nil, err
	}
	value, err := c.Decode(bz)
	if err != nil {
		return nil, err
	}
	if err := s.compValues.Set(key, value); err != nil {
		return nil, err
	}
	return value, nil
}

// GetComponentTypesForEntity returns the metadata of every component
// attached to the entity, ordered by component ID.
func (s *EntityStore) GetComponentTypesForEntity(id types.EntityID) ([]types.ComponentMetadata, error) {
	compIDs, err := s.compIDsFor(id)
	if err != nil {
		return nil, err
	}
	acc := make([]types.ComponentMetadata, 0, len(compIDs))
	for _, typeID := range compIDs {
		c, err := s.typeToComponent.Get(typeID)
		if err != nil {
			return nil, eris.Wrap(ErrComponentMismatchWithSavedState, "")
		}
		acc = append(acc, c)
	}
	return acc, nil
}

// EmplaceComponent attaches comp to the entity. The entity must not already
// have a component of this type.
func (s *EntityStore) EmplaceComponent(comp types.Component, id types.EntityID) error {
	ctx := context.Background()
	c, err := s.metadataByName(comp.Name())
	if err != nil {
		return err
	}
	compIDs, err := s.compIDsFor(id)
	if err != nil {
		return err
	}
	if containsComponentID(compIDs, c.ID()) {
		return eris.Wrap(ErrComponentAlreadyOnEntity, comp.Name())
	}
	if err := s.setComponent(ctx, c, id, comp); err != nil {
		return err
	}
	if err := s.attachComponentID(ctx, id, compIDs, c.ID()); err != nil {
		return err
	}
	s.logComponentChange(id, c, "component added")
	return nil
}

// EmplaceOrReplaceComponent attaches comp to the entity, overwriting any
// existing component of this type.
func (s *EntityStore) EmplaceOrReplaceComponent(comp types.Component, id types.EntityID) error {
	ctx := context.Background()
	c, err := s.metadataByName(comp.Name())
	if err != nil {
		return err
	}
	compIDs, err := s.compIDsFor(id)
	if err != nil {
		return err
	}
	if err := s.setComponent(ctx, c, id, comp); err != nil {
		return err
	}
	if !containsComponentID(compIDs, c.ID()) {
		if err := s.attachComponentID(ctx, id, compIDs, c.ID()); err != nil {
			return err
		}
	}
	s.logComponentChange(id, c, "component set")
	return nil
}

// ReplaceComponent overwrites the entity's existing component of this type.
func (s *EntityStore) ReplaceComponent(comp types.Component, id types.EntityID) error {
	ctx := context.Background()
	c, err := s.metadataByName(comp.Name())
	if err != nil {
		return err
	}
	compIDs, err := s.compIDsFor(id)
	if err != nil {
		return err
	}
	if !containsComponentID(compIDs, c.ID()) {
		return eris.Wrap(ErrComponentNotOnEntity, comp.Name())
	}
	if err := s.setComponent(ctx, c, id, comp); err != nil {
		return err
	}
	s.logComponentChange(id, c, "component replaced")
	return nil
}

// RemoveComponent detaches the component type from the entity. The entity
// must have it.
func (s *EntityStore) RemoveComponent(comp types.Component, id types.EntityID) error {
	removed, err := s.RemoveComponentIfExists(comp, id)
	if err != nil {
		return err
	}
	if !removed {
		return eris.Wrap(ErrComponentNotOnEntity, comp.Name())
	}
	return nil
}

// RemoveComponentIfExists detaches the component type if the entity has it
// and reports whether it did.
func (s *EntityStore) RemoveComponentIfExists(comp types.Component, id types.EntityID) (bool, error) {
	ctx := context.Background()
	c, err := s.metadataByName(comp.Name())
	if err != nil {
		return false, err
	}
	compIDs, err := s.compIDsFor(id)
	if err != nil {
		return false, err
	}
	if !containsComponentID(compIDs, c.ID()) {
		return false, nil
	}

	if err := s.dbStorage.Delete(ctx, storageComponentKey(c.ID(), id)); err != nil {
		return false, err
	}
	_ = s.compValues.Delete(compKey{c.ID(), id})

	remaining := make([]types.ComponentID, 0, len(compIDs)-1)
	for _, typeID := range compIDs {
		if typeID != c.ID() {
			remaining = append(remaining, typeID)
		}
	}
	if err := s.entityToCompIDs.Set(id, remaining); err != nil {
		return false, err
	}
	if err := s.writeCompIDs(ctx, id); err != nil {
		return false, err
	}
	s.logComponentChange(id, c, "component removed")
	return true, nil
}

// RemoveAllComponents detaches every component from the entity, leaving it
// a live orphan. The deletes are applied atomically.
func (s *EntityStore) RemoveAllComponents(id types.EntityID) error {
	ctx := context.Background()
	compIDs, err := s.compIDsFor(id)
	if err != nil {
		return err
	}

	bz, err := codec.Encode([]types.ComponentID{})
	if err != nil {
		return err
	}
	tx, err := s.dbStorage.StartTransaction(ctx)
	if err != nil {
		return err
	}
	for _, typeID := range compIDs {
		if err := tx.Delete(ctx, storageComponentKey(typeID, id)); err != nil {
			return err
		}
	}
	if err := tx.Set(ctx, storageComponentTypesKey(id), bz); err != nil {
		return err
	}
	if err := tx.EndTransaction(ctx); err != nil {
		return err
	}

	for _, typeID := range compIDs {
		_ = s.compValues.Delete(compKey{typeID, id})
	}
	if err := s.entityToCompIDs.Set(id, []types.ComponentID{}); err != nil {
		return err
	}

	s.logger.Debug().
		Str("entity_id", id.String()).
		Int("components_removed", len(compIDs)).
		Msg("entity orphaned")
	return nil
}

// ---------------------------------------------------------------------------
// Internals
// ---------------------------------------------------------------------------

func (s *EntityStore) metadataByName(name string) (types.ComponentMetadata, error) {
	c, err := s.nameToComponent.Get(name)
	if err != nil {
		return nil, eris.Wrap(ErrComponentNotRegistered, name)
	}
	return c, nil
}

// checkSchema persists the component's schema on first registration. On
// later registrations it rejects the component if its schema no longer
// matches the one recorded in the saved state.
func (s *EntityStore) checkSchema(ctx context.Context, c types.ComponentMetadata) error {
	storedSchema, err := s.dbStorage.GetBytes(ctx, storageSchemaKey(c.Name()))
	if err != nil {
		if !eris.Is(err, redis.Nil) {
			return err
		}
		return s.dbStorage.Set(ctx, storageSchemaKey(c.Name()), c.GetSchema())
	}
	if err := c.ValidateAgainstSchema(storedSchema); err != nil {
		if eris.Is(err, types.ErrComponentSchemaMismatch) {
			return eris.Wrapf(err, "component %q does not match the schema in the saved state", c.Name())
		}
		return eris.Wrap(err, "failed to validate component schema against the saved state")
	}
	return nil
}

func (s *EntityStore) compIDsFor(id types.EntityID) ([]types.ComponentID, error) {
	compIDs, err := s.entityToCompIDs.Get(id)
	if err != nil {
		return nil, eris.Wrap(ErrEntityDoesNotExist, id.String())
	}
	return compIDs, nil
}

func (s *EntityStore) setComponent(
	ctx context.Context, c types.ComponentMetadata, id types.EntityID, value any,
) error {
	bz, err := c.Encode(value)
	if err != nil {
		return err
	}
	if err := s.dbStorage.Set(ctx, storageComponentKey(c.ID(), id), bz); err != nil {
		return err
	}
	return s.compValues.Set(compKey{c.ID(), id}, value)
}

func (s *EntityStore) attachComponentID(
	ctx context.Context, id types.EntityID, compIDs []types.ComponentID, typeID types.ComponentID,
) error {
	compIDs = append(compIDs, typeID)
	sort.Slice(compIDs, func(i, j int) bool { return compIDs[i] < compIDs[j] })
	if err := s.entityToCompIDs.Set(id, compIDs); err != nil {
		return err
	}
	return s.writeCompIDs(ctx, id)
}

// writeCompIDs persists the entity's current component ID list.
func (s *EntityStore) writeCompIDs(ctx context.Context, id types.EntityID) error {
	compIDs, err := s.entityToCompIDs.Get(id)
	if err != nil {
		return eris.Wrap(ErrEntityDoesNotExist, id.String())
	}
	bz, err := codec.Encode(compIDs)
	if err != nil {
		return err
	}
	return s.dbStorage.Set(ctx, storageComponentTypesKey(id), bz)
}

func (s *EntityStore) allocateEntityID(ctx context.Context) (types.EntityID, error) {
	// Normally loaded during RegisterComponents; 0 stays reserved as the
	// null entity.
	if !s.isEntityIDLoaded {
		if err := s.loadNextEntityID(ctx); err != nil {
			return types.NullEntity, err
		}
	}
	id := s.nextEntityID
	s.nextEntityID++
	if err := s.dbStorage.Set(ctx, storageNextEntityIDKey(), s.nextEntityID); err != nil {
		return types.NullEntity, err
	}
	return types.EntityID(id), nil
}

func (s *EntityStore) loadNextEntityID(ctx context.Context) error {
	if s.isEntityIDLoaded {
		return nil
	}
	next, err := s.dbStorage.GetUInt64(ctx, storageNextEntityIDKey())
	if err != nil {
		if !eris.Is(err, redis.Nil) {
			return err
		}
		next = 1
	}
	s.nextEntityID = next
	s.isEntityIDLoaded = true
	return nil
}

// loadEntityIndex rebuilds the in-memory entity index from the persisted
// component-types keys.
func (s *EntityStore) loadEntityIndex(ctx context.Context) error {
	keys, err := s.dbStorage.Keys(ctx)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if !strings.HasPrefix(key, storageComponentTypesPrefix) {
			continue
		}
		rawID, err := strconv.ParseUint(strings.TrimPrefix(key, storageComponentTypesPrefix), 10, 64)
		if err != nil {
			return eris.Wrapf(err, "malformed entity index key %q", key)
		}
		bz, err := s.dbStorage.GetBytes(ctx, key)
		if err != nil {
			return err
		}
		compIDs, err := codec.Decode[[]types.ComponentID](bz)
		if err != nil {
			return err
		}
		for _, typeID := range compIDs {
			if _, err := s.typeToComponent.Get(typeID); err != nil {
				return eris.Wrap(ErrComponentMismatchWithSavedState, "")
			}
		}
		if err := s.entityToCompIDs.Set(types.EntityID(rawID), compIDs); err != nil {
			return err
		}
	}
	return nil
}

func (s *EntityStore) logComponentChange(id types.EntityID, c types.ComponentMetadata, msg string) {
	s.logger.Debug().
		Str("entity_id", id.String()).
		Str("component_name", c.Name()).
		Int("component_id", int(c.ID())).
		Msg(msg)
}

func containsComponentID(compIDs []types.ComponentID, typeID types.ComponentID) bool {
	for _, id := range compIDs {
		if id == typeID {
			return true
		}
	}
	return false
}
