package seen

import (
	"container/list"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"bedrock-slash/modules/welcome"
	"bedrock-slash/pkg/slash"
)

const (
	defaultMaxEntries = 1000
	defaultTTL        = 24 * time.Hour
	seenCommandName   = "seen"
	playerSpawnEvent  = "playerSpawn"
)

// Option mutates seen module configuration.
type Option func(*Module)

// WithLogger injects a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(module *Module) {
		if logger != nil {
			module.logger = logger
		}
	}
}

// WithMaxEntries sets how many players are remembered.
func WithMaxEntries(maxEntries int) Option {
	return func(module *Module) {
		if maxEntries > 0 {
			module.maxEntries = maxEntries
		}
	}
}

// WithTTL sets how long a spawn sighting stays visible.
func WithTTL(ttl time.Duration) Option {
	return func(module *Module) {
		if ttl > 0 {
			module.ttl = ttl
		}
	}
}

// WithClock replaces the time source.
func WithClock(clock func() time.Time) Option {
	return func(module *Module) {
		if clock != nil {
			module.clock = clock
		}
	}
}

// Sighting is one remembered player spawn.
type Sighting struct {
	// Player is the spawned player's display name.
	Player string
	// Dimension is where the player spawned.
	Dimension string
	// SpawnedAt is when the spawn was observed.
	SpawnedAt time.Time
}

// Module remembers the most recent spawn of each player in LRU order.
type Module struct {
	logger     *slog.Logger
	maxEntries int
	ttl        time.Duration
	clock      func() time.Time

	mu        sync.Mutex
	sightings map[string]Sighting
	lru       *list.List
	index     map[string]*list.Element
}

// New creates a seen module with bounded in-memory storage.
func New(options ...Option) *Module {
	module := &Module{
		logger:     slog.Default(),
		maxEntries: defaultMaxEntries,
		ttl:        defaultTTL,
		clock:      time.Now,
		sightings:  make(map[string]Sighting),
		lru:        list.New(),
		index:      make(map[string]*list.Element),
	}
	for _, option := range options {
		option(module)
	}

	return module
}

// Name returns the stable module identifier.
func (m *Module) Name() string {
	return "seen"
}

// Spec declares the seen command and the spawn subscription that feeds it.
func (m *Module) Spec() slash.ModuleSpec {
	return slash.ModuleSpec{
		Commands: []slash.Registration{
			{
				Command: slash.NewCommand().
					SetName(seenCommandName).
					SetDescription("Show when a player last spawned").
					AddStringOption("player", true).
					SetPermission(slash.PermissionGameDirectors).
					MustBuild(),
				Run: m.handleCommand,
			},
		},
		Events: []slash.EventRegistration{
			{
				Name:  playerSpawnEvent,
				Phase: slash.EventPhaseAfter,
				Run:   m.handleSpawn,
			},
		},
	}
}

// Lookup returns the remembered sighting for player.
func (m *Module) Lookup(player string) (Sighting, bool) {
	key := normalizePlayer(player)
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	sighting, exists := m.sightings[key]
	if !exists {
		return Sighting{}, false
	}
	if now.Sub(sighting.SpawnedAt) > m.ttl {
		m.deleteLocked(key)
		return Sighting{}, false
	}
	m.touchLocked(key)

	return sighting, true
}

// Len reports how many sightings are held.
func (m *Module) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sightings)
}

func (m *Module) handleSpawn(ctx context.Context, args ...any) {
	if len(args) == 0 {
		return
	}

	var spawn welcome.PlayerSpawn
	switch payload := args[0].(type) {
	case welcome.PlayerSpawn:
		spawn = payload
	case *welcome.PlayerSpawn:
		if payload == nil {
			return
		}
		spawn = *payload
	default:
		return
	}
	if spawn.Player == nil || strings.TrimSpace(spawn.Player.Name) == "" {
		return
	}

	m.remember(Sighting{
		Player:    spawn.Player.Name,
		Dimension: spawn.Player.Dimension,
		SpawnedAt: m.now(),
	})
	m.logger.DebugContext(ctx, "player sighting recorded", "player", spawn.Player.Name)
}

func (m *Module) handleCommand(_ context.Context, _ slash.Origin, args []any) *slash.CommandResult {
	if len(args) == 0 {
		return slash.Failure("seen: missing player name")
	}
	player, ok := args[0].(string)
	if !ok || strings.TrimSpace(player) == "" {
		return slash.Failure("seen: player name must be a non-empty string")
	}

	sighting, found := m.Lookup(player)
	if !found {
		return slash.Success(fmt.Sprintf("%s has not been seen", player))
	}

	elapsed := m.now().Sub(sighting.SpawnedAt).Truncate(time.Second)
	if sighting.Dimension == "" {
		return slash.Success(fmt.Sprintf("%s last spawned %s ago", sighting.Player, elapsed))
	}

	return slash.Success(fmt.Sprintf("%s last spawned in %s %s ago", sighting.Player, sighting.Dimension, elapsed))
}

func (m *Module) remember(sighting Sighting) {
	key := normalizePlayer(sighting.Player)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sightings[key] = sighting
	if element, exists := m.index[key]; exists {
		m.lru.MoveToFront(element)
	} else {
		m.index[key] = m.lru.PushFront(key)
	}
	m.trimToCapacityLocked()
}

func (m *Module) trimToCapacityLocked() {
	for len(m.sightings) > m.maxEntries {
		back := m.lru.Back()
		if back == nil {
			break
		}
		oldestKey, ok := back.Value.(string)
		if !ok {
			m.lru.Remove(back)
			continue
		}
		m.deleteLocked(oldestKey)
	}
}

func (m *Module) touchLocked(key string) {
	element, exists := m.index[key]
	if !exists {
		return
	}
	m.lru.MoveToFront(element)
}

func (m *Module) deleteLocked(key string) {
	if element, exists := m.index[key]; exists {
		m.lru.Remove(element)
		delete(m.index, key)
	}
	delete(m.sightings, key)
}

func (m *Module) now() time.Time {
	return m.clock().UTC()
}

// normalizePlayer folds case so lookups match the name typed in chat.
func normalizePlayer(player string) string {
	return strings.ToLower(strings.TrimSpace(player))
}

var _ slash.Module = (*Module)(nil)
