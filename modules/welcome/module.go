package welcome

import (
	"context"
	"fmt"
	"log/slog"

	"bedrock-slash/pkg/slash"
)

// playerSpawnEvent is the host after-event fired when a player spawns.
const playerSpawnEvent = "playerSpawn"

// PlayerSpawn is the payload delivered with playerSpawn after-events.
type PlayerSpawn struct {
	// Player is the spawned player.
	Player *slash.Entity
	// InitialSpawn reports whether this is the first spawn after joining.
	InitialSpawn bool
}

// Module greets players once when they first spawn in the world.
type Module struct {
	messenger slash.Messenger
	logger    *slog.Logger
}

// New creates a welcome module. A nil logger falls back to slog.Default.
func New(messenger slash.Messenger, logger *slog.Logger) *Module {
	if logger == nil {
		logger = slog.Default()
	}

	return &Module{messenger: messenger, logger: logger}
}

// Name returns the stable module identifier.
func (m *Module) Name() string {
	return "welcome"
}

// Spec declares one playerSpawn after-event subscription.
func (m *Module) Spec() slash.ModuleSpec {
	return slash.ModuleSpec{
		Events: []slash.EventRegistration{
			{
				Name:  playerSpawnEvent,
				Phase: slash.EventPhaseAfter,
				Run:   m.handleSpawn,
			},
		},
	}
}

func (m *Module) handleSpawn(ctx context.Context, args ...any) {
	if len(args) == 0 || m.messenger == nil {
		return
	}

	var spawn PlayerSpawn
	switch payload := args[0].(type) {
	case PlayerSpawn:
		spawn = payload
	case *PlayerSpawn:
		if payload == nil {
			return
		}
		spawn = *payload
	default:
		return
	}
	if !spawn.InitialSpawn || spawn.Player == nil {
		return
	}

	if err := m.messenger.SendMessage(ctx, fmt.Sprintf("Welcome, %s!", spawn.Player.Name)); err != nil {
		m.logger.WarnContext(ctx, "welcome send message failed", "player", spawn.Player.Name, "error", err)
	}
}

var _ slash.Module = (*Module)(nil)
