package welcome

import (
	"context"
	"errors"
	"testing"

	"bedrock-slash/pkg/slash"
)

func TestModuleHandleSpawn(t *testing.T) {
	steve := &slash.Entity{Name: "Steve", TypeID: "minecraft:player"}

	tests := []struct {
		name         string
		args         []any
		wantMessages []string
	}{
		{
			name:         "initial spawn value payload greets",
			args:         []any{PlayerSpawn{Player: steve, InitialSpawn: true}},
			wantMessages: []string{"Welcome, Steve!"},
		},
		{
			name:         "initial spawn pointer payload greets",
			args:         []any{&PlayerSpawn{Player: steve, InitialSpawn: true}},
			wantMessages: []string{"Welcome, Steve!"},
		},
		{name: "respawn is ignored", args: []any{PlayerSpawn{Player: steve}}},
		{name: "missing player is ignored", args: []any{PlayerSpawn{InitialSpawn: true}}},
		{name: "foreign payload is ignored", args: []any{"spawn"}},
		{name: "nil pointer payload is ignored", args: []any{(*PlayerSpawn)(nil)}},
		{name: "no arguments are ignored"},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			messenger := &captureMessenger{}
			New(messenger, nil).handleSpawn(context.Background(), testCase.args...)

			if len(messenger.messages) != len(testCase.wantMessages) {
				t.Fatalf("messages = %q, want %q", messenger.messages, testCase.wantMessages)
			}
			for index, want := range testCase.wantMessages {
				if messenger.messages[index] != want {
					t.Fatalf("message[%d] = %q, want %q", index, messenger.messages[index], want)
				}
			}
		})
	}
}

func TestModuleHandleSpawnSendFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	messenger := &captureMessenger{sendErr: errors.New("world closed")}
	New(messenger, nil).handleSpawn(context.Background(), PlayerSpawn{
		Player:       &slash.Entity{Name: "Alex"},
		InitialSpawn: true,
	})
	if len(messenger.messages) != 1 {
		t.Fatalf("message count = %d, want 1", len(messenger.messages))
	}
}

func TestModuleSpecSubscribesAfterEvent(t *testing.T) {
	t.Parallel()

	spec := New(&captureMessenger{}, nil).Spec()
	if len(spec.Commands) != 0 {
		t.Fatalf("command count = %d, want 0", len(spec.Commands))
	}
	if len(spec.Events) != 1 {
		t.Fatalf("event count = %d, want 1", len(spec.Events))
	}
	event := spec.Events[0]
	if event.Name != playerSpawnEvent || event.Phase != slash.EventPhaseAfter {
		t.Fatalf("event = %s/%s, want %s/after", event.Name, event.Phase, playerSpawnEvent)
	}
	if err := event.Validate(); err != nil {
		t.Fatalf("validate event: %v", err)
	}
}

type captureMessenger struct {
	sendErr  error
	messages []string
}

func (m *captureMessenger) SendMessage(_ context.Context, text string) error {
	m.messages = append(m.messages, text)
	return m.sendErr
}
