package ping

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"bedrock-slash/pkg/slash"
)

func TestModuleHandleCommand(t *testing.T) {
	tests := []struct {
		name       string
		origin     slash.Origin
		args       []any
		sendErr    error
		wantStatus *slash.CommandStatus
		wantLines  []string
	}{
		{
			name:      "entity origin greets by entity name",
			origin:    slash.Origin{SourceType: slash.SourceTypeEntity, Source: &slash.Entity{Name: "Steve"}},
			args:      []any{"alex", 3},
			wantLines: []string{"Hello, Steve!", "another alex", "yo 3"},
		},
		{
			name:      "server origin greets by source type",
			origin:    slash.Origin{SourceType: slash.SourceTypeServer},
			args:      []any{"alex"},
			wantLines: []string{"Hello, Server!", "another alex"},
		},
		{
			name:      "block origin greets by source type",
			origin:    slash.Origin{SourceType: slash.SourceTypeBlock, Source: &slash.Block{TypeID: "minecraft:command_block"}},
			args:      []any{"alex", nil},
			wantLines: []string{"Hello, Block!", "another alex"},
		},
		{
			name:      "entity origin without entity record falls back to source type",
			origin:    slash.Origin{SourceType: slash.SourceTypeEntity},
			args:      []any{"alex"},
			wantLines: []string{"Hello, Entity!", "another alex"},
		},
		{
			name:       "send failure returns failure result",
			origin:     slash.Origin{SourceType: slash.SourceTypeServer},
			args:       []any{"alex"},
			sendErr:    errors.New("world closed"),
			wantStatus: statusPtr(slash.CommandStatusFailure),
			wantLines:  []string{"Hello, Server!"},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			messenger := &captureMessenger{sendErr: testCase.sendErr}
			module := New(messenger)

			result := module.handleCommand(context.Background(), testCase.origin, testCase.args)
			if testCase.wantStatus == nil && result != nil {
				t.Fatalf("result = %#v, want nil", result)
			}
			if testCase.wantStatus != nil {
				if result == nil {
					t.Fatal("result = nil, want status")
				}
				if result.Status != *testCase.wantStatus {
					t.Fatalf("status = %d, want %d", result.Status, *testCase.wantStatus)
				}
			}

			got := messenger.lines()
			if strings.Join(got, "|") != strings.Join(testCase.wantLines, "|") {
				t.Fatalf("messages = %q, want %q", got, testCase.wantLines)
			}
		})
	}
}

func TestModuleHandleCommandWithoutMessenger(t *testing.T) {
	t.Parallel()

	result := New(nil).handleCommand(context.Background(), slash.Origin{}, nil)
	if result == nil || result.Status != slash.CommandStatusFailure {
		t.Fatalf("result = %#v, want failure", result)
	}
}

func TestModuleSpecDeclaresPingCommand(t *testing.T) {
	t.Parallel()

	spec := New(&captureMessenger{}).Spec()
	if len(spec.Commands) != 1 {
		t.Fatalf("command count = %d, want 1", len(spec.Commands))
	}
	if len(spec.Events) != 0 {
		t.Fatalf("event count = %d, want 0", len(spec.Events))
	}

	command := spec.Commands[0].Command
	if command.Name != pingCommandName {
		t.Fatalf("command name = %q, want %q", command.Name, pingCommandName)
	}
	if command.PermissionLevel != slash.PermissionAny {
		t.Fatalf("permission = %v, want Any", command.PermissionLevel)
	}
	if len(command.MandatoryParameters) != 1 || command.MandatoryParameters[0].Type != slash.ParamTypeString {
		t.Fatalf("mandatory = %#v, want one string parameter", command.MandatoryParameters)
	}
	if len(command.OptionalParameters) != 1 || command.OptionalParameters[0].Type != slash.ParamTypeInteger {
		t.Fatalf("optional = %#v, want one integer parameter", command.OptionalParameters)
	}
	if spec.Commands[0].Run == nil {
		t.Fatal("run = nil, want handler")
	}
}

func statusPtr(status slash.CommandStatus) *slash.CommandStatus {
	return &status
}

type captureMessenger struct {
	mu       sync.Mutex
	sendErr  error
	messages []string
}

func (m *captureMessenger) SendMessage(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = append(m.messages, text)

	return m.sendErr
}

func (m *captureMessenger) lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.messages...)
}
