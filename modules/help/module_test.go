package help

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bedrock-slash/pkg/slash"
)

func TestModuleHandleCommand(t *testing.T) {
	tests := []struct {
		name             string
		catalogCommands  []slash.RegisteredCommand
		catalogErr       error
		sendErr          error
		wantFailure      bool
		wantSentHelp     bool
		wantTextContains []string
	}{
		{
			name: "help command renders registered commands",
			catalogCommands: []slash.RegisteredCommand{
				{
					ModuleName: "ping",
					Command: slash.CommandSpec{
						Name:                "cmd:ping",
						Description:         "Ping pong",
						MandatoryParameters: []slash.Parameter{{Name: "name", Type: slash.ParamTypeString, Required: true}},
						OptionalParameters:  []slash.Parameter{{Name: "amount", Type: slash.ParamTypeInteger}},
					},
				},
				{
					ModuleName: "enumpick",
					Command: slash.CommandSpec{
						Name:            "cmd:enum",
						PermissionLevel: slash.PermissionAdmin,
						MandatoryParameters: []slash.Parameter{
							{Name: "cmd:foo_enum", Type: slash.ParamTypeEnum, Required: true, EnumName: "cmd:foo_enum"},
						},
					},
				},
			},
			wantSentHelp: true,
			wantTextContains: []string{
				"Available commands:",
				"/cmd:ping <name: String> [amount: Integer]",
				"  Ping pong",
				"/cmd:enum <cmd:foo_enum>",
				"  requires Admin",
			},
		},
		{
			name:             "empty catalog renders placeholder",
			wantSentHelp:     true,
			wantTextContains: []string{"(none)"},
		},
		{
			name:        "catalog failure returns failure",
			catalogErr:  errors.New("catalog down"),
			wantFailure: true,
		},
		{
			name:         "send failure returns failure",
			sendErr:      errors.New("world closed"),
			wantFailure:  true,
			wantSentHelp: true,
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			messenger := &captureMessenger{sendErr: testCase.sendErr}
			catalog := catalogStub{commands: testCase.catalogCommands, err: testCase.catalogErr}
			result := New(messenger, catalog).handleCommand(context.Background(), slash.Origin{}, nil)

			if testCase.wantFailure {
				if result == nil || result.Status != slash.CommandStatusFailure {
					t.Fatalf("result = %#v, want failure", result)
				}
			} else if result != nil {
				t.Fatalf("result = %#v, want nil", result)
			}

			sentHelp := len(messenger.messages) > 0
			if sentHelp != testCase.wantSentHelp {
				t.Fatalf("sent help = %v, want %v", sentHelp, testCase.wantSentHelp)
			}
			if !sentHelp {
				return
			}
			for _, want := range testCase.wantTextContains {
				if !strings.Contains(messenger.messages[0], want) {
					t.Fatalf("help text = %q, want substring %q", messenger.messages[0], want)
				}
			}
		})
	}
}

func TestRenderHelpSortsByName(t *testing.T) {
	t.Parallel()

	text := renderHelp([]slash.RegisteredCommand{
		{Command: slash.CommandSpec{Name: "cmd:zeta"}},
		{Command: slash.CommandSpec{Name: "cmd:alpha"}},
	})
	if strings.Index(text, "/cmd:alpha") > strings.Index(text, "/cmd:zeta") {
		t.Fatalf("help text = %q, want alpha before zeta", text)
	}
}

func TestModuleHandleCommandWithoutDependencies(t *testing.T) {
	t.Parallel()

	if result := New(nil, catalogStub{}).handleCommand(context.Background(), slash.Origin{}, nil); result == nil {
		t.Fatal("result = nil, want failure without messenger")
	}
	if result := New(&captureMessenger{}, nil).handleCommand(context.Background(), slash.Origin{}, nil); result == nil {
		t.Fatal("result = nil, want failure without catalog")
	}
}

type catalogStub struct {
	commands []slash.RegisteredCommand
	err      error
}

func (s catalogStub) ListCommands(context.Context) ([]slash.RegisteredCommand, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.commands, nil
}

type captureMessenger struct {
	sendErr  error
	messages []string
}

func (m *captureMessenger) SendMessage(_ context.Context, text string) error {
	m.messages = append(m.messages, text)
	return m.sendErr
}
