package memhost

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"bedrock-slash/pkg/slash"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestHostRegisterCommand(t *testing.T) {
	t.Parallel()

	host := newTestHost()
	definition := slash.NewCommand().
		SetName("cmd:pick").
		RegisterEnum("cmd:opts", []string{"a"}).
		AddEnumOption("cmd:opts", true).
		MustBuild()

	if err := host.RegisterCommand(definition, echoHandler); !errors.Is(err, ErrUnknownEnum) {
		t.Fatalf("error = %v, want ErrUnknownEnum before enum registration", err)
	}
	if err := host.RegisterEnum("cmd:opts", []string{"a"}); err != nil {
		t.Fatalf("register enum: %v", err)
	}
	if err := host.RegisterEnum("cmd:opts", []string{"b"}); !errors.Is(err, ErrDuplicateEnum) {
		t.Fatalf("error = %v, want ErrDuplicateEnum", err)
	}
	if err := host.RegisterCommand(definition, echoHandler); err != nil {
		t.Fatalf("register command: %v", err)
	}
	if err := host.RegisterCommand(definition, echoHandler); !errors.Is(err, ErrDuplicateCommand) {
		t.Fatalf("error = %v, want ErrDuplicateCommand", err)
	}
	if err := host.RegisterCommand(slash.CommandSpec{Name: "cmd:nil"}, nil); err == nil {
		t.Fatal("expected error for nil handler")
	}

	definitions := host.Definitions()
	if len(definitions) != 1 || definitions[0].Name != "cmd:pick" {
		t.Fatalf("definitions = %#v, want cmd:pick", definitions)
	}
	if diff := cmp.Diff(map[string][]string{"cmd:opts": {"a"}}, host.Enums()); diff != "" {
		t.Fatalf("enums mismatch (-want +got):\n%s", diff)
	}
}

func TestHostInvoke(t *testing.T) {
	t.Parallel()

	host := newTestHost()
	if err := host.RegisterCommand(slash.CommandSpec{Name: "cmd:echo"}, echoHandler); err != nil {
		t.Fatalf("register command: %v", err)
	}

	result, err := host.Invoke(context.Background(), "cmd:echo", slash.RawOrigin{SourceType: slash.SourceTypeServer}, "hi")
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if result == nil || result.Message != "Server:1" {
		t.Fatalf("result = %#v, want Server:1", result)
	}

	if _, err := host.Invoke(context.Background(), "cmd:missing", slash.RawOrigin{}); !errors.Is(err, slash.ErrUnknownCommand) {
		t.Fatalf("error = %v, want ErrUnknownCommand", err)
	}
}

func TestHostEmit(t *testing.T) {
	t.Parallel()

	host := newTestHost()
	var received [][]any
	record := func(_ context.Context, args ...any) { received = append(received, args) }

	if err := host.AfterEvents().Subscribe("playerSpawn", record); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := host.AfterEvents().Subscribe("playerSpawn", record); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := host.BeforeEvents().Subscribe("", record); err == nil {
		t.Fatal("expected error for empty event name")
	}

	delivered, err := host.Emit(context.Background(), slash.EventPhaseAfter, "playerSpawn", "steve")
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if delivered != 2 {
		t.Fatalf("delivered = %d, want 2", delivered)
	}
	if diff := cmp.Diff([][]any{{"steve"}, {"steve"}}, received); diff != "" {
		t.Fatalf("received mismatch (-want +got):\n%s", diff)
	}

	delivered, err = host.Emit(context.Background(), slash.EventPhaseBefore, "playerSpawn")
	if err != nil || delivered != 0 {
		t.Fatalf("before emit = %d, %v; want 0, nil", delivered, err)
	}
	if _, err := host.Emit(context.Background(), 5, "playerSpawn"); !errors.Is(err, slash.ErrInvalidArgument) {
		t.Fatalf("error = %v, want ErrInvalidArgument", err)
	}

	if diff := cmp.Diff([]string{"playerSpawn"}, host.afterGroup.EventNames()); diff != "" {
		t.Fatalf("event names mismatch (-want +got):\n%s", diff)
	}
}

func TestHostSendMessage(t *testing.T) {
	t.Parallel()

	host := newTestHost()
	for _, text := range []string{"one", "two"} {
		if err := host.SendMessage(context.Background(), text); err != nil {
			t.Fatalf("send message: %v", err)
		}
	}
	if diff := cmp.Diff([]string{"one", "two"}, host.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func newTestHost() *Host {
	return New(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
}

func echoHandler(_ context.Context, origin slash.RawOrigin, args []any) *slash.CommandResult {
	return slash.Success(string(origin.SourceType) + ":" + string(rune('0'+len(args))))
}
