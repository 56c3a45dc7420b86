package slash

import (
	"context"
	"errors"
	"testing"
)

func TestEventRegistrationValidate(t *testing.T) {
	t.Parallel()

	run := func(context.Context, ...any) {}

	tests := []struct {
		name         string
		registration EventRegistration
		wantErr      bool
	}{
		{name: "before event", registration: EventRegistration{Name: "chatSend", Phase: EventPhaseBefore, Run: run}},
		{name: "after event", registration: EventRegistration{Name: "playerSpawn", Phase: EventPhaseAfter, Run: run}},
		{name: "missing name", registration: EventRegistration{Phase: EventPhaseAfter, Run: run}, wantErr: true},
		{name: "unknown phase", registration: EventRegistration{Name: "x", Phase: 2, Run: run}, wantErr: true},
		{name: "nil run", registration: EventRegistration{Name: "x", Phase: EventPhaseBefore}, wantErr: true},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := testCase.registration.Validate()
			if testCase.wantErr && !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("error = %v, want ErrInvalidArgument", err)
			}
			if !testCase.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestRegistrationValidate(t *testing.T) {
	t.Parallel()

	spec := NewCommand().SetName("ok").MustBuild()
	if err := (Registration{Command: spec}).Validate(); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("nil run error = %v, want ErrInvalidArgument", err)
	}

	run := func(context.Context, Origin, []any) *CommandResult { return nil }
	if err := (Registration{Command: spec, Run: run}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Registration{Run: run}).Validate(); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("missing name error = %v, want ErrInvalidArgument", err)
	}
}

func TestResultHelpers(t *testing.T) {
	t.Parallel()

	if got := Success("done"); got.Status != CommandStatusSuccess || got.Message != "done" {
		t.Fatalf("Success() = %#v", got)
	}
	if got := Failure("nope"); got.Status != CommandStatusFailure || got.Message != "nope" {
		t.Fatalf("Failure() = %#v", got)
	}
}
