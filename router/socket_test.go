package router

import (
	"errors"
	"sync"
	"testing"

	"realtime-service/realtime"
)

func TestConnState_ConcurrentBindAndRead(t *testing.T) {
	state := &connState{}

	if got := state.user(); got != "" {
		t.Fatalf("user() before bind = %q, want empty", got)
	}

	// Handlers and the disconnect callback read the binding while register
	// events rewrite it; run them together so the race detector can see any
	// unguarded access.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			state.bind("alice")
		}()
		go func() {
			defer wg.Done()
			if got := state.user(); got != "" && got != "alice" {
				t.Errorf("user() = %q, want empty or alice", got)
			}
		}()
	}
	wg.Wait()

	if got := state.user(); got != "alice" {
		t.Errorf("user() after binds = %q, want alice", got)
	}
}

func TestClientMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "missing fields", err: realtime.ErrMissingFields, want: realtime.ErrMissingFields.Error()},
		{name: "not participant", err: realtime.ErrNotParticipant, want: realtime.ErrNotParticipant.Error()},
		{name: "busy", err: realtime.ErrParticipantBusy, want: realtime.ErrParticipantBusy.Error()},
		{name: "unknown type", err: realtime.ErrUnknownType, want: realtime.ErrUnknownType.Error()},
		{name: "collaborator failure stays opaque", err: errors.New("dial tcp: connection refused"), want: "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clientMessage(tt.err); got != tt.want {
				t.Errorf("clientMessage(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
