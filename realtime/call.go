package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type callState int

const (
	callInitiating callState = iota + 1
	callActive
)

// callSession is the transient record of one two-party call, keyed by room.
// Terminal transitions (end, reject, error, disconnect) delete it, which
// immediately frees the room for a new call. Never persisted.
type callSession struct {
	id         string
	room       string
	caller     string
	callee     string
	startedAt  time.Time
	state      callState
	lastSignal map[string]any
}

func (c *callSession) peer(userID string) (string, bool) {
	switch userID {
	case c.caller:
		return c.callee, true
	case c.callee:
		return c.caller, true
	}
	return "", false
}

// Calls coordinates two-party call signaling. One active call per room, one
// active call per participant.
type Calls struct {
	mu        sync.Mutex
	byRoom    map[string]*callSession
	byUser    map[string]string // participant -> room of their active call
	validator *Validator
	emitter   Emitter
	audit     AuditPublisher
	now       func() time.Time
	log       *zap.SugaredLogger
}

func NewCalls(validator *Validator, emitter Emitter, audit AuditPublisher, log *zap.SugaredLogger) *Calls {
	return &Calls{
		byRoom:    make(map[string]*callSession),
		byUser:    make(map[string]string),
		validator: validator,
		emitter:   emitter,
		audit:     audit,
		now:       time.Now,
		log:       log,
	}
}

// Initiate moves a room from no call to INITIATING. Both parties must be free
// of any other call and on the room's roster. On success the callee's
// personal channel receives the invitation; on failure only the initiator
// hears about it, through the returned error.
func (c *Calls) Initiate(ctx context.Context, roomID, from, to string) error {
	if roomID == "" || from == "" || to == "" || from == to {
		return ErrMissingFields
	}

	c.mu.Lock()
	if _, busy := c.byUser[from]; busy {
		c.mu.Unlock()
		return ErrParticipantBusy
	}
	if _, busy := c.byUser[to]; busy {
		c.mu.Unlock()
		return ErrParticipantBusy
	}
	if _, taken := c.byRoom[roomID]; taken {
		c.mu.Unlock()
		return ErrParticipantBusy
	}
	c.mu.Unlock()

	// Roster check reads the initiator's listing; no lock held across I/O.
	if !c.validator.ValidateMembership(ctx, roomID, []string{from, to}) {
		return ErrNotParticipant
	}

	session := &callSession{
		id:         uuid.NewString(),
		room:       roomID,
		caller:     from,
		callee:     to,
		startedAt:  c.now(),
		state:      callInitiating,
		lastSignal: make(map[string]any),
	}

	c.mu.Lock()
	// Re-check under lock: a competing initiation may have won the race
	// while membership was being validated.
	if _, busy := c.byUser[from]; busy {
		c.mu.Unlock()
		return ErrParticipantBusy
	}
	if _, busy := c.byUser[to]; busy {
		c.mu.Unlock()
		return ErrParticipantBusy
	}
	if _, taken := c.byRoom[roomID]; taken {
		c.mu.Unlock()
		return ErrParticipantBusy
	}
	c.byRoom[roomID] = session
	c.byUser[from] = roomID
	c.byUser[to] = roomID
	c.mu.Unlock()

	c.emitter.Emit(UserChannel(to), EventIncomingVideoCall, IncomingCallPayload{
		RoomID: roomID,
		From:   from,
	})
	if c.audit != nil {
		c.audit.Publish("call.initiated", IncomingCallPayload{RoomID: roomID, From: from})
	}
	c.log.Infow("call initiated", "call", session.id, "room", roomID, "from", from, "to", to)
	return nil
}

// Signal relays one payload verbatim to the other registered participant and
// caches the sender's last payload for observability. Missing sessions and
// unrecognized senders are dropped silently to tolerate late or duplicate
// signals after teardown.
func (c *Calls) Signal(roomID, from string, signal any) {
	c.mu.Lock()
	session, ok := c.byRoom[roomID]
	if !ok {
		c.mu.Unlock()
		return
	}
	peer, recognized := session.peer(from)
	if !recognized {
		c.mu.Unlock()
		return
	}
	session.lastSignal[from] = signal
	session.state = callActive
	c.mu.Unlock()

	c.emitter.Emit(UserChannel(peer), EventVideoCallSignal, CallSignalPayload{
		RoomID: roomID,
		From:   from,
		Signal: signal,
	})
}

// End tears the call down from either side, notifying both participants with
// the elapsed duration. Unknown rooms and non-participants are ignored.
func (c *Calls) End(roomID, by string) {
	c.mu.Lock()
	session, ok := c.byRoom[roomID]
	if !ok {
		c.mu.Unlock()
		return
	}
	if _, recognized := session.peer(by); !recognized {
		c.mu.Unlock()
		return
	}
	c.discardLocked(session)
	duration := c.now().Sub(session.startedAt)
	c.mu.Unlock()

	payload := CallEndedPayload{
		RoomID:          roomID,
		EndedBy:         by,
		DurationSeconds: int64(duration.Seconds()),
	}
	for _, p := range []string{session.caller, session.callee} {
		c.emitter.Emit(UserChannel(p), EventEndVideoCall, payload)
	}
	if c.audit != nil {
		c.audit.Publish("call.ended", payload)
	}
	c.log.Infow("call ended", "call", session.id, "room", roomID, "by", by, "duration", duration)
}

// Reject lets the callee decline an invitation. Only the callee can reject,
// and only while the call is still INITIATING; an active call goes through
// End instead. Only the caller is notified.
func (c *Calls) Reject(roomID, by string) {
	c.mu.Lock()
	session, ok := c.byRoom[roomID]
	if !ok {
		c.mu.Unlock()
		return
	}
	if by != session.callee || session.state != callInitiating {
		c.mu.Unlock()
		return
	}
	c.discardLocked(session)
	c.mu.Unlock()

	c.emitter.Emit(UserChannel(session.caller), EventVideoCallRejected, CallRejectedPayload{
		RoomID: roomID,
		By:     by,
	})
	c.log.Infow("call rejected", "call", session.id, "room", roomID, "by", by)
}

// DropUser runs on disconnect. An in-flight call is terminated rather than
// left dangling for the peer: they get a regular end event with the duration
// so far.
func (c *Calls) DropUser(userID string) {
	c.mu.Lock()
	roomID, ok := c.byUser[userID]
	c.mu.Unlock()
	if !ok {
		return
	}
	c.End(roomID, userID)
}

// ActiveCall reports whether a call session currently holds the room.
func (c *Calls) ActiveCall(roomID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.byRoom[roomID]
	return ok
}

func (c *Calls) discardLocked(session *callSession) {
	delete(c.byRoom, session.room)
	delete(c.byUser, session.caller)
	delete(c.byUser, session.callee)
}
