package realtime

import "errors"

// Failures surfaced to the acting session as a generic error event. Other
// participants never see them.
var (
	ErrMissingFields   = errors.New("missing room or user identifier")
	ErrNotParticipant  = errors.New("not a participant of this conversation")
	ErrParticipantBusy = errors.New("participant is already in a call")
	ErrUnknownType     = errors.New("unknown message type")
)
