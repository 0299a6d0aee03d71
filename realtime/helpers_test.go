package realtime

import (
	"context"
	"errors"
	"sync"

	"realtime-service/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type emission struct {
	Channel Channel
	Event   string
	Payload any
}

type fakeEmitter struct {
	mu         sync.Mutex
	emissions  []emission
	broadcasts []emission
}

func (f *fakeEmitter) Emit(ch Channel, event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emissions = append(f.emissions, emission{Channel: ch, Event: event, Payload: payload})
}

func (f *fakeEmitter) Broadcast(event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcasts = append(f.broadcasts, emission{Event: event, Payload: payload})
}

func (f *fakeEmitter) sent(ch Channel, event string) []emission {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []emission
	for _, e := range f.emissions {
		if e.Channel == ch && e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

type fakeLister struct {
	byUser map[string][]model.Conversation
	err    error
}

func (f *fakeLister) ListByUser(_ context.Context, userID string) ([]model.Conversation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byUser[userID], nil
}

type fakeStore struct {
	created []*model.Message
	err     error
}

func (f *fakeStore) CreateMessage(_ context.Context, m *model.Message) (*model.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	m.ID = primitive.NewObjectID()
	f.created = append(f.created, m)
	return m, nil
}

// conversationFixture builds a roster shared by every listed participant, so
// any of them can resolve the room through their own listing.
func conversationFixture(participants ...string) (model.Conversation, string, *fakeLister) {
	conv := model.Conversation{
		ID:           primitive.NewObjectID(),
		Participants: participants,
	}
	byUser := make(map[string][]model.Conversation)
	for _, p := range participants {
		byUser[p] = []model.Conversation{conv}
	}
	return conv, conv.ID.Hex(), &fakeLister{byUser: byUser}
}

// multiRoomLister builds one conversation per roster, all visible through
// every participant's listing.
func multiRoomLister(rosters ...[]string) (*fakeLister, []string) {
	byUser := make(map[string][]model.Conversation)
	roomIDs := make([]string, 0, len(rosters))
	for _, roster := range rosters {
		conv := model.Conversation{
			ID:           primitive.NewObjectID(),
			Participants: roster,
		}
		roomIDs = append(roomIDs, conv.ID.Hex())
		for _, p := range roster {
			byUser[p] = append(byUser[p], conv)
		}
	}
	return &fakeLister{byUser: byUser}, roomIDs
}

var errStore = errors.New("store unavailable")

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
