package listener

import (
	"context"
	"encoding/json"
	"time"

	"realtime-service/event"
	"realtime-service/logger"
	"realtime-service/model"
	"realtime-service/realtime"
	"realtime-service/repository"
)

const persistTimeout = 10 * time.Second

var (
	ContentChannel    = make(chan event.Delivery)
	ModerationChannel = make(chan event.Delivery)
)

type blockAction struct {
	UserID string `json:"userId"`
	Reason string `json:"reason"`
}

type broadcastAction struct {
	Message string `json:"message"`
}

// Content consumes like/comment/follow/message notifications from the content
// service: persist first so offline receivers can poll it later, then push to
// whoever is connected.
func Content(notifier *realtime.Notifier, store repository.NotificationRepository) {
	for delivery := range ContentChannel {
		note := &model.Notification{}
		if err := json.Unmarshal(delivery.Data, note); err != nil {
			logger.L().Warnw("malformed content event", "action", delivery.Action, "error", err)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		saved, err := store.Insert(ctx, note)
		cancel()
		if err != nil {
			logger.L().Errorw("failed to persist notification", "action", delivery.Action, "error", err)
			continue
		}

		notifier.NotifyUser(saved.ReceiverID, saved)
	}
}

// Moderation consumes admin actions from the moderation service.
func Moderation(notifier *realtime.Notifier) {
	for delivery := range ModerationChannel {
		switch delivery.Action {
		case "user.block":
			action := blockAction{}
			if err := json.Unmarshal(delivery.Data, &action); err != nil {
				logger.L().Warnw("malformed moderation event", "action", delivery.Action, "error", err)
				continue
			}
			reason := action.Reason
			if reason == "" {
				reason = "account blocked by moderation"
			}
			notifier.ForceLogout(action.UserID, reason)
			notifier.NotifyAdmins(&model.Notification{
				Type:    model.NotificationTypeGeneral,
				Message: "user " + action.UserID + " blocked",
			})

		case "system.broadcast":
			action := broadcastAction{}
			if err := json.Unmarshal(delivery.Data, &action); err != nil {
				logger.L().Warnw("malformed moderation event", "action", delivery.Action, "error", err)
				continue
			}
			notifier.BroadcastSystem(&model.Notification{
				Type:    model.NotificationTypeGeneral,
				Message: action.Message,
			})

		default:
			logger.L().Warnw("unknown moderation action", "action", delivery.Action)
		}
	}
}
