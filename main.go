package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"realtime-service/config"
	"realtime-service/controller"
	"realtime-service/database"
	"realtime-service/event"
	"realtime-service/event/listener"
	"realtime-service/logger"
	"realtime-service/realtime"
	"realtime-service/repository"
	"realtime-service/router"
	"realtime-service/socketio"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	log := logger.L()

	rest := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		StrictRouting:         true,
		AppName:               "realtime-service",
	})

	rest.Use(cors.New())

	database.RedisConnect()
	database.MongoConnect()

	event.RabbitMQConnect([]string{
		event.QueueContent,
		event.QueueModeration,
		event.QueueAnalytics,
	})

	server := socketio.Init(rest)

	// Repositories over the document store
	conversations := repository.NewConversationRepository(database.Conversations(), database.Messages())
	notifications := repository.NewNotificationRepository(database.Notifications())

	// Realtime core
	emitter := socketio.NewEmitter(server)
	audit := event.Publisher{Queue: event.QueueAnalytics}
	registry := realtime.NewRegistry()
	validator := realtime.NewValidator(conversations, log)
	relay := realtime.NewRelay(conversations, validator, registry, emitter, audit, log)
	calls := realtime.NewCalls(validator, emitter, audit, log)
	notifier := realtime.NewNotifier(emitter, log)

	// Collaborator event ingestion
	go listener.Content(notifier, notifications)
	go listener.Moderation(notifier)
	event.RabbitMQSubscribe([]event.Listener{
		{Queue: event.QueueContent, Channel: listener.ContentChannel},
		{Queue: event.QueueModeration, Channel: listener.ModerationChannel},
	})

	router.Rest(rest, router.RestDeps{
		Chat:          controller.NewChatController(conversations),
		Notifications: controller.NewNotificationController(notifications),
		Admin:         controller.NewAdminController(notifier, audit),
	})
	router.Socket(server, router.SocketDeps{
		Registry: registry,
		Relay:    relay,
		Calls:    calls,
		Notifier: notifier,
		Audit:    audit,
	})

	go rest.Listen(fmt.Sprintf(":%s", config.Config("SERVER_PORT")))

	exit := make(chan struct{})
	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				close(exit)
				return
			}
		}
	}()

	<-exit
	server.Close(nil)
	event.RabbitMQClose()
	log.Sync()
	os.Exit(0)
}
