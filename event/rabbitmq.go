package event

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"realtime-service/config"
	"realtime-service/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Collaborator queues. Content and moderation services publish inbound
// actions; the relay publishes audit events for analytics.
const (
	QueueContent    = "content"
	QueueModeration = "moderation"
	QueueAnalytics  = "analytics"
)

const ActionHeader = "x-action"

// Inbound deliveries, decoupled from the AMQP types.
type Delivery struct {
	Action string
	Data   []byte
}

type Listener struct {
	Queue   string
	Channel chan Delivery
}

type auditRecord struct {
	Time   int64  `json:"time"`
	Queue  string `json:"queue"`
	Action string `json:"action"`
	Data   string `json:"data"`
}

var (
	connection *amqp.Connection
	channel    *amqp.Channel

	auditLog *os.File
)

func RabbitMQConnect(queues []string) {
	var err error
	connection, err = amqp.Dial(fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		config.Config("RABBITMQ_USER"),
		config.Config("RABBITMQ_PASSWORD"),
		config.Config("RABBITMQ_HOST"),
		config.Config("RABBITMQ_PORT"),
	))
	if err != nil {
		panic("failed to connect to RabbitMQ")
	}

	channel, err = connection.Channel()
	if err != nil {
		panic("failed to open a RabbitMQ channel")
	}

	for _, name := range queues {
		_, err := channel.QueueDeclare(
			name,  // name
			false, // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			panic(fmt.Sprintf("failed to declare RabbitMQ queue %s", name))
		}
	}
	logger.L().Infof("connection opened to RabbitMQ, queues declared: %v", queues)

	if config.Config("EVENT_AUDIT_LOG") != "" {
		auditLog, err = os.OpenFile(config.Config("EVENT_AUDIT_LOG"), os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
		if err != nil {
			panic(err)
		}
	}
}

func RabbitMQClose() {
	if auditLog != nil {
		auditLog.Close()
	}
	if channel != nil {
		channel.Close()
	}
	if connection != nil {
		connection.Close()
	}
}

// RabbitMQSubscribe pumps each queue's deliveries into its listener channel.
// Acks happen after the handoff; a crashed handler loses at most what it had
// already pulled, which matches the layer's best-effort posture.
func RabbitMQSubscribe(listeners []Listener) {
	for _, listener := range listeners {
		msgs, err := channel.Consume(
			listener.Queue, // queue
			"",             // consumer
			false,          // auto-ack
			false,          // exclusive
			false,          // no-local
			false,          // no-wait
			nil,            // args
		)
		if err != nil {
			panic(fmt.Sprintf("failed to register a consumer on %s", listener.Queue))
		}
		logger.L().Infof("subscribed to RabbitMQ [%s] queue", listener.Queue)

		go func(listener Listener) {
			for msg := range msgs {
				action, _ := msg.Headers[ActionHeader].(string)
				audit(listener.Queue, action, msg.Body)
				msg.Ack(false)
				listener.Channel <- Delivery{Action: action, Data: msg.Body}
			}
		}(listener)
	}
}

// Emit publishes one action to a collaborator queue. Publish failures are
// logged and dropped, never retried.
func Emit(queue string, action string, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := channel.PublishWithContext(
		ctx,
		"",    // exchange
		queue, // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Headers: amqp.Table{
				ActionHeader: action,
			},
			Body: data,
		},
	)
	if err != nil {
		logger.L().Errorw("failed to publish event", "queue", queue, "action", action, "error", err)
		return
	}
	audit(queue, action, data)
}

func audit(queue, action string, data []byte) {
	if auditLog == nil {
		return
	}
	record, _ := json.Marshal(auditRecord{
		Time:   time.Now().UnixMicro(),
		Queue:  queue,
		Action: action,
		Data:   string(data),
	})
	if _, err := auditLog.WriteString(string(record) + "\n"); err != nil {
		logger.L().Errorw("failed to write audit record", "error", err)
	}
}

// Publisher adapts Emit to the realtime layer's audit seam.
type Publisher struct {
	Queue string
}

func (p Publisher) Publish(action string, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		logger.L().Errorw("failed to encode audit payload", "action", action, "error", err)
		return
	}
	Emit(p.Queue, action, body)
}
