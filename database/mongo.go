package database

import (
	"context"
	"fmt"
	"time"

	"realtime-service/config"
	"realtime-service/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var Mongo *mongo.Database

func MongoConnect() {
	uri := config.Config("MONGO_URI")
	if uri == "" {
		uri = fmt.Sprintf("mongodb://%s:%s",
			config.Config("MONGO_HOST"),
			config.Config("MONGO_PORT"),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		panic("failed to connect mongo")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		panic("failed to ping mongo")
	}

	Mongo = client.Database(config.Config("MONGO_DB"))
	logger.L().Infof("connection opened to Mongo database %q", config.Config("MONGO_DB"))
}

func Conversations() *mongo.Collection {
	return Mongo.Collection("conversations")
}

func Messages() *mongo.Collection {
	return Mongo.Collection("messages")
}

func Notifications() *mongo.Collection {
	return Mongo.Collection("notifications")
}
