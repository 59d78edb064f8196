package database

import (
	"context"
	"fmt"
	"time"

	"astrokart/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo wraps the client and the collection handles the application uses.
// It is constructed once in main and injected; nothing reads it from
// package state.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database

	Users    *mongo.Collection
	Products *mongo.Collection
	Orders   *mongo.Collection
	Reviews  *mongo.Collection
	Wishlist *mongo.Collection
	HomeRows *mongo.Collection
}

func ConnectMongo(ctx context.Context, cfg config.Config) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.DBName)
	return &Mongo{
		Client:   client,
		DB:       db,
		Users:    db.Collection("users"),
		Products: db.Collection("products"),
		Orders:   db.Collection("orders"),
		Reviews:  db.Collection("reviews"),
		Wishlist: db.Collection("wishlist"),
		HomeRows: db.Collection("config"),
	}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
