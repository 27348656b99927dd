package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ro706/Project-MARS/internal/config"
	"github.com/Ro706/Project-MARS/internal/lib/sl"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection = "users"
	chatsCollection = "chats"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("owned by another user")
	ErrEmailTaken = errors.New("email already registered")
	ErrNoMessages = errors.New("no messages to save")
)

type MongoDB struct {
	ctx           context.Context
	clientOptions *options.ClientOptions
	database      string
	log           *slog.Logger
}

// NewMongoClient builds the repository and verifies the deployment is
// reachable. A bad or absent connection string is a startup failure, not
// a degraded mode.
func NewMongoClient(conf *config.Config, logger *slog.Logger) (*MongoDB, error) {
	if conf.Mongo.URI == "" {
		return nil, fmt.Errorf("mongodb connection string is required")
	}

	clientOptions := options.Client().ApplyURI(conf.Mongo.URI)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}

	client := &MongoDB{
		ctx:           context.Background(),
		clientOptions: clientOptions,
		database:      conf.Mongo.Database,
		log:           logger.With(sl.Module("mongodb")),
	}

	connection, err := client.connect()
	if err != nil {
		return nil, err
	}
	defer client.disconnect(connection)

	pingCtx, cancel := context.WithTimeout(client.ctx, time.Duration(conf.Mongo.PingSeconds)*time.Second)
	defer cancel()
	if err := connection.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongodb ping error: %w", err)
	}

	return client, nil
}

func (m *MongoDB) connect() (*mongo.Client, error) {
	connection, err := mongo.Connect(m.ctx, m.clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect error: %w", err)
	}
	return connection, nil
}

func (m *MongoDB) disconnect(connection *mongo.Client) {
	_ = connection.Disconnect(m.ctx)
}
