// Package mongodb provides support for access to a MongoDB collection.
package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jrazmi/tasktracker/sdk/environment"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Options represents the exportable database configuration
type Options struct {
	URI            string        `env:"MONGO_URI" default:"mongodb://localhost:27017"`
	Database       string        `env:"MONGO_DATABASE" default:"todolist"`
	Collection     string        `env:"MONGO_COLLECTION" default:"tasks"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" default:"10s"`
}

type settings struct {
	uri            string
	database       string
	collection     string
	connectTimeout time.Duration
	logger         *slog.Logger
}

// Option is a function that configures the database options
type Option func(*settings)

// WithLogger sets a custom logger for the database
func WithLogger(logger *slog.Logger) Option {
	return func(o *settings) {
		o.logger = logger
	}
}

// WithURI overrides the connection URI
func WithURI(uri string) Option {
	return func(o *settings) {
		o.uri = uri
	}
}

// WithDatabase overrides the database name
func WithDatabase(name string) Option {
	return func(o *settings) {
		o.database = name
	}
}

// WithCollection overrides the collection name
func WithCollection(name string) Option {
	return func(o *settings) {
		o.collection = name
	}
}

// WithConnectTimeout sets the connection timeout
func WithConnectTimeout(timeout time.Duration) Option {
	return func(o *settings) {
		o.connectTimeout = timeout
	}
}

// Database holds a connected client and the collection tasks live in.
type Database struct {
	Client     *mongo.Client
	Collection *mongo.Collection
	log        *slog.Logger
}

// NewFromEnv connects using environment variables
func NewFromEnv(ctx context.Context, prefix string, opts ...Option) (*Database, error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing mongo config: %w", err)
	}
	return New(ctx, cfg, opts...)
}

// New connects to the server and pings the primary before returning.
func New(ctx context.Context, cfg Options, opts ...Option) (*Database, error) {
	o := &settings{
		uri:            cfg.URI,
		database:       cfg.Database,
		collection:     cfg.Collection,
		connectTimeout: cfg.ConnectTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.connectTimeout <= 0 {
		o.connectTimeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, o.connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(o.uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	o.logger.Info("mongo connected", "database", o.database, "collection", o.collection)

	return &Database{
		Client:     client,
		Collection: client.Database(o.database).Collection(o.collection),
		log:        o.logger,
	}, nil
}

// StatusCheck returns nil if it can successfully talk to the database
func (d *Database) StatusCheck(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second)
		defer cancel()
	}
	return d.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (d *Database) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}
