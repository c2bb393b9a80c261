// Package probe implements the MongoDB connectivity smoke test. A
// probe proves three things: the deployment is reachable, credentials
// are accepted, and the configured collection can be read. All driver
// errors are absorbed here and surface only as a diagnostic error
// value; nothing panics and nothing propagates past this boundary.
package probe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ErrMissingURI is returned when no connection string is configured.
var ErrMissingURI = errors.New("MONGODB_URI is not set")

const disconnectTimeout = 5 * time.Second

type Prober struct {
	cfg Config
	log *zap.Logger
}

func New(cfg Config, log *zap.Logger) *Prober {
	return &Prober{
		cfg: cfg,
		log: log.Named("probe"),
	}
}

// Check performs the liveness ping and one read-only query against the
// configured collection. The client is released on every exit path.
func (p *Prober) Check(ctx context.Context) error {
	if p.cfg.URI == "" {
		return ErrMissingURI
	}

	p.log.Info("testing connection",
		zap.String("database", p.cfg.Database),
		zap.Duration("timeout", p.cfg.Timeout),
	)

	client, err := p.connect(ctx)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer p.disconnect(client)

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	coll := client.Database(p.cfg.Database).Collection(p.cfg.Collection)

	// an empty collection is fine, the query only proves read access
	err = coll.FindOne(ctx, bson.D{}).Err()
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("query %s.%s: %w", p.cfg.Database, p.cfg.Collection, err)
	}

	p.log.Info("connection ok")

	return nil
}

// Collections returns the collection names of the configured database.
func (p *Prober) Collections(ctx context.Context) ([]string, error) {
	if p.cfg.URI == "" {
		return nil, ErrMissingURI
	}

	client, err := p.connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer p.disconnect(client)

	names, err := client.Database(p.cfg.Database).ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}

	return names, nil
}

func (p *Prober) connect(ctx context.Context) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(p.cfg.URI).
		SetServerSelectionTimeout(p.cfg.Timeout)

	return mongo.Connect(ctx, opts)
}

func (p *Prober) disconnect(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		p.log.Warn("disconnect failed", zap.Error(err))
	}
}
