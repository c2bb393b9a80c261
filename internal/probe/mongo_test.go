package probe

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestProber_Check_MissingURI(t *testing.T) {
	p := New(Config{
		Database: "plugspotter",
		Timeout:  10 * time.Second,
	}, zap.NewNop())

	start := time.Now()
	err := p.Check(context.Background())

	// fails fast, no network attempt
	assert.ErrorIs(t, err, ErrMissingURI)
	assert.Less(t, time.Since(start), time.Second)
}

func TestProber_Collections_MissingURI(t *testing.T) {
	p := New(Config{Database: "plugspotter"}, zap.NewNop())

	names, err := p.Collections(context.Background())
	assert.ErrorIs(t, err, ErrMissingURI)
	assert.Nil(t, names)
}

func TestProber_Check_UnreachableWithinTimeout(t *testing.T) {
	p := New(Config{
		// nothing listens on port 1
		URI:        "mongodb://127.0.0.1:1",
		Database:   "plugspotter",
		Collection: "stations",
		Timeout:    500 * time.Millisecond,
	}, zap.NewNop())

	start := time.Now()
	err := p.Check(context.Background())

	assert.Error(t, err)
	// bounded by the server selection timeout, plus a little overhead
	assert.Less(t, time.Since(start), 5*time.Second)
}
