package probe

import (
	"time"

	"github.com/plugspotter/devup/util/conf"
)

type Config struct {
	// URI is the MongoDB connection string. Required for the probe;
	// without it the probe fails before any network attempt.
	URI string `conf:"mongodb_uri"`

	// Database is the database to probe
	Database string `conf:"mongodb_db"`

	// Collection is the collection used for the read-only probe query
	Collection string `conf:"mongodb_collection"`

	// Timeout bounds server selection for every probe round trip
	Timeout time.Duration `conf:"probe_timeout"`
}

var Defaults = conf.DefaultConfig{
	"mongodb_db":         "plugspotter",
	"mongodb_collection": "stations",
	"probe_timeout":      "10s",
}
