package internal

import (
	"chat-room/errors"
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/dgraph-io/badger/v4"
)

// BadgerOptions resolves DATABASE_URL into Badger options.
// Accepted forms: "badger:///var/lib/chat", "badger://data/chat", a bare path,
// and "memory://" for a store that lives only as long as the process.
func BadgerOptions(ctx context.Context, rawURL string, logger *slog.Logger) (badger.Options, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return badger.Options{}, fmt.Errorf("%w: %v", errors.ErrInvalidDatabaseURL, err)
	}

	var options badger.Options
	switch u.Scheme {
	case "memory":
		options = badger.DefaultOptions("").WithInMemory(true)
	case "badger":
		path := u.Host + u.Path
		if path == "" {
			return badger.Options{}, fmt.Errorf("%w: missing path in %q", errors.ErrInvalidDatabaseURL, rawURL)
		}
		options = badger.DefaultOptions(path)
	case "":
		if u.Path == "" {
			return badger.Options{}, fmt.Errorf("%w: empty", errors.ErrInvalidDatabaseURL)
		}
		options = badger.DefaultOptions(u.Path)
	default:
		return badger.Options{}, fmt.Errorf("%w: unsupported scheme %q", errors.ErrInvalidDatabaseURL, u.Scheme)
	}

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}
	return options, nil
}
