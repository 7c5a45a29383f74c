//go:build go1.24

package store

import "log/slog"

var discardHandler slog.Handler = slog.DiscardHandler
