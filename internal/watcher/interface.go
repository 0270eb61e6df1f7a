package watcher

import "context"

// Watcher monitors a drop folder for new recordings.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles one newly created file.
type EventHandler func(ctx context.Context, filePath string) error

// Filter reports whether a path should be handed to the EventHandler.
type Filter func(path string) bool
