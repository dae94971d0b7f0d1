package objectstore

import "context"

// Store persists a local file under a stable object path and returns the
// public URL it can be fetched from.
type Store interface {
	Put(ctx context.Context, localPath, objectPath string) (string, error)
}
