package domain

import (
	"context"
	"io"
)

// ImageStore persists uploaded image bytes and returns a reference to them.
// The reference is opaque to callers; the local store returns a filename, the remote one an absolute URL.
type ImageStore interface {
	Store(ctx context.Context, filename string, r io.Reader) (ref string, err error)
}
