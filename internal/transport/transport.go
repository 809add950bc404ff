// Package transport defines the narrow boundary to the already
// established duplex byte stream the client speaks over, plus a
// websocket-backed implementation of it.
package transport

import (
	"time"

	"github.com/pkg/errors"
)

// ErrReceiveTimeout is returned by Receive when no frame arrived within
// the bounded wait. It is not a failure; the caller's loop goes off and
// does other work before trying again.
var ErrReceiveTimeout = errors.New("receive timed out")

// Transport is an established, authenticated duplex byte stream. The
// client neither opens nor authenticates it; it only sends and receives
// whole frames.
type Transport interface {
	// Send writes one frame. Implementations that are not safe for
	// concurrent writers must be wrapped by the caller; the client
	// serializes its own sends.
	Send(data []byte) error

	// Receive blocks for at most timeout waiting for the next frame and
	// returns ErrReceiveTimeout if none arrived in time.
	Receive(timeout time.Duration) ([]byte, error)

	// Close tears down the underlying stream.
	Close() error
}
