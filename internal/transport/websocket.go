package transport

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// WebsocketTransport adapts a connected *websocket.Conn to the
// Transport interface. Frames travel as binary websocket messages. A
// background goroutine owns the read side: websocket reads cannot be
// interrupted by a deadline and resumed later, so bounded receives are
// implemented as a timed wait on the reader's output.
type WebsocketTransport struct {
	conn    *websocket.Conn
	frames  chan []byte
	readErr chan error
}

func NewWebsocketTransport(conn *websocket.Conn) *WebsocketTransport {
	t := &WebsocketTransport{
		conn:    conn,
		frames:  make(chan []byte, 16),
		readErr: make(chan error, 1),
	}
	go t.readLoop()
	return t
}

// Dial connects to url and wraps the resulting connection. The endpoint
// is expected to have been negotiated elsewhere; no authentication
// happens here.
func Dial(url string) (*WebsocketTransport, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "dialing %s", url)
	}
	return NewWebsocketTransport(conn), nil
}

func (t *WebsocketTransport) readLoop() {
	for {
		_, data, err := t.conn.ReadMessage()
		if err != nil {
			t.readErr <- errors.Wrap(err, "reading websocket message")
			return
		}
		bytesReceived.Add(float64(len(data)))
		messagesReceived.Inc()
		t.frames <- data
	}
}

func (t *WebsocketTransport) Send(data []byte) error {
	if err := t.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return errors.Wrap(err, "writing websocket message")
	}
	bytesSent.Add(float64(len(data)))
	messagesSent.Inc()
	return nil
}

func (t *WebsocketTransport) Receive(timeout time.Duration) ([]byte, error) {
	select {
	case data := <-t.frames:
		return data, nil
	case err := <-t.readErr:
		return nil, err
	case <-time.After(timeout):
		receiveTimeouts.Inc()
		return nil, ErrReceiveTimeout
	}
}

func (t *WebsocketTransport) Close() error {
	return t.conn.Close()
}
