package transport

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bytesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "steamlink_transport_bytes_sent_total",
		Help: "Bytes written to the connection manager socket.",
	})
	bytesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "steamlink_transport_bytes_received_total",
		Help: "Bytes read from the connection manager socket.",
	})
	messagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "steamlink_transport_messages_sent_total",
		Help: "Frames written to the connection manager socket.",
	})
	messagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "steamlink_transport_messages_received_total",
		Help: "Frames read from the connection manager socket.",
	})
	receiveTimeouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "steamlink_transport_receive_timeouts_total",
		Help: "Bounded receives that returned without a frame.",
	})
)
