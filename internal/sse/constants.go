package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second
)

// Event types sent to stream clients
const (
	EventTypeProductionCompleted = "production.completed"
	EventTypeStockRestocked      = "stock.restocked"
	// EventTypeLowStock is derived from production runs that left packaging
	// under its minimum
	EventTypeLowStock  = "stock.low"
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// QueryParamTypes filters the stream, e.g. ?types=stock.low,stock.restocked
const QueryParamTypes = "types"

// Log messages
const (
	LogMsgClientConnected      = "SSE client connected"
	LogMsgClientDisconnected   = "SSE client disconnected"
	LogMsgEventBroadcast       = "Broadcasting SSE event"
	LogMsgBroadcastDropped     = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError           = "Failed to write SSE event"
	LogMsgPayloadUndecoded     = "Failed to decode event payload for SSE"
	LogMsgSubscriberRegistered = "SSE subscriber registered for event types"
)

// Error messages
const (
	ErrMsgStreamingUnsupported = "streaming not supported"
	ErrMsgUnknownEventType     = "unknown event type"
)
