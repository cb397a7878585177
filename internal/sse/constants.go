package sse

import "time"

const (
	// BroadcastBufferSize bounds events queued for fan-out before Publish drops
	BroadcastBufferSize = 100

	// ClientEventBuffer is how far a slow subscriber may lag before its events drop
	ClientEventBuffer = 50

	ClientChannelBuffer = 10
)

// KeepaliveInterval keeps idle streams open through proxies
const KeepaliveInterval = 30 * time.Second

// Events emitted by the stream itself rather than by a session
const (
	EventTypeConnected    = "connected"
	EventTypeKeepalive    = "keepalive"
	EventTypeSessionEnded = "session.ended"
)

const (
	LogMsgClientConnected    = "Event stream client connected"
	LogMsgClientDisconnected = "Event stream client disconnected"
	LogMsgEventDropped       = "Dropping event, subscriber buffer full"
	LogMsgWriteError         = "Failed to write event"
)
