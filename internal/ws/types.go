package ws

const (
	// client - server
	MsgPing = "ping"

	// server - client
	MsgReady = "ready"
	MsgPong  = "pong"
)

// Envelope is the minimal shape of every message on the socket.
type Envelope struct {
	Type string `json:"type"`
}
