package common

type UpdateType string

const (
	UPDATE_TRIGGER UpdateType = "trigger"
	UPDATE_STOP    UpdateType = "stop"
	UPDATE_REFRESH UpdateType = "refresh"
	UPDATE_STATUS  UpdateType = "status"
	UPDATE_ATTACH  UpdateType = "attach"
	UPDATE_STATE   UpdateType = "state"
	UPDATE_VERSION UpdateType = "version"
)

// MaxMessageSize caps a single framed message on the socket transport.
const MaxMessageSize = 4 << 20

// TCPHost is the bind host used when the unix socket is unavailable.
const TCPHost = "localhost"

// DefaultPort is the TCP fallback port for the socket server.
// The web server binds DefaultWebPort on the same host.
const (
	DefaultPort    = 4269
	DefaultWebPort = 4270
)
