// Package common provides shared types and constants used across the minaret
// client-server communication layer.
package common

// Environment variable names for configuration.
const (
	// SocketPathEnv is the environment variable for custom socket path.
	SocketPathEnv = "MINARET_SOCKET_PATH"

	// TCPPortEnv is the environment variable for custom TCP port.
	TCPPortEnv = "MINARET_TCP_PORT"

	// ForceTCPEnv is the environment variable to force TCP connections.
	ForceTCPEnv = "MINARET_FORCE_TCP"

	// ConfigPathEnv is the environment variable for the daemon config file.
	ConfigPathEnv = "MINARET_CONFIG"

	// DebugEnv is the environment variable to enable debug logging.
	DebugEnv = "MINARET_DEBUG"
)
