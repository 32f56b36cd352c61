//go:build windows

package server

// cleanupSocket is a no-op on Windows, where the daemon listens on TCP.
func cleanupSocket() error {
	return nil
}
