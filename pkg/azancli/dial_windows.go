//go:build windows

package azancli

import "net"

var dialFunc = net.Dial

// dial connects over TCP on Windows, where the daemon has no Unix socket.
func dial() (net.Conn, error) {
	debugLog("Connecting via TCP to %s", tcpAddress())
	return dialFunc("tcp", tcpAddress())
}
