//go:build windows

package server

import (
	"fmt"
	"net"

	"github.com/minaret/minaret/common"
)

// createListener creates a TCP listener on Windows, where Unix sockets
// are not available.
func (s *Server) createListener() (net.Listener, error) {
	l, err := net.Listen("tcp", fmt.Sprintf("%s:%d", common.TCPHost, s.port))
	if err != nil {
		return nil, fmt.Errorf("error listening: %s", err.Error())
	}
	return l, nil
}
