package server

import (
	"os"
	"path/filepath"

	"github.com/minaret/minaret/common"
)

func socketPath() string {
	if path := os.Getenv(common.SocketPathEnv); path != "" {
		return path
	}
	return filepath.Join(os.TempDir(), "minaret.sock")
}
