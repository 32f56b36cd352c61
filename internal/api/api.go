// Package api wires the daemon's schedule to the socket server's method
// handlers.
package api

import (
	"log"

	"github.com/minaret/minaret/common"
	"github.com/minaret/minaret/internal/server"
	"github.com/minaret/minaret/pkg/azanlib"
)

type Api struct {
	log       *log.Logger
	sched     *azanlib.Schedule
	version   string
	commit    string
	buildType string
}

func NewApi(l *log.Logger, sched *azanlib.Schedule, version, commit, buildType string) (*Api, error) {
	return &Api{
		log:       l,
		sched:     sched,
		version:   version,
		commit:    commit,
		buildType: buildType,
	}, nil
}

func (s *Api) RegisterHandlers(server *server.Server) {
	server.RegisterHandler(common.UPDATE_TRIGGER, s.triggerHandler)
	server.RegisterHandler(common.UPDATE_STOP, s.stopHandler)
	server.RegisterHandler(common.UPDATE_REFRESH, s.refreshHandler)
	server.RegisterHandler(common.UPDATE_STATUS, s.statusHandler)
	server.RegisterHandler(common.UPDATE_ATTACH, s.attachHandler)
	server.RegisterHandler(common.UPDATE_VERSION, s.versionHandler)
}

func (s *Api) Close() {
	s.sched.Close()
}
