package server

import (
	"strings"

	"github.com/minaret/minaret/common"
	"github.com/minaret/minaret/pkg/azanlib"
)

// EventInfos converts a timetable into its wire representation.
func EventInfos(table *azanlib.TimeTable) []common.EventInfo {
	if table == nil {
		return nil
	}
	infos := make([]common.EventInfo, 0, len(table.Events))
	for _, ev := range table.Events {
		infos = append(infos, common.EventInfo{
			Name:    string(ev.Name),
			Time:    ev.Time,
			Enabled: ev.Enabled,
			Played:  table.IsPlayed(ev.Name),
		})
	}
	return infos
}

// StatusSnapshot assembles the full daemon status from a schedule.
func StatusSnapshot(sched *azanlib.Schedule) *common.StatusResponse {
	st := sched.Status()
	resp := &common.StatusResponse{
		Playing: st.Playing,
		Prayer:  string(st.Prayer),
		Since:   st.Since,
	}
	if at, token, ok := sched.NextWake(); ok {
		if name, found := strings.CutPrefix(token, "play:"); found {
			resp.NextPrayer = name
			resp.NextAt = at
		}
	}
	if table := sched.Table(); table != nil {
		resp.Date = table.Date
		resp.Events = EventInfos(table)
	}
	return resp
}
