package azancli

import (
	"encoding/json"

	"github.com/minaret/minaret/common"
)

func invoke[T any](c *Client, method common.UpdateType, message any) (*T, error) {
	resp, err := c.invoke(method, message)
	if err != nil {
		return nil, err
	}
	var d T
	return &d, json.Unmarshal(resp, &d)
}

// Trigger plays the named prayer now, subject to the daemon's
// once-per-day rule. The name "test" always plays.
func (c *Client) Trigger(prayer string) (*common.TriggerResponse, error) {
	return invoke[common.TriggerResponse](c, common.UPDATE_TRIGGER, &common.TriggerParams{
		Prayer: prayer,
	})
}

// Stop halts active playback. Stopping an idle daemon is not an error.
func (c *Client) Stop() (*common.StopResponse, error) {
	return invoke[common.StopResponse](c, common.UPDATE_STOP, nil)
}

// Refresh refetches today's timetable and re-arms the wake-up timer.
func (c *Client) Refresh() (*common.RefreshResponse, error) {
	return invoke[common.RefreshResponse](c, common.UPDATE_REFRESH, nil)
}

// Status returns the daemon's playback and schedule snapshot.
func (c *Client) Status() (*common.StatusResponse, error) {
	return invoke[common.StatusResponse](c, common.UPDATE_STATUS, nil)
}

// Version returns the daemon's build information.
func (c *Client) Version() (*common.VersionResponse, error) {
	return invoke[common.VersionResponse](c, common.UPDATE_VERSION, nil)
}

// Attach subscribes this connection to playback state broadcasts and
// returns the current status. Follow with AddHandler and Listen.
func (c *Client) Attach() (*common.StatusResponse, error) {
	return invoke[common.StatusResponse](c, common.UPDATE_ATTACH, nil)
}
