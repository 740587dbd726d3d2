package client

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"

	"github.com/hmidani-abdelilah/battery-monitoring/pkg/config"
	"github.com/hmidani-abdelilah/battery-monitoring/pkg/power"
)

func (c *Client) GetStatus() (*power.Snapshot, error) {
	ret, err := c.Get("/status")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get monitor status")
	}

	var snap power.Snapshot
	if err := json.Unmarshal([]byte(ret), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal monitor status: %w", err)
	}
	return &snap, nil
}

func (c *Client) GetBatteries() ([]power.Reading, error) {
	ret, err := c.Get("/batteries")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get batteries")
	}

	var readings []power.Reading
	if err := json.Unmarshal([]byte(ret), &readings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batteries: %w", err)
	}
	return readings, nil
}

func (c *Client) GetPlugged() (bool, error) {
	ret, err := c.Get("/plugged")
	if err != nil {
		return false, pkgerrors.Wrapf(err, "failed to check if you are plugged in")
	}
	return parseBoolResponse(ret)
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &conf, nil
}

func (c *Client) GetBatteryInfo() ([]*battery.Battery, error) {
	ret, err := c.Get("/battery-info")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get battery info")
	}

	var bats []*battery.Battery
	if err := json.Unmarshal([]byte(ret), &bats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal battery info: %w", err)
	}
	return bats, nil
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get daemon version")
	}
	return strings.Trim(strings.TrimSpace(ret), `"`), nil
}

// ResetLatches re-arms every notification latch. The daemon responds
// with a human-readable confirmation.
func (c *Client) ResetLatches() (string, error) {
	return c.Put("/latches/reset", "")
}

func parseBoolResponse(ret string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(ret))
	if err != nil {
		return false, pkgerrors.Wrapf(err, "failed to unmarshal response %q", ret)
	}
	return b, nil
}
