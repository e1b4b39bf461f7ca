package domain

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"lci-gateway/pkg/lci"
)

type AlertKind string

const (
	AlertOffline          AlertKind = "offline"
	AlertHvacFailure      AlertKind = "hvac_failure"
	AlertGeneratorChanged AlertKind = "generator_changed"
	AlertSwitchFault      AlertKind = "switch_fault"
	AlertTankLow          AlertKind = "tank_low"
)

type Alert struct {
	Kind    AlertKind
	UID     string
	Label   string
	Message string
}

type AlertConfig struct {
	// TankLow is the level, in percent, below which a tank alerts.
	TankLow int
}

// DetectAlerts compares two polls of the same devices, keyed by UID, and
// reports transitions worth telling someone about. Alerts fire on the edge
// only: a device that stays offline alerts once. Devices missing from prev
// are compared against an empty snapshot. Alerts are ordered by UID.
func DetectAlerts(prev, cur map[string]DeviceSnapshot, cfg AlertConfig) []Alert {
	uids := lo.Keys(cur)
	slices.Sort(uids)

	var alerts []Alert
	for _, uid := range uids {
		alerts = append(alerts, detect(prev[uid], cur[uid], cfg)...)
	}
	return alerts
}

func detect(before, now DeviceSnapshot, cfg AlertConfig) []Alert {
	var alerts []Alert
	add := func(kind AlertKind, format string, args ...any) {
		alerts = append(alerts, Alert{
			Kind:    kind,
			UID:     now.UID,
			Label:   now.Label,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if now.IsOffline() && !before.IsOffline() {
		add(AlertOffline, "%s went offline", now.Label)
	}

	switch now.Type {
	case lci.DeviceTypeHvac:
		status, ok := hvacStatus(now)
		if ok && status.IsFailure() {
			if prevStatus, had := hvacStatus(before); !had || !prevStatus.IsFailure() {
				add(AlertHvacFailure, "%s reports %s", now.Label, status)
			}
		}

	case lci.DeviceTypeGenerator:
		state, ok := generatorState(now)
		prevState, had := generatorState(before)
		if ok && had && state != prevState {
			add(AlertGeneratorChanged, "%s is now %s (was %s)", now.Label, state, prevState)
		}

	case lci.DeviceTypeSwitch:
		fault, _ := now.Bool(KeyFault)
		prevFault, _ := before.Bool(KeyFault)
		if fault && !prevFault {
			add(AlertSwitchFault, "%s reports a fault", now.Label)
		}

	case lci.DeviceTypeTank:
		level, ok := now.Int(KeyLevel)
		if ok && level < cfg.TankLow {
			if prevLevel, had := before.Int(KeyLevel); !had || prevLevel >= cfg.TankLow {
				add(AlertTankLow, "%s is at %d%%", now.Label, level)
			}
		}
	}

	return alerts
}

func hvacStatus(s DeviceSnapshot) (lci.HvacStatus, bool) {
	raw, ok := s.Text(KeyStatus)
	if !ok {
		return 0, false
	}
	status, err := lci.ParseHvacStatus(raw)
	return status, err == nil
}

func generatorState(s DeviceSnapshot) (lci.GeneratorState, bool) {
	raw, ok := s.Text(KeyState)
	if !ok {
		return 0, false
	}
	state, err := lci.ParseGeneratorState(raw)
	return state, err == nil
}
