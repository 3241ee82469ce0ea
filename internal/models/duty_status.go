package models

import "fmt"

// DutyStatus is one of the four rows of the log grid. The numeric value is the row index.
type DutyStatus int

const (
	OffDuty DutyStatus = iota
	SleeperBerth
	Driving
	OnDuty
)

// StatusInfo is the presentation entry for a duty status.
type StatusInfo struct {
	Status     DutyStatus `json:"-"`
	Key        string     `json:"key"`
	Label      string     `json:"label"`
	ShortLabel string     `json:"shortLabel"`
	Color      string     `json:"color"`
}

// dutyStatusTable is the only place row order, keys, labels and colors are defined.
var dutyStatusTable = [...]StatusInfo{
	{Status: OffDuty, Key: "offDuty", Label: "Off Duty", ShortLabel: "1", Color: "#16a34a"},
	{Status: SleeperBerth, Key: "sleeperBerth", Label: "Sleeper", ShortLabel: "2", Color: "#4f46e5"},
	{Status: Driving, Key: "driving", Label: "Driving", ShortLabel: "3", Color: "#2563eb"},
	{Status: OnDuty, Key: "onDuty", Label: "On Duty", ShortLabel: "4", Color: "#ea580c"},
}

// StatusCount is the number of duty rows on the grid.
const StatusCount = len(dutyStatusTable)

// DutyStatuses returns the presentation table in row order.
func DutyStatuses() []StatusInfo {
	out := make([]StatusInfo, StatusCount)
	copy(out, dutyStatusTable[:])
	return out
}

// Valid reports whether s is one of the four defined statuses.
func (s DutyStatus) Valid() bool {
	return s >= OffDuty && s <= OnDuty
}

// Info returns the presentation entry. Out-of-range values fall back to OffDuty.
func (s DutyStatus) Info() StatusInfo {
	if !s.Valid() {
		return dutyStatusTable[OffDuty]
	}
	return dutyStatusTable[s]
}

func (s DutyStatus) String() string {
	if !s.Valid() {
		return fmt.Sprintf("DutyStatus(%d)", int(s))
	}
	return dutyStatusTable[s].Key
}

// ParseDutyStatus maps a key such as "sleeperBerth" to its status.
func ParseDutyStatus(key string) (DutyStatus, error) {
	for _, info := range dutyStatusTable {
		if info.Key == key {
			return info.Status, nil
		}
	}
	return OffDuty, fmt.Errorf("unknown duty status %q", key)
}

func (s DutyStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid duty status %d", int(s))
	}
	return []byte(dutyStatusTable[s].Key), nil
}

func (s *DutyStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseDutyStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
