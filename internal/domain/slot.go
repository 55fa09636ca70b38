package domain

import "github.com/m04kA/SMC-AvailabilityService/pkg/types"

// Slot is one grid position on one day, governed by exactly one timeframe
type Slot struct {
	Start         types.TimeString `json:"start"`
	End           types.TimeString `json:"end"`
	Timeframe     *Timeframe       `json:"timeframe"`
	AllowedToBook bool             `json:"allowedToBook"`
}

// Kind returns the kind of the governing timeframe
func (s *Slot) Kind() TimeframeKind {
	if s.Timeframe == nil {
		return 0
	}
	return s.Timeframe.Kind
}

// IsLocked returns true if the governing timeframe is locked
func (s *Slot) IsLocked() bool {
	return s.Timeframe != nil && s.Timeframe.Locked
}

// IsBookable returns true if the slot belongs to a bookable timeframe
func (s *Slot) IsBookable() bool {
	return s.Kind() == KindBookable
}
