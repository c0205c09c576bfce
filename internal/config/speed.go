package config

import (
	"fmt"
	"strings"
	"time"
)

// Speed is a named tick interval.
type Speed string

const (
	SpeedSlow   Speed = "slow"
	SpeedNormal Speed = "normal"
	SpeedFast   Speed = "fast"
)

// Speeds lists the tiers from slowest to fastest.
func Speeds() []Speed {
	return []Speed{SpeedSlow, SpeedNormal, SpeedFast}
}

// ParseSpeed parses a tier name, case-insensitively. An empty name is normal.
func ParseSpeed(name string) (Speed, error) {
	s := Speed(strings.ToLower(strings.TrimSpace(name)))
	if s == "" {
		return SpeedNormal, nil
	}
	switch s {
	case SpeedSlow, SpeedNormal, SpeedFast:
		return s, nil
	}
	return SpeedNormal, fmt.Errorf("%w %q (want slow, normal or fast)", ErrUnknownSpeed, name)
}

// Interval returns the time between ticks for the tier.
func (s Speed) Interval() time.Duration {
	switch s {
	case SpeedSlow:
		return 300 * time.Millisecond
	case SpeedFast:
		return 75 * time.Millisecond
	default:
		return 150 * time.Millisecond
	}
}

// Description returns a short label for menus.
func (s Speed) Description() string {
	switch s {
	case SpeedSlow:
		return "Relaxed pace, 300ms per move"
	case SpeedFast:
		return "Quick reflexes, 75ms per move"
	default:
		return "Classic pace, 150ms per move"
	}
}

// SpeedForInterval returns the tier closest to d.
func SpeedForInterval(d time.Duration) Speed {
	switch {
	case d >= 225*time.Millisecond:
		return SpeedSlow
	case d <= 110*time.Millisecond:
		return SpeedFast
	default:
		return SpeedNormal
	}
}
