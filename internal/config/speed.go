package config

import "fmt"

// SpeedPreset names an animation speed for the editor's search.
type SpeedPreset string

const (
	SpeedInstant SpeedPreset = "instant"
	SpeedFast    SpeedPreset = "fast"
	SpeedNormal  SpeedPreset = "normal"
	SpeedSlow    SpeedPreset = "slow"
)

// speedOrder lists presets from slowest to fastest.
var speedOrder = []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast, SpeedInstant}

// SpeedPresets returns all presets, slowest first.
func SpeedPresets() []SpeedPreset {
	return append([]SpeedPreset(nil), speedOrder...)
}

// ParseSpeedPreset validates a preset name.
func ParseSpeedPreset(name string) (SpeedPreset, error) {
	for _, p := range speedOrder {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown speed preset %q (want slow, normal, fast or instant)", name)
}

// StepsPerTick returns the search expansions per editor tick.
// Zero means the whole search runs in a single tick.
func (p SpeedPreset) StepsPerTick() int {
	switch p {
	case SpeedSlow:
		return 1
	case SpeedNormal:
		return 4
	case SpeedFast:
		return 16
	default:
		return 0
	}
}

// Faster returns the next faster preset, or p when already instant.
func (p SpeedPreset) Faster() SpeedPreset {
	return p.shift(1)
}

// Slower returns the next slower preset, or p when already slow.
func (p SpeedPreset) Slower() SpeedPreset {
	return p.shift(-1)
}

func (p SpeedPreset) shift(d int) SpeedPreset {
	for i, q := range speedOrder {
		if q == p {
			j := i + d
			if j < 0 || j >= len(speedOrder) {
				return p
			}
			return speedOrder[j]
		}
	}
	return SpeedNormal
}
