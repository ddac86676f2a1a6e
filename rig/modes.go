package rig

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrUnknownMode = errors.New("rig: unknown mode")

// PositionMode picks where the target position comes from.
type PositionMode uint8

const (
	PositionFirstPerson PositionMode = iota
	PositionThirdPerson
	PositionStation
	PositionCustom
)

// RotationMode picks where the target rotation comes from.
type RotationMode uint8

const (
	RotationFirstPerson RotationMode = iota
	RotationThirdPerson
	RotationStation
	RotationGaze
	RotationCustom
)

// HomingMode is the policy that moves the current pose toward the target.
// Position and rotation each carry their own.
type HomingMode uint8

const (
	HomingDirect HomingMode = iota
	HomingLerp
	HomingSlerp
	HomingStop
)

// ProbePolicy controls how frustum probe corrections combine.
type ProbePolicy uint8

const (
	// ProbeCumulative casts each probe from the position left by the previous one.
	ProbeCumulative ProbePolicy = iota
	// ProbeIndependent casts every probe from the same point and sums the pushes.
	ProbeIndependent
)

var (
	positionModeNames = []string{"first_person", "third_person", "station", "custom"}
	rotationModeNames = []string{"first_person", "third_person", "station", "gaze", "custom"}
	homingModeNames   = []string{"direct", "lerp", "slerp", "stop"}
	probePolicyNames  = []string{"cumulative", "independent"}
)

func modeName(names []string, v uint8) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("unknown(%d)", v)
}

func parseMode(kind string, names []string, s string) (uint8, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	for i, n := range names {
		if n == s || strings.ReplaceAll(n, "_", "") == s {
			return uint8(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s %q", ErrUnknownMode, kind, s)
}

func decodeMode(kind string, names []string, value *yaml.Node) (uint8, error) {
	var s string
	if err := value.Decode(&s); err != nil {
		return 0, fmt.Errorf("rig: decode %s: %w", kind, err)
	}
	return parseMode(kind, names, s)
}

func (m PositionMode) String() string { return modeName(positionModeNames, uint8(m)) }
func (m RotationMode) String() string { return modeName(rotationModeNames, uint8(m)) }
func (m HomingMode) String() string   { return modeName(homingModeNames, uint8(m)) }
func (p ProbePolicy) String() string  { return modeName(probePolicyNames, uint8(p)) }

func ParsePositionMode(s string) (PositionMode, error) {
	v, err := parseMode("position mode", positionModeNames, s)
	return PositionMode(v), err
}

func ParseRotationMode(s string) (RotationMode, error) {
	v, err := parseMode("rotation mode", rotationModeNames, s)
	return RotationMode(v), err
}

func ParseHomingMode(s string) (HomingMode, error) {
	v, err := parseMode("homing mode", homingModeNames, s)
	return HomingMode(v), err
}

func ParseProbePolicy(s string) (ProbePolicy, error) {
	v, err := parseMode("probe policy", probePolicyNames, s)
	return ProbePolicy(v), err
}

// Next cycles through the position modes.
func (m PositionMode) Next() PositionMode {
	return PositionMode((int(m) + 1) % len(positionModeNames))
}

// Next cycles through the rotation modes.
func (m RotationMode) Next() RotationMode {
	return RotationMode((int(m) + 1) % len(rotationModeNames))
}

// Next cycles through the homing modes.
func (m HomingMode) Next() HomingMode {
	return HomingMode((int(m) + 1) % len(homingModeNames))
}

func (m PositionMode) MarshalYAML() (any, error) { return m.String(), nil }
func (m RotationMode) MarshalYAML() (any, error) { return m.String(), nil }
func (m HomingMode) MarshalYAML() (any, error)   { return m.String(), nil }
func (p ProbePolicy) MarshalYAML() (any, error)  { return p.String(), nil }

func (m *PositionMode) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeMode("position mode", positionModeNames, value)
	if err != nil {
		return err
	}
	*m = PositionMode(v)
	return nil
}

func (m *RotationMode) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeMode("rotation mode", rotationModeNames, value)
	if err != nil {
		return err
	}
	*m = RotationMode(v)
	return nil
}

func (m *HomingMode) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeMode("homing mode", homingModeNames, value)
	if err != nil {
		return err
	}
	*m = HomingMode(v)
	return nil
}

func (p *ProbePolicy) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeMode("probe policy", probePolicyNames, value)
	if err != nil {
		return err
	}
	*p = ProbePolicy(v)
	return nil
}
