// Package orientation reconciles the orientation reported by a camera sensor
// with the orientation a caller wants the detection to run in.
package orientation

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Orientation describes how the pixels of a frame are rotated (and possibly
// mirrored) relative to the upright image.
type Orientation int

const (
	Up Orientation = iota
	Down
	Left
	Right
	UpMirrored
	DownMirrored
	LeftMirrored
	RightMirrored
)

var orientationNames = [...]string{
	Up:            "up",
	Down:          "down",
	Left:          "left",
	Right:         "right",
	UpMirrored:    "up-mirrored",
	DownMirrored:  "down-mirrored",
	LeftMirrored:  "left-mirrored",
	RightMirrored: "right-mirrored",
}

// All lists every orientation in declaration order.
var All = []Orientation{Up, Down, Left, Right, UpMirrored, DownMirrored, LeftMirrored, RightMirrored}

// String returns the lower-case, dash separated name of o.
func (o Orientation) String() string {
	if o < 0 || int(o) >= len(orientationNames) {
		return fmt.Sprintf("orientation(%d)", int(o))
	}
	return orientationNames[o]
}

// Valid reports whether o is one of the declared orientations.
func (o Orientation) Valid() bool {
	return o >= Up && o <= RightMirrored
}

// Mirrored reports whether o carries a horizontal flip.
func (o Orientation) Mirrored() bool {
	return o >= UpMirrored && o <= RightMirrored
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("invalid orientation %d", int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Parse maps a sensor orientation name to an Orientation. Matching ignores
// case and accepts "-", "_" or no separator for the mirrored variants
// ("left-mirrored", "LEFT_MIRRORED", "leftMirrored").
func Parse(s string) (Orientation, error) {
	key := normalizeName(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "").Replace(key)
	for i, name := range orientationNames {
		if strings.ReplaceAll(name, "-", "") == key {
			return Orientation(i), nil
		}
	}
	return Up, fmt.Errorf("unknown orientation %q", s)
}

// Angle returns the clockwise angle of o in degrees. Mirrored variants share
// the angle of their non-mirrored counterpart.
func Angle(o Orientation) int {
	switch o {
	case Up, UpMirrored:
		return 0
	case Right, RightMirrored:
		return 90
	case Down, DownMirrored:
		return 180
	case Left, LeftMirrored:
		return 270
	default:
		return 0
	}
}

// Output is the orientation a caller asks the results to be expressed in.
type Output int

const (
	Portrait Output = iota
	LandscapeLeft
	PortraitUpsideDown
	LandscapeRight
)

var outputNames = [...]string{
	Portrait:           "portrait",
	LandscapeLeft:      "landscape-left",
	PortraitUpsideDown: "portrait-upside-down",
	LandscapeRight:     "landscape-right",
}

// String returns the canonical name of the output orientation.
func (out Output) String() string {
	if out < 0 || int(out) >= len(outputNames) {
		return fmt.Sprintf("output(%d)", int(out))
	}
	return outputNames[out]
}

// Angle returns the target rotation of out in degrees.
func (out Output) Angle() int {
	switch out {
	case LandscapeLeft:
		return 90
	case PortraitUpsideDown:
		return 180
	case LandscapeRight:
		return 270
	default:
		return 0
	}
}

// ParseOutput maps a requested output orientation name to an Output, ignoring
// case. Unrecognized names yield Portrait.
func ParseOutput(s string) Output {
	key := normalizeName(s)
	for i, name := range outputNames {
		if name == key {
			return Output(i)
		}
	}
	return Portrait
}

// KnownOutput reports whether s names one of the output orientations.
func KnownOutput(s string) bool {
	key := normalizeName(s)
	for _, name := range outputNames {
		if name == key {
			return true
		}
	}
	return false
}

func normalizeName(s string) string {
	return cases.Fold().String(s)
}
