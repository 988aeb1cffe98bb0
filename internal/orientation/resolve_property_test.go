package orientation

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func genSensor() gopter.Gen {
	return gen.IntRange(0, len(All)-1).Map(func(i int) Orientation { return All[i] })
}

func genOutputName() gopter.Gen {
	return gen.OneConstOf("portrait", "landscape-left", "portrait-upside-down", "landscape-right")
}

// TestResolve_Properties checks the delta range and the closed result set for
// every sensor/output combination.
func TestResolve_Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("delta is in [0, 360)", prop.ForAll(
		func(sensor Orientation, name string) bool {
			d := Delta(sensor, ParseOutput(name))
			return d >= 0 && d < 360
		},
		genSensor(),
		genOutputName(),
	))

	properties.Property("resolved orientation is never mirrored", prop.ForAll(
		func(sensor Orientation, name string) bool {
			switch Resolve(sensor, name, true) {
			case Up, Right, Down, Left:
				return true
			default:
				return false
			}
		},
		genSensor(),
		genOutputName(),
	))

	properties.Property("matching ignores case", prop.ForAll(
		func(sensor Orientation, name string, upper bool) bool {
			variant := strings.ToLower(name)
			if upper {
				variant = strings.ToUpper(name)
			}
			return Resolve(sensor, variant, true) == Resolve(sensor, name, true)
		},
		genSensor(),
		genOutputName(),
		gen.Bool(),
	))

	properties.Property("unknown names behave like portrait", prop.ForAll(
		func(sensor Orientation, junk string) bool {
			if KnownOutput(junk) {
				return true
			}
			return Resolve(sensor, junk, true) == Resolve(sensor, "portrait", true)
		},
		genSensor(),
		gen.AlphaString(),
	))

	properties.Property("invalid deltas resolve to left", prop.ForAll(
		func(delta int) bool {
			if delta == 0 || delta == 90 || delta == 180 {
				return true
			}
			return FromDelta(delta) == Left
		},
		gen.IntRange(-720, 720),
	))

	properties.TestingRun(t)
}
