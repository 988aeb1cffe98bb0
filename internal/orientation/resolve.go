package orientation

// Resolve returns the orientation the detection engine must be told the
// image has. requested is only consulted when ok is true, mirroring a
// comma-ok lookup in the caller's argument map.
//
// Without a requested output the sensor orientation is used directly, except
// that Left and Right are swapped: the engine's upright axis is defined
// opposite to how frame sources report lateral rotation. With a requested
// output the result is derived from the residual rotation between the
// sensor angle and the target angle and replaces the base mapping.
func Resolve(sensor Orientation, requested string, ok bool) Orientation {
	if !ok {
		return Base(sensor)
	}
	return FromDelta(Delta(sensor, ParseOutput(requested)))
}

// Base applies the Left/Right swap. All other orientations, including the
// mirrored variants, pass through unchanged.
func Base(sensor Orientation) Orientation {
	switch sensor {
	case Left:
		return Right
	case Right:
		return Left
	default:
		return sensor
	}
}

// Delta returns the clockwise rotation in [0, 360) from the sensor angle to
// the target angle of out.
func Delta(sensor Orientation, out Output) int {
	return ((out.Angle()-Angle(sensor))%360 + 360) % 360
}

// FromDelta maps a residual rotation back to an orientation.
func FromDelta(delta int) Orientation {
	switch delta {
	case 0:
		return Up
	case 90:
		return Right
	case 180:
		return Down
	default:
		// 270 has no branch of its own and shares the catch-all with invalid
		// deltas; both resolve to Left. Keep it that way unless callers
		// confirm 270 should map differently.
		return Left
	}
}
