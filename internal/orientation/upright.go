package orientation

import (
	"image"

	"github.com/disintegration/imaging"
)

// Upright returns img transformed so that pixels captured in orientation o
// are displayed upright. The transforms follow the EXIF orientation
// conventions: Right needs a clockwise quarter turn, Left a counter-clockwise
// one, and the mirrored variants add a horizontal flip.
func Upright(img image.Image, o Orientation) image.Image {
	if img == nil {
		return nil
	}
	switch o {
	case Down:
		return imaging.Rotate180(img)
	case Left:
		return imaging.Rotate90(img)
	case Right:
		return imaging.Rotate270(img)
	case UpMirrored:
		return imaging.FlipH(img)
	case DownMirrored:
		return imaging.FlipV(img)
	case LeftMirrored:
		return imaging.Transpose(img)
	case RightMirrored:
		return imaging.Transverse(img)
	default:
		return img
	}
}
