package domain

import (
	"image"
	"slices"

	"github.com/disintegration/imaging"
)

// Orientation is the EXIF orientation tag (1-8).
type Orientation int

const (
	OrientationNormal Orientation = 1 + iota
	OrientationFlipH
	OrientationRotate180
	OrientationFlipV
	OrientationTranspose
	OrientationRotate270
	OrientationTransverse
	OrientationRotate90
)

// Frame is one decoded picture of a file together with its stored orientation.
type Frame struct {
	Image       image.Image
	Orientation Orientation
}

// Container is the decoded content of one file.
type Container struct {
	Format string
	Frames []Frame
}

// SingleFrameFormats carry extra pictures (previews, stereo pairs) that are
// not an animation; only the first frame of these is used.
var SingleFrameFormats = []string{"mpo"}

// SingleFrame reports whether only the first frame of c should be used.
func (c Container) SingleFrame() bool {
	return slices.Contains(SingleFrameFormats, c.Format)
}

// Orient rotates and flips the frame into display orientation and resets the
// tag, so applying it twice is the same as applying it once.
//
// Orientation names follow the EXIF transform needed to undo them: tag 6 means
// the picture must be turned 90° clockwise, which imaging calls Rotate270.
func Orient(f Frame) Frame {
	var img image.Image
	switch f.Orientation {
	case OrientationFlipH:
		img = imaging.FlipH(f.Image)
	case OrientationRotate180:
		img = imaging.Rotate180(f.Image)
	case OrientationFlipV:
		img = imaging.FlipV(f.Image)
	case OrientationTranspose:
		img = imaging.Transpose(f.Image)
	case OrientationRotate270:
		img = imaging.Rotate270(f.Image)
	case OrientationTransverse:
		img = imaging.Transverse(f.Image)
	case OrientationRotate90:
		img = imaging.Rotate90(f.Image)
	default:
		img = f.Image
	}
	return Frame{Image: img, Orientation: OrientationNormal}
}

// RescaleWide maps single-channel 16-bit samples linearly onto 0-255.
// Other images are returned unchanged.
func RescaleWide(img image.Image) image.Image {
	src, ok := img.(*image.Gray16)
	if !ok {
		return img
	}
	b := src.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := uint32(src.Gray16At(x, y).Y)
			dst.Pix[dst.PixOffset(x, y)] = uint8((v*255 + 32767) / 65535)
		}
	}
	return dst
}

// ToRGB converts img to an opaque NRGBA image anchored at the origin.
// Alpha is discarded, not composited, so colour values are kept as stored.
func ToRGB(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}
