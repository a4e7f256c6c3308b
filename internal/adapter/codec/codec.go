package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/kovidgoyal/imaging"
	"github.com/kovidgoyal/imaging/prism/meta"
	"github.com/rwcarlsen/goexif/exif"

	"github.com/omegaatt36/ultraimage/internal/domain"
)

// ImageCodec implements port.Codec on top of kovidgoyal/imaging.
//
// Animated GIF, APNG and animated WebP decode to one frame per animation
// step, coalesced so every frame is a full picture. TIFF yields its first
// page. JPEG files carrying an MPF segment are reported as "mpo".
//
// Pixels are returned as stored; the EXIF orientation is reported on each
// frame and applied by the caller.
type ImageCodec struct{}

var errNoImage = errors.New("unrecognised image format")

func (c *ImageCodec) Decode(data []byte) (domain.Container, error) {
	img, _, err := imaging.DecodeAll(bytes.NewReader(data),
		imaging.AutoOrientation(false),
		imaging.Backends(imaging.GO_IMAGE),
	)
	if err != nil {
		return domain.Container{}, fmt.Errorf("%w: %s", domain.ErrDecode, err)
	}
	if img == nil || len(img.Frames) == 0 {
		return domain.Container{}, fmt.Errorf("%w: %s", domain.ErrDecode, errNoImage)
	}

	orientation := readOrientation(img.Metadata)
	format := formatName(img.Metadata, data)
	if format == "jpeg" && isMPO(data) {
		format = "mpo"
	}

	img.Coalesce()
	frames := make([]domain.Frame, 0, len(img.Frames))
	for _, f := range img.Frames {
		frames = append(frames, domain.Frame{Image: f.Image, Orientation: orientation})
	}
	return domain.Container{Format: format, Frames: frames}, nil
}

func (c *ImageCodec) Encode(img image.Image, format domain.Format, opts domain.EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case domain.FormatPNG:
		err = imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(pngLevel(opts.PNGCompression)))
	case domain.FormatJPG:
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality(opts.JPEGQuality)))
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pngLevel(c domain.PNGCompression) png.CompressionLevel {
	switch c {
	case domain.PNGDefaultCompression:
		return png.DefaultCompression
	case domain.PNGBestSpeed:
		return png.BestSpeed
	case domain.PNGBestCompression:
		return png.BestCompression
	default:
		return png.NoCompression
	}
}

func jpegQuality(q int) int {
	if q <= 0 || q > 100 {
		return 100
	}
	return q
}

// formatName returns the lower-case container name, falling back to the
// registered stdlib decoders when the metadata does not say.
func formatName(md *meta.Data, data []byte) string {
	if md != nil && md.Format != imaging.UNKNOWN {
		return strings.ToLower(md.Format.String())
	}
	_, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	return name
}

// readOrientation returns the EXIF orientation found in any container the
// metadata reader understands (JPEG, PNG eXIf, WebP, TIFF). Anything missing
// or unreadable counts as normal.
func readOrientation(md *meta.Data) domain.Orientation {
	if md == nil {
		return domain.OrientationNormal
	}
	x, err := md.Exif()
	if err != nil || x == nil {
		return domain.OrientationNormal
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return domain.OrientationNormal
	}
	v, err := tag.Int(0)
	if err != nil || v < int(domain.OrientationNormal) || v > int(domain.OrientationRotate90) {
		return domain.OrientationNormal
	}
	return domain.Orientation(v)
}

// isMPO reports whether a JPEG stream has an APP2 "MPF" segment before the
// image data.
func isMPO(data []byte) bool {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return false
	}
	i := 2
	for i+4 <= len(data) {
		if data[i] != 0xFF {
			return false
		}
		marker := data[i+1]
		if marker == 0xDA || marker == 0xD9 {
			return false
		}
		n := int(binary.BigEndian.Uint16(data[i+2:]))
		if n < 2 || i+2+n > len(data) {
			return false
		}
		payload := data[i+4 : i+2+n]
		if marker == 0xE2 && bytes.HasPrefix(payload, []byte("MPF\x00")) {
			return true
		}
		i += 2 + n
	}
	return false
}
