package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an output image format.
type Format string

const (
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
)

// ParseFormat maps a user supplied format name to a Format.
// "jpeg" is accepted as an alias of "jpg".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPG, nil
	default:
		return "", fmt.Errorf("%w: %q (want png or jpg)", ErrUnsupportedFormat, s)
	}
}

// Valid reports whether f is one of the recognized output formats.
func (f Format) Valid() bool {
	return f == FormatPNG || f == FormatJPG
}

// Extension returns the file extension without the leading dot.
func (f Format) Extension() string { return string(f) }

// SupportsAlpha reports whether the format can store transparency.
func (f Format) SupportsAlpha() bool { return f == FormatPNG }

// PNGCompression selects the zlib effort used for PNG output.
type PNGCompression int

const (
	PNGNoCompression PNGCompression = iota
	PNGDefaultCompression
	PNGBestSpeed
	PNGBestCompression
)

// EncodeOptions are per-call encoder settings.
type EncodeOptions struct {
	JPEGQuality    int
	PNGCompression PNGCompression
}

// DefaultEncodeOptions keeps every sample: JPEG at quality 100 and
// uncompressed PNG.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		JPEGQuality:    100,
		PNGCompression: PNGNoCompression,
	}
}

// OutputPath returns folder/base.ext for format f.
func OutputPath(folder, base string, f Format) string {
	return filepath.Join(folder, base+"."+f.Extension())
}
