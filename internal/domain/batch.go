package domain

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

const (
	RGBChannels  = 3
	RGBAChannels = 4
)

// Batch holds equally sized frames as float32 samples in [0, 1], laid out
// frame-major: Data[((n*Height+y)*Width+x)*Channels+c].
type Batch struct {
	Frames   int
	Height   int
	Width    int
	Channels int
	Data     []float32
}

// NewBatch returns an empty batch for frames of the given size.
func NewBatch(width, height, channels int) Batch {
	return Batch{Width: width, Height: height, Channels: channels}
}

// BatchFromImages builds a batch from images of identical size. channels
// must be RGBChannels or RGBAChannels.
func BatchFromImages(channels int, imgs ...image.Image) (Batch, error) {
	if len(imgs) == 0 {
		return Batch{}, ErrEmptyBatch
	}
	b0 := imgs[0].Bounds()
	batch := NewBatch(b0.Dx(), b0.Dy(), channels)
	for _, img := range imgs {
		if err := batch.Append(img); err != nil {
			return Batch{}, err
		}
	}
	return batch, nil
}

// Len returns the number of frames.
func (b Batch) Len() int { return b.Frames }

// Shape returns [frames, height, width, channels].
func (b Batch) Shape() [4]int {
	return [4]int{b.Frames, b.Height, b.Width, b.Channels}
}

// Fits reports whether img has the batch's width and height.
func (b Batch) Fits(img image.Image) bool {
	r := img.Bounds()
	return r.Dx() == b.Width && r.Dy() == b.Height
}

// Append converts img to float samples and adds it as the last frame.
func (b *Batch) Append(img image.Image) error {
	if b.Channels != RGBChannels && b.Channels != RGBAChannels {
		return fmt.Errorf("unsupported channel count %d", b.Channels)
	}
	if !b.Fits(img) {
		r := img.Bounds()
		return fmt.Errorf("frame is %dx%d, batch is %dx%d", r.Dx(), r.Dy(), b.Width, b.Height)
	}
	r := img.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := nrgbaAt(img, x, y)
			b.Data = append(b.Data, float32(c[0])/255, float32(c[1])/255, float32(c[2])/255)
			if b.Channels == RGBAChannels {
				b.Data = append(b.Data, float32(c[3])/255)
			}
		}
	}
	b.Frames++
	return nil
}

// Image converts frame i back to 8-bit samples, clamping to [0, 255].
// Three-channel batches come back opaque.
func (b Batch) Image(i int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	stride := b.Width * b.Height * b.Channels
	src := b.Data[i*stride : (i+1)*stride]
	for p := 0; p < b.Width*b.Height; p++ {
		s := src[p*b.Channels:]
		d := dst.Pix[p*4 : p*4+4]
		d[0], d[1], d[2] = toByte(s[0]), toByte(s[1]), toByte(s[2])
		d[3] = 0xff
		if b.Channels == RGBAChannels {
			d[3] = toByte(s[3])
		}
	}
	return dst
}

func nrgbaAt(img image.Image, x, y int) [4]uint8 {
	if n, ok := img.(*image.NRGBA); ok {
		o := n.PixOffset(x, y)
		return [4]uint8{n.Pix[o], n.Pix[o+1], n.Pix[o+2], n.Pix[o+3]}
	}
	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	return [4]uint8{c.R, c.G, c.B, c.A}
}

func toByte(v float32) uint8 {
	if math.IsNaN(float64(v)) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(math.Round(float64(v) * 255))
}

// Validate checks that the batch has frames and that Data matches its shape.
func (b Batch) Validate() error {
	if b.Frames == 0 {
		return ErrEmptyBatch
	}
	if b.Channels != RGBChannels && b.Channels != RGBAChannels {
		return fmt.Errorf("unsupported channel count %d", b.Channels)
	}
	if b.Width <= 0 || b.Height <= 0 || len(b.Data) != b.Frames*b.Height*b.Width*b.Channels {
		return fmt.Errorf("batch data does not match shape %v", b.Shape())
	}
	return nil
}
