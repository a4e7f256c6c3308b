package domain

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatch_Append(t *testing.T) {
	t.Run("normalizes to unit range", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 51, A: 255})

		b := NewBatch(1, 1, RGBChannels)
		require.NoError(t, b.Append(img))

		assert.Equal(t, [4]int{1, 1, 1, 3}, b.Shape())
		assert.InDeltaSlice(t, []float32{1, 0, 0.2}, b.Data, 1e-6)
	})

	t.Run("frame-major layout", func(t *testing.T) {
		first := image.NewGray(image.Rect(0, 0, 2, 1))
		second := image.NewGray(image.Rect(0, 0, 2, 1))
		second.SetGray(1, 0, color.Gray{Y: 255})

		b, err := BatchFromImages(RGBChannels, first, second)
		require.NoError(t, err)
		require.Equal(t, 2, b.Len())
		require.Len(t, b.Data, 2*1*2*3)
		// frame 1, pixel (1,0), red channel
		assert.Equal(t, float32(1), b.Data[1*6+1*3])
		assert.Equal(t, float32(0), b.Data[1*3])
	})

	t.Run("rejects mismatched size", func(t *testing.T) {
		b := NewBatch(2, 2, RGBChannels)
		err := b.Append(image.NewGray(image.Rect(0, 0, 3, 3)))
		assert.Error(t, err)
		assert.Equal(t, 0, b.Len())
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := BatchFromImages(RGBChannels)
		assert.True(t, errors.Is(err, ErrEmptyBatch))
	})
}

func TestBatch_Image(t *testing.T) {
	t.Run("round trips 8-bit samples", func(t *testing.T) {
		src := image.NewNRGBA(image.Rect(0, 0, 16, 16))
		for i := range src.Pix {
			src.Pix[i] = uint8(i)
		}
		for i := 3; i < len(src.Pix); i += 4 {
			src.Pix[i] = 0xff
		}
		b, err := BatchFromImages(RGBChannels, src)
		require.NoError(t, err)
		assert.Equal(t, src.Pix, b.Image(0).Pix)
	})

	t.Run("clamps out-of-range samples", func(t *testing.T) {
		b := Batch{Frames: 1, Width: 2, Height: 1, Channels: RGBChannels,
			Data: []float32{-0.5, 1.5, float32(math.NaN()), 0.5, 2, -1}}
		img := b.Image(0)
		assert.Equal(t, color.NRGBA{R: 0, G: 255, B: 0, A: 255}, img.NRGBAAt(0, 0))
		assert.Equal(t, color.NRGBA{R: 128, G: 255, B: 0, A: 255}, img.NRGBAAt(1, 0))
	})

	t.Run("keeps alpha of four-channel batches", func(t *testing.T) {
		b := Batch{Frames: 1, Width: 1, Height: 1, Channels: RGBAChannels,
			Data: []float32{1, 1, 1, 0}}
		assert.Equal(t, uint8(0), b.Image(0).NRGBAAt(0, 0).A)
	})

	t.Run("selects the requested frame", func(t *testing.T) {
		b := Batch{Frames: 2, Width: 1, Height: 1, Channels: RGBChannels,
			Data: []float32{0, 0, 0, 1, 1, 1}}
		assert.Equal(t, uint8(255), b.Image(1).NRGBAAt(0, 0).R)
	})
}

func TestBatch_Validate(t *testing.T) {
	assert.True(t, errors.Is(Batch{}.Validate(), ErrEmptyBatch))
	assert.Error(t, Batch{Frames: 1, Width: 1, Height: 1, Channels: 2, Data: []float32{0, 0}}.Validate())
	assert.Error(t, Batch{Frames: 1, Width: 2, Height: 1, Channels: 3, Data: []float32{0, 0, 0}}.Validate())
	assert.NoError(t, Batch{Frames: 1, Width: 1, Height: 1, Channels: 3, Data: []float32{0, 0, 0}}.Validate())
}
