package domain

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"png", FormatPNG},
		{"PNG", FormatPNG},
		{"jpg", FormatJPG},
		{"jpeg", FormatJPG},
		{" jpg ", FormatJPG},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "gif", "webp", "bmp"} {
		t.Run("reject "+bad, func(t *testing.T) {
			_, err := ParseFormat(bad)
			assert.True(t, errors.Is(err, ErrUnsupportedFormat))
		})
	}
}

func TestFormat(t *testing.T) {
	assert.True(t, FormatPNG.SupportsAlpha())
	assert.False(t, FormatJPG.SupportsAlpha())
	assert.False(t, Format("gif").Valid())
	assert.Equal(t, filepath.Join("out", "a.jpg"), OutputPath("out", "a", FormatJPG))
}

func TestResolution_SupersededPath(t *testing.T) {
	r := Resolution{Folder: "out", OriginalBaseName: "img_raw", Format: FormatPNG}
	assert.Equal(t, filepath.Join("out", "img_raw.png"), r.SupersededPath())
}

func TestCleanupError(t *testing.T) {
	cause := errors.New("permission denied")
	var err error = &CleanupError{Path: "/x.png", Err: cause}

	assert.True(t, errors.Is(err, ErrWrite))
	assert.True(t, errors.Is(err, cause))

	var ce *CleanupError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "/x.png", ce.Path)
}
