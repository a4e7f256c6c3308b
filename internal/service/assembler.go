package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/omegaatt36/ultraimage/internal/domain"
	"github.com/omegaatt36/ultraimage/internal/port"
)

// AssemblerOption configures the AssemblerService.
type AssemblerOption func(*AssemblerService)

// WithAssemblerLogger sets the logger used to report dropped frames.
func WithAssemblerLogger(logger *slog.Logger) AssemblerOption {
	return func(s *AssemblerService) {
		s.logger = logger
	}
}

// AssemblerService decodes a file into a normalized batch of frames.
type AssemblerService struct {
	fs     port.FileSystem
	codec  port.Codec
	logger *slog.Logger
}

func NewAssemblerService(fs port.FileSystem, codec port.Codec, opts ...AssemblerOption) *AssemblerService {
	s := &AssemblerService{
		fs:     fs,
		codec:  codec,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Assemble decodes path and returns its frames as one RGB batch. The first
// frame fixes the batch size; later frames of another size are dropped.
func (s *AssemblerService) Assemble(path string) (domain.Batch, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return domain.Batch{}, fmt.Errorf("%w: %s", domain.ErrDecode, err)
	}

	c, err := s.codec.Decode(data)
	if err != nil {
		if errors.Is(err, domain.ErrDecode) {
			return domain.Batch{}, err
		}
		return domain.Batch{}, fmt.Errorf("%w: %s", domain.ErrDecode, err)
	}

	var batch domain.Batch
	for i, f := range c.Frames {
		img := domain.ToRGB(domain.RescaleWide(domain.Orient(f).Image))

		if batch.Frames == 0 {
			r := img.Bounds()
			batch = domain.NewBatch(r.Dx(), r.Dy(), domain.RGBChannels)
		} else if !batch.Fits(img) {
			s.logger.Debug("frame size mismatch, skipped",
				"path", path, "frame", i,
				"width", img.Bounds().Dx(), "height", img.Bounds().Dy(),
				"want_width", batch.Width, "want_height", batch.Height)
			continue
		}

		if err := batch.Append(img); err != nil {
			return domain.Batch{}, err
		}
		if c.SingleFrame() {
			break
		}
	}

	if batch.Frames == 0 {
		return domain.Batch{}, fmt.Errorf("%w: %s", domain.ErrEmptyBatch, path)
	}
	return batch, nil
}
