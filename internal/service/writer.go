package service

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/omegaatt36/ultraimage/internal/domain"
	"github.com/omegaatt36/ultraimage/internal/port"
)

// WriterService encodes batches and writes them to resolved paths.
type WriterService struct {
	fs    port.FileSystem
	codec port.Codec
}

func NewWriterService(fs port.FileSystem, codec port.Codec) *WriterService {
	return &WriterService{fs: fs, codec: codec}
}

// Write encodes every frame of the batch in order to the resolved path, so
// with several frames the last one is what stays on disk.
//
// When asked to, it then removes the file named after the original base name.
// A failed removal is returned as *domain.CleanupError alongside a complete
// descriptor; the written file is kept.
func (s *WriterService) Write(req domain.WriteRequest) (domain.OutputDescriptor, error) {
	res := req.Resolution
	if !res.Format.Valid() {
		return domain.OutputDescriptor{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, res.Format)
	}
	if err := req.Batch.Validate(); err != nil {
		if errors.Is(err, domain.ErrEmptyBatch) {
			return domain.OutputDescriptor{}, err
		}
		return domain.OutputDescriptor{}, fmt.Errorf("%w: %s", domain.ErrWrite, err)
	}

	for i := 0; i < req.Batch.Len(); i++ {
		img := req.Batch.Image(i)
		if !res.Format.SupportsAlpha() {
			img = domain.ToRGB(img)
		}
		data, err := s.codec.Encode(img, res.Format, req.Encoding)
		if err != nil {
			return domain.OutputDescriptor{}, fmt.Errorf("%w: encode frame %d: %s", domain.ErrWrite, i, err)
		}
		if err := s.fs.WriteFile(res.Path, data); err != nil {
			return domain.OutputDescriptor{}, fmt.Errorf("%w: %s: %s", domain.ErrWrite, res.Path, err)
		}
	}

	desc := domain.OutputDescriptor{
		OriginalBaseName: res.OriginalBaseName,
		ResolvedBaseName: res.ResolvedBaseName,
		FullPath:         res.Path,
		Frames:           req.Batch.Len(),
	}

	if !req.DeleteOldFile || !res.SubstringApplied || res.OriginalBaseName == res.ResolvedBaseName {
		return desc, nil
	}
	old := res.SupersededPath()
	if old == res.Path {
		return desc, nil
	}
	switch err := s.fs.Remove(old); {
	case err == nil:
		desc.DeletedPath = old
	case errors.Is(err, fs.ErrNotExist):
		// nothing to clean up
	default:
		return desc, &domain.CleanupError{Path: old, Err: err}
	}
	return desc, nil
}
