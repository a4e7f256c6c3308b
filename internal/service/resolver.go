package service

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/omegaatt36/ultraimage/internal/domain"
	"github.com/omegaatt36/ultraimage/internal/port"
)

// Collision suffixes are drawn from [suffixMin, suffixMax), i.e. ten digits.
const (
	suffixMin = 1_000_000_000
	suffixMax = 10_000_000_000
)

// ResolverOption configures the ResolverService.
type ResolverOption func(*ResolverService)

// WithClock sets the time source used for template expansion.
func WithClock(now func() time.Time) ResolverOption {
	return func(s *ResolverService) {
		s.now = now
	}
}

// WithSuffix sets the generator of collision suffixes.
func WithSuffix(next func() int64) ResolverOption {
	return func(s *ResolverService) {
		s.suffix = next
	}
}

// ResolverService turns a requested base name into a final output path.
type ResolverService struct {
	fs     port.FileSystem
	now    func() time.Time
	suffix func() int64
}

func NewResolverService(fs port.FileSystem, opts ...ResolverOption) *ResolverService {
	s := &ResolverService{
		fs:     fs,
		now:    time.Now,
		suffix: func() int64 { return suffixMin + rand.Int64N(suffixMax-suffixMin) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve expands date tokens, applies the substring replacement, makes sure
// the folder exists and, when overwriting is not allowed and the target is
// taken, appends a random numeric suffix to the path.
func (s *ResolverService) Resolve(req domain.ResolveRequest) (domain.Resolution, error) {
	if !req.Format.Valid() {
		return domain.Resolution{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, req.Format)
	}

	name := domain.ExpandTemplate(req.BaseName, s.now())
	name, applied := domain.ReplaceSubstring(name, req.Replace, req.With)
	if strings.TrimSpace(name) == "" {
		return domain.Resolution{}, fmt.Errorf("%w: %q resolves to an empty name", domain.ErrInvalidName, req.BaseName)
	}

	if err := s.fs.MkdirAll(req.Folder); err != nil {
		return domain.Resolution{}, fmt.Errorf("%w: create %s: %s", domain.ErrWrite, req.Folder, err)
	}

	path := domain.OutputPath(req.Folder, name, req.Format)
	if !req.Overwrite {
		taken, err := s.exists(path)
		if err != nil {
			return domain.Resolution{}, err
		}
		if taken {
			path = domain.OutputPath(req.Folder, name+"_"+strconv.FormatInt(s.suffix(), 10), req.Format)
		}
	}

	return domain.Resolution{
		Path:             path,
		Folder:           req.Folder,
		Format:           req.Format,
		OriginalBaseName: req.BaseName,
		ResolvedBaseName: name,
		SubstringApplied: applied,
	}, nil
}

func (s *ResolverService) exists(path string) (bool, error) {
	_, err := s.fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %s", domain.ErrWrite, err)
}
