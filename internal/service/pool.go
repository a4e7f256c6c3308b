package service

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/omegaatt36/ultraimage/internal/domain"
	"github.com/omegaatt36/ultraimage/internal/port"
)

// PoolService enumerates image files under a root and picks one by index.
type PoolService struct {
	fs port.FileSystem
	nm port.NameMatcher
}

func NewPoolService(fs port.FileSystem, nm port.NameMatcher) *PoolService {
	return &PoolService{fs: fs, nm: nm}
}

// Select returns the candidate at req.Index modulo the pool size. An empty
// pool is not an error: the returned Selection has Found == false.
func (s *PoolService) Select(req domain.SelectRequest) (domain.Selection, error) {
	files, err := s.Candidates(req.Root, req.Recursive, req.Filter)
	if err != nil {
		return domain.Selection{}, err
	}
	if len(files) == 0 {
		return domain.Selection{}, nil
	}

	n := len(files)
	idx := ((req.Index % n) + n) % n
	return domain.Selection{
		Total: n,
		Index: idx,
		Item:  files[idx],
		Found: true,
	}, nil
}

// Candidates returns the filtered image files under root in natural order.
func (s *PoolService) Candidates(root string, recursive bool, filter domain.Filter) ([]domain.FileItem, error) {
	info, err := s.fs.Stat(root)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPath) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidPath, root)
	}

	var files []domain.FileItem
	if recursive {
		files, err = s.walk(root)
	} else {
		files, err = s.list(root)
	}
	if err != nil {
		return nil, err
	}

	kept := files[:0]
	for _, f := range files {
		if s.keep(f.Name, filter) {
			kept = append(kept, f)
		}
	}

	domain.NaturalSort(kept)
	return kept, nil
}

// keep matches against the full base name, extension included.
func (s *PoolService) keep(name string, filter domain.Filter) bool {
	if filter.Include != "" && !s.nm.Contains(name, filter.Include) {
		return false
	}
	if filter.Exclude != "" && s.nm.Contains(name, filter.Exclude) {
		return false
	}
	return true
}

func (s *PoolService) list(root string) ([]domain.FileItem, error) {
	entries, err := s.fs.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var files []domain.FileItem
	for _, entry := range entries {
		if entry.IsDir() || !domain.IsImageExtension(filepath.Ext(entry.Name())) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, newFileItem(root, entry.Name(), info))
	}
	return files, nil
}

// walk descends the whole tree. Unreadable subdirectories are skipped; an
// unreadable root fails the call.
func (s *PoolService) walk(root string) ([]domain.FileItem, error) {
	var files []domain.FileItem
	err := s.fs.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !domain.IsImageExtension(filepath.Ext(d.Name())) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, newFileItem(root, rel, info))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPath, err)
	}
	return files, nil
}

func newFileItem(root, rel string, info fs.FileInfo) domain.FileItem {
	name := filepath.Base(rel)
	return domain.FileItem{
		Name:      name,
		Path:      filepath.Join(root, rel),
		RelPath:   filepath.ToSlash(rel),
		Extension: strings.ToLower(filepath.Ext(name)),
		Size:      uint64(info.Size()),
		ModTime:   info.ModTime(),
	}
}
