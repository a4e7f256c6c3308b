package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// InputExtensions lists the raster image extensions the pool recognizes.
var InputExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tiff", ".webp"}

type FileItem struct {
	Name      string
	Path      string
	RelPath   string
	Extension string
	Size      uint64
	ModTime   time.Time
}

// Stem returns the file name without its extension.
func (f FileItem) Stem() string {
	return strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
}

// Filter keeps a name iff Include is empty or present, and Exclude is empty or absent.
type Filter struct {
	Include string
	Exclude string
}

// SelectRequest describes one pool selection.
type SelectRequest struct {
	Root      string
	Recursive bool
	Filter    Filter
	Index     int
}

// Selection is the result of a pool selection. Found is false when the
// filtered pool is empty; Total is then 0 and Item is zero.
type Selection struct {
	Total int
	Index int
	Item  FileItem
	Found bool
}

// IsImageExtension reports whether ext (with leading dot) is a recognized
// input extension. The comparison is case-insensitive.
func IsImageExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range InputExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// FormatFileSize formats a file size in bytes to a human-readable string.
func FormatFileSize(size uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case size >= GB:
		return fmt.Sprintf("%.1f GB", float64(size)/float64(GB))
	case size >= MB:
		return fmt.Sprintf("%.1f MB", float64(size)/float64(MB))
	case size >= KB:
		return fmt.Sprintf("%.1f KB", float64(size)/float64(KB))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
