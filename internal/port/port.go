package port

import (
	"image"
	"io/fs"
	"os"

	"github.com/omegaatt36/ultraimage/internal/domain"
)

//go:generate mockgen -source=port.go -destination=../mock/mock_port.go -package=mock

// FileSystem abstracts file system operations for testability.
type FileSystem interface {
	ReadDir(path string) ([]os.DirEntry, error)
	WalkDir(root string, fn fs.WalkDirFunc) error
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	MkdirAll(path string) error
	Remove(path string) error
}

// Codec is the image decode/encode boundary.
type Codec interface {
	Decode(data []byte) (domain.Container, error)
	Encode(img image.Image, format domain.Format, opts domain.EncodeOptions) ([]byte, error)
}

// NameMatcher abstracts substring matching on file names.
type NameMatcher interface {
	Contains(name, substr string) bool
}

// Pool selects one image file from a directory.
type Pool interface {
	Select(req domain.SelectRequest) (domain.Selection, error)
}

// Assembler loads a file into a batch of frames.
type Assembler interface {
	Assemble(path string) (domain.Batch, error)
}

// Resolver computes output paths.
type Resolver interface {
	Resolve(req domain.ResolveRequest) (domain.Resolution, error)
}

// Writer persists batches.
type Writer interface {
	Write(req domain.WriteRequest) (domain.OutputDescriptor, error)
}
