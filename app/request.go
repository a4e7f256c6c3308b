package app

import "github.com/omegaatt36/ultraimage/internal/domain"

// LoadRequest are the parameters of one Load call.
type LoadRequest struct {
	Folder     string
	ImageID    int
	Subfolders bool
	Include    string
	Exclude    string
}

// DefaultLoadRequest reads from ./images with no filters.
func DefaultLoadRequest() LoadRequest {
	return LoadRequest{Folder: "./images"}
}

// LoadResult is the outcome of Load. FileName is the selected file's name
// without extension.
type LoadResult struct {
	Total    int
	FileName string
	Path     string
	Folder   string
	Batch    domain.Batch
	Found    bool
}

// SaveRequest are the parameters of one Save call. The zero Encoding means
// JPEG quality 100 and uncompressed PNG.
type SaveRequest struct {
	Batch         domain.Batch
	Folder        string
	FileName      string
	Format        string
	Overwrite     bool
	Replace       string
	With          string
	DeleteOldFile bool
	Encoding      domain.EncodeOptions
}

// DefaultSaveRequest writes ./output/image.png, overwriting.
func DefaultSaveRequest() SaveRequest {
	return SaveRequest{
		Folder:    "./output",
		FileName:  "image",
		Format:    string(domain.FormatPNG),
		Overwrite: true,
		Encoding:  domain.DefaultEncodeOptions(),
	}
}
