package app

import (
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/omegaatt36/ultraimage/internal/domain"
	"github.com/omegaatt36/ultraimage/internal/port"
)

// Option configures the App.
type Option func(*App)

// WithLogger sets a custom logger for the App.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// App is the main application struct that composes all services. It keeps no
// state between calls.
type App struct {
	pool      port.Pool
	assembler port.Assembler
	resolver  port.Resolver
	writer    port.Writer
	logger    *slog.Logger
}

// NewApp creates a new App with injected service dependencies.
func NewApp(pool port.Pool, assembler port.Assembler, resolver port.Resolver, writer port.Writer, opts ...Option) *App {
	a := &App{
		pool:      pool,
		assembler: assembler,
		resolver:  resolver,
		writer:    writer,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load selects one image from the folder and decodes it into a batch.
// An empty pool yields a result with Found == false and no error.
func (a *App) Load(req LoadRequest) (LoadResult, error) {
	sel, err := a.pool.Select(domain.SelectRequest{
		Root:      req.Folder,
		Recursive: req.Subfolders,
		Filter:    domain.Filter{Include: req.Include, Exclude: req.Exclude},
		Index:     req.ImageID,
	})
	if err != nil {
		return LoadResult{}, err
	}

	result := LoadResult{Total: sel.Total, Folder: req.Folder}
	if !sel.Found {
		a.logger.Info("no images matched", "folder", req.Folder, "include", req.Include, "exclude", req.Exclude)
		return result, nil
	}

	a.logger.Debug("image selected",
		"path", sel.Item.Path, "index", sel.Index, "total", sel.Total,
		"ext", sel.Item.Extension,
		"size", domain.FormatFileSize(sel.Item.Size),
		"modified", sel.Item.ModTime.Format(time.RFC3339))

	batch, err := a.assembler.Assemble(sel.Item.Path)
	if err != nil {
		return LoadResult{}, err
	}

	result.Found = true
	result.Path = sel.Item.Path
	result.FileName = sel.Item.Stem()
	result.Batch = batch
	return result, nil
}

// LoadFile decodes a single file without going through the pool.
func (a *App) LoadFile(path string) (LoadResult, error) {
	batch, err := a.assembler.Assemble(path)
	if err != nil {
		return LoadResult{}, err
	}
	item := domain.FileItem{Name: filepath.Base(path), Path: path}
	return LoadResult{
		Total:    1,
		FileName: item.Stem(),
		Path:     path,
		Folder:   filepath.Dir(path),
		Batch:    batch,
		Found:    true,
	}, nil
}

// Save resolves the output name and writes the batch. When only the removal
// of the superseded file fails, the descriptor is returned together with a
// *domain.CleanupError.
func (a *App) Save(req SaveRequest) (domain.OutputDescriptor, error) {
	format, err := domain.ParseFormat(req.Format)
	if err != nil {
		return domain.OutputDescriptor{}, err
	}

	res, err := a.resolver.Resolve(domain.ResolveRequest{
		Folder:    req.Folder,
		BaseName:  req.FileName,
		Format:    format,
		Overwrite: req.Overwrite,
		Replace:   req.Replace,
		With:      req.With,
	})
	if err != nil {
		return domain.OutputDescriptor{}, err
	}

	desc, err := a.writer.Write(domain.WriteRequest{
		Batch:         req.Batch,
		Resolution:    res,
		DeleteOldFile: req.DeleteOldFile,
		Encoding:      req.Encoding,
	})
	var cleanup *domain.CleanupError
	switch {
	case errors.As(err, &cleanup):
		a.logger.Warn("old file not deleted", "path", cleanup.Path, "error", cleanup.Err)
		return desc, err
	case err != nil:
		return domain.OutputDescriptor{}, err
	}

	if desc.DeletedPath != "" {
		a.logger.Info("deleted old file", "path", desc.DeletedPath)
	}
	a.logger.Info("image saved", "path", desc.FullPath, "frames", desc.Frames)
	return desc, nil
}
