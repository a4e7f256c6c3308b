package app

import (
	"log/slog"

	"github.com/omegaatt36/ultraimage/internal/adapter/codec"
	"github.com/omegaatt36/ultraimage/internal/adapter/fs"
	"github.com/omegaatt36/ultraimage/internal/adapter/match"
	"github.com/omegaatt36/ultraimage/internal/service"
)

// NewOS builds an App on the real filesystem and image codec.
func NewOS(logger *slog.Logger) *App {
	fileSystem := &fs.OSFileSystem{}
	imageCodec := &codec.ImageCodec{}

	return NewApp(
		service.NewPoolService(fileSystem, &match.Engine{}),
		service.NewAssemblerService(fileSystem, imageCodec, service.WithAssemblerLogger(logger)),
		service.NewResolverService(fileSystem),
		service.NewWriterService(fileSystem, imageCodec),
		WithLogger(logger),
	)
}
