package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/omegaatt36/ultraimage/app"
	"github.com/omegaatt36/ultraimage/internal/domain"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || isHelp(args[0]) {
		printUsage(stderr)
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	switch args[0] {
	case "load":
		return loadCmd(args[1:], stdout, stderr)
	case "save":
		return saveCmd(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		printUsage(stderr)
		return 2
	}
}

type loadOutput struct {
	Total    int    `json:"total"`
	FileName string `json:"filename"`
	Path     string `json:"path,omitempty"`
	Folder   string `json:"folder"`
	Frames   int    `json:"frames"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

func loadCmd(args []string, stdout, stderr io.Writer) int {
	def := app.DefaultLoadRequest()
	fset := flag.NewFlagSet("load", flag.ContinueOnError)
	fset.SetOutput(stderr)
	folder := fset.String("folder", def.Folder, "folder to read images from")
	id := fset.Int("id", def.ImageID, "index of the image to load; wraps around the pool size")
	subfolders := fset.Bool("subfolders", def.Subfolders, "include images in subfolders")
	include := fset.String("include", "", "keep only names containing this text")
	exclude := fset.String("exclude", "", "drop names containing this text")
	verbose := fset.Bool("v", false, "debug logging")
	if err := fset.Parse(args); err != nil {
		return usageCode(err)
	}
	if fset.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fset.Args())
		return 2
	}

	a := app.NewOS(newLogger(stderr, *verbose))
	res, err := a.Load(app.LoadRequest{
		Folder:     *folder,
		ImageID:    *id,
		Subfolders: *subfolders,
		Include:    *include,
		Exclude:    *exclude,
	})
	if err != nil {
		fmt.Fprintf(stderr, "load: %v\n", err)
		return 1
	}

	shape := res.Batch.Shape()
	return emit(stdout, stderr, loadOutput{
		Total:    res.Total,
		FileName: res.FileName,
		Path:     res.Path,
		Folder:   res.Folder,
		Frames:   shape[0],
		Height:   shape[1],
		Width:    shape[2],
	})
}

var pngLevels = map[string]domain.PNGCompression{
	"none":    domain.PNGNoCompression,
	"default": domain.PNGDefaultCompression,
	"speed":   domain.PNGBestSpeed,
	"best":    domain.PNGBestCompression,
}

func saveCmd(args []string, stdout, stderr io.Writer) int {
	def := app.DefaultSaveRequest()
	fset := flag.NewFlagSet("save", flag.ContinueOnError)
	fset.SetOutput(stderr)
	in := fset.String("in", "", "image file to save (required)")
	out := fset.String("out", def.Folder, "output folder, created when missing")
	name := fset.String("name", def.FileName, "output base name; supports %date:yyyyMMdd% and %date:hhmmss%")
	format := fset.String("format", def.Format, "output format: png or jpg")
	overwrite := fset.Bool("overwrite", def.Overwrite, "replace an existing file instead of adding a random suffix")
	replace := fset.String("replace", "", "text to replace in the base name")
	with := fset.String("with", "", "replacement text")
	deleteOld := fset.Bool("delete-old", false, "delete the file named after the original base name once renamed")
	quality := fset.Int("quality", def.Encoding.JPEGQuality, "JPEG quality, 1-100")
	level := fset.String("png-compression", "none", "PNG compression: none, default, speed or best")
	verbose := fset.Bool("v", false, "debug logging")
	if err := fset.Parse(args); err != nil {
		return usageCode(err)
	}
	if *in == "" {
		fmt.Fprintln(stderr, "-in is required")
		fset.Usage()
		return 2
	}
	compression, ok := pngLevels[strings.ToLower(*level)]
	if !ok {
		fmt.Fprintf(stderr, "unknown -png-compression %q\n", *level)
		return 2
	}

	a := app.NewOS(newLogger(stderr, *verbose))
	src, err := a.LoadFile(*in)
	if err != nil {
		fmt.Fprintf(stderr, "load %s: %v\n", *in, err)
		return 1
	}

	desc, err := a.Save(app.SaveRequest{
		Batch:         src.Batch,
		Folder:        *out,
		FileName:      *name,
		Format:        *format,
		Overwrite:     *overwrite,
		Replace:       *replace,
		With:          *with,
		DeleteOldFile: *deleteOld,
		Encoding:      domain.EncodeOptions{JPEGQuality: *quality, PNGCompression: compression},
	})
	if err != nil {
		fmt.Fprintf(stderr, "save: %v\n", err)
		var cleanup *domain.CleanupError
		if errors.As(err, &cleanup) {
			emit(stdout, stderr, desc)
		}
		return 1
	}
	return emit(stdout, stderr, desc)
}

func emit(stdout, stderr io.Writer, v any) int {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(stderr, "write output: %v\n", err)
		return 1
	}
	return 0
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func usageCode(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	return 2
}

func isHelp(s string) bool {
	return s == "-h" || s == "--help" || s == "help"
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `ultraimage loads one image from a folder or saves an image under a resolved name.

Usage:
  ultraimage load [-folder DIR] [-id N] [-subfolders] [-include S] [-exclude S] [-v]
  ultraimage save -in FILE [-out DIR] [-name NAME] [-format png|jpg] [-overwrite=BOOL]
                  [-replace S] [-with S] [-delete-old] [-quality N] [-png-compression LEVEL] [-v]

Results are printed to stdout as JSON; logs go to stderr.
`)
}
