// Command ggscript renders a drawing script to a PNG image, or to a text
// trace of backend calls.
//
// Usage:
//
//	ggscript -script scene.yaml -output scene.png
//	ggscript -script scene.toml -font title=Inter.ttf -image atlas=atlas.png
//	ggscript -script scene.yaml -image photo.jpg
//	ggscript -script scene.yaml -trace -output -
//	ggscript -script scene.yaml -watch
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/ggscript"
	_ "github.com/gogpu/ggscript/backends/raster" // register raster backend
	_ "github.com/gogpu/ggscript/backends/trace"  // register trace backend
	"github.com/gogpu/ggscript/resource"
	"github.com/gogpu/ggscript/scriptfile"
)

// assignments collects repeatable id=path flags. A bare path leaves the
// id empty.
type assignments []assignment

type assignment struct{ id, path string }

func (a *assignments) String() string {
	parts := make([]string, len(*a))
	for i, v := range *a {
		parts[i] = v.path
		if v.id != "" {
			parts[i] = v.id + "=" + v.path
		}
	}
	return strings.Join(parts, ",")
}

func (a *assignments) Set(s string) error {
	id, path, ok := strings.Cut(s, "=")
	if !ok {
		id, path = "", s
	}
	if (ok && id == "") || path == "" {
		return fmt.Errorf("want id=path or path, got %q", s)
	}
	*a = append(*a, assignment{id: id, path: path})
	return nil
}

type config struct {
	script string
	output string
	width  int
	height int
	fonts  assignments
	images assignments
	debug  bool
	trace  bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.script, "script", "", "script file (.yaml, .yml or .toml)")
	flag.StringVar(&cfg.output, "output", "", "output file, - for stdout (default: script name with .png or .trace)")
	flag.IntVar(&cfg.width, "width", 0, "surface width, overrides the script")
	flag.IntVar(&cfg.height, "height", 0, "surface height, overrides the script")
	flag.Var(&cfg.fonts, "font", "register a TrueType/OpenType font as id=path (repeatable)")
	flag.Var(&cfg.images, "image", "register an image as id=path, or by content id when given a bare path (repeatable)")
	flag.BoolVar(&cfg.debug, "debug", false, "log every opcode")
	flag.BoolVar(&cfg.trace, "trace", false, "write a backend call trace instead of a PNG")
	watch := flag.Bool("watch", false, "re-render when the script changes")
	flag.Parse()

	if cfg.script == "" {
		flag.Usage()
		os.Exit(2)
	}
	if cfg.output == "" {
		ext := ".png"
		if cfg.trace {
			ext = ".trace"
		}
		cfg.output = strings.TrimSuffix(cfg.script, filepath.Ext(cfg.script)) + ext
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	if cfg.debug {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	ggscript.SetLogger(logger)

	reg, err := loadResources(&cfg)
	if err != nil {
		log.Fatalf("Failed to load resources: %v", err)
	}

	if err := render(&cfg, reg, logger); err != nil {
		if !*watch {
			log.Fatalf("Failed to render: %v", err)
		}
		logger.Error("render failed", "script", cfg.script, "error", err)
	}
	if *watch {
		if err := watchScript(&cfg, reg, logger); err != nil {
			log.Fatalf("Failed to watch: %v", err)
		}
	}
}

func loadResources(cfg *config) (*resource.Registry, error) {
	reg := resource.NewRegistry()
	for _, f := range cfg.fonts {
		if f.id == "" {
			return nil, fmt.Errorf("font %s: want id=path", f.path)
		}
		data, err := os.ReadFile(f.path)
		if err != nil {
			return nil, err
		}
		if err := reg.LoadFont(f.id, data); err != nil {
			return nil, err
		}
	}
	for _, a := range cfg.images {
		data, err := os.ReadFile(a.path)
		if err != nil {
			return nil, err
		}
		if a.id == "" {
			id, err := reg.AddImageBytes(data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", a.path, err)
			}
			ggscript.Logger().Info("image registered", "path", a.path, "id", id)
			continue
		}
		if err := reg.LoadImage(a.id, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("%s: %w", a.path, err)
		}
	}
	return reg, nil
}

func render(cfg *config, reg *resource.Registry, logger *slog.Logger) error {
	script, err := scriptfile.Load(cfg.script)
	if err != nil {
		return err
	}
	if cfg.width > 0 {
		script.Width = cfg.width
	}
	if cfg.height > 0 {
		script.Height = cfg.height
	}

	name := "raster"
	if cfg.trace {
		name = "trace"
	}
	backend, err := ggscript.NewBackend(name)
	if err != nil {
		return err
	}

	in := ggscript.New(backend, reg, ggscript.WithDebug(cfg.debug), ggscript.WithLogger(logger))
	runErr := in.Run(script)
	if runErr != nil && !errors.Is(runErr, ggscript.ErrStateStackImbalance) {
		return runErr
	}

	wt, ok := backend.(io.WriterTo)
	if !ok {
		return fmt.Errorf("backend %q has no output", name)
	}
	if err := writeOutput(cfg.output, wt); err != nil {
		return err
	}
	if runErr != nil {
		logger.Warn("script left states pushed", "script", cfg.script)
	}
	if cfg.output != "-" {
		log.Printf("Rendered %s to %s (%dx%d)\n", cfg.script, cfg.output, script.Width, script.Height)
	}
	return nil
}

func writeOutput(path string, wt io.WriterTo) error {
	if path == "-" {
		_, err := wt.WriteTo(os.Stdout)
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// watchScript re-renders whenever the script file is written. The directory
// is watched rather than the file so editors that replace the file on save
// keep triggering events.
func watchScript(cfg *config, reg *resource.Registry, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(cfg.script)); err != nil {
		return err
	}
	target := filepath.Clean(cfg.script)
	logger.Info("watching", "script", target)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := render(cfg, reg, logger); err != nil {
				logger.Error("render failed", "script", target, "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}
