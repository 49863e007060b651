package compiler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/odatagen/compiler/gen"
)

// debounce is the quiet period after the last input change before the
// target is generated again.
var debounce = 200 * time.Millisecond

// Watch generates the target once, then again after the inputs change,
// until ctx is done. The result of every run is passed to report. Input
// directories are watched recursively; explicitly named files are watched
// through their parent directory.
func Watch(ctx context.Context, cfg *gen.Config, paths []string, report func(error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	files := make(map[string]bool)
	for _, p := range paths {
		st, err := os.Stat(p)
		if err != nil {
			return err
		}
		if !st.IsDir() {
			files[filepath.Clean(p)] = true
			if err := w.Add(filepath.Dir(p)); err != nil {
				return err
			}
			continue
		}
		if err := watchDir(w, p); err != nil {
			return err
		}
	}

	log := cfg.Log().With("source", "watcher")
	report(Generate(ctx, cfg, paths...))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			// Output and staging directories share the target prefix.
			if cfg.Target != "" && strings.HasPrefix(filepath.Clean(ev.Name), filepath.Clean(cfg.Target)) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
					if err := watchDir(w, ev.Name); err != nil {
						log.Warn("watching new directory", "dir", ev.Name, "error", err)
					}
					continue
				}
			}
			name := filepath.Clean(ev.Name)
			if strings.HasPrefix(filepath.Base(name), ".") || !(files[name] || isMetadata(name) || isArchive(name)) {
				continue
			}
			log.Debug("input changed", "file", name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error("watcher error", "error", err)
		case <-fire:
			fire = nil
			report(Generate(ctx, cfg, paths...))
		}
	}
}

func watchDir(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
