// Package watch revalidates a model file every time it is saved.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/dblmodel/internal/document"
)

// DefaultDebounce is how long the watcher waits after the last change to
// a file before revalidating it. Editors often write a file in several
// steps.
const DefaultDebounce = 100 * time.Millisecond

// Result is the outcome of checking a model file once. Err is set when the
// file could not be loaded or built, and Report otherwise.
type Result struct {
	Path   string
	Report document.Report
	Err    error
}

// Check loads, builds and validates the model file at path, inferring
// missing objects first when infer is set.
func Check(path string, infer bool) Result {
	res := Result{Path: path}
	f, err := document.Load(path)
	if err != nil {
		res.Err = err
		return res
	}
	m, err := document.Build(f)
	if err != nil {
		res.Err = fmt.Errorf("building %s: %w", path, err)
		return res
	}
	if infer && m.Discrete != nil {
		if _, err := m.InferMissing(); err != nil {
			res.Err = err
			return res
		}
	}
	res.Report = m.Report()
	return res
}

// Options configure a Watcher.
type Options struct {
	Infer    bool
	Debounce time.Duration
	OnResult func(Result)
}

// Watcher checks a model file on start and after every change to it.
type Watcher struct {
	path    string
	opts    Options
	watcher *fsnotify.Watcher
	logger  *zap.Logger
}

// New watches the model file at path. The directory is watched as well so
// that atomic saves, which replace the file by renaming, are seen.
func New(path string, opts Options, logger *zap.Logger) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}
	return &Watcher{path: path, opts: opts, watcher: fw, logger: logger}, nil
}

// Run checks the file once and then again after every change, until ctx is
// done. Checks run one at a time on the calling goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	w.logger.Info("watching model file", zap.String("path", w.path))
	w.check()

	timer := time.NewTimer(w.opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stopped watching model file", zap.String("path", w.path))
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.logger.Debug("model file changed", zap.String("op", event.Op.String()))
				timer.Reset(w.opts.Debounce)
			}

		case <-timer.C:
			w.check()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("file watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) check() {
	res := Check(w.path, w.opts.Infer)
	switch {
	case res.Err != nil:
		w.logger.Warn("model file could not be loaded", zap.String("path", w.path), zap.Error(res.Err))
	case res.Report.Valid:
		w.logger.Info("model is valid", zap.String("path", w.path), zap.String("theory", res.Report.Theory))
	default:
		w.logger.Info("model is invalid",
			zap.String("path", w.path),
			zap.String("theory", res.Report.Theory),
			zap.Int("errors", len(res.Report.Errors)),
		)
	}
	if w.opts.OnResult != nil {
		w.opts.OnResult(res)
	}
}
