// Package intake stages the file the user picked, either through the file
// dialog or by dropping it onto the window. Both paths end in the same
// FileChosen signal so listeners never need to know where a file came from.
package intake

import (
	"mime"
	"os"
	"sync"

	"Cryptbook/internal/errors"
	"Cryptbook/internal/event"
	"Cryptbook/internal/log"

	"fyne.io/fyne/v2"
	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"
)

// Source records how a file was selected.
type Source int

const (
	SourceClicked Source = iota
	SourceDropped
)

func (s Source) String() string {
	switch s {
	case SourceClicked:
		return "clicked"
	case SourceDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// StagedFile is the file currently selected for the next operation.
type StagedFile struct {
	Name            string
	Path            string
	SizeBytes       int64
	MimeOrExtension string
	Source          Source
}

// Controller owns the single active selection of one file input.
type Controller struct {
	mu       sync.Mutex
	active   *StagedFile
	dragging bool
	policy   *Policy

	chosen event.Registry[StagedFile]
	drag   event.Registry[bool]
	logger log.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithPolicy rejects files that fail p. A nil policy accepts everything.
func WithPolicy(p *Policy) Option {
	return func(c *Controller) { c.policy = p }
}

// New creates a controller with no active selection.
func New(opts ...Option) *Controller {
	c := &Controller{logger: log.With(log.String("component", "intake"))}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnFileChosen registers fn for every new active selection.
func (c *Controller) OnFileChosen(fn func(StagedFile)) *event.Subscription {
	return c.chosen.Subscribe(fn)
}

// OnDragActive registers fn for changes of the drop region highlight.
func (c *Controller) OnDragActive(fn func(bool)) *event.Subscription {
	return c.drag.Subscribe(fn)
}

// DragOver marks the drop region active.
func (c *Controller) DragOver() {
	c.setDragging(true)
}

// DragLeave clears the drop region highlight.
func (c *Controller) DragLeave() {
	c.setDragging(false)
}

// Dragging reports whether the drop region is highlighted.
func (c *Controller) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragging
}

func (c *Controller) setDragging(v bool) {
	c.mu.Lock()
	changed := c.dragging != v
	c.dragging = v
	c.mu.Unlock()
	if changed {
		c.drag.Emit(v)
	}
}

// Drop handles a drop payload. Entries that are not local files, such as a
// dragged link, are ignored. With no files left nothing changes and no signal
// fires. Otherwise only the first file is staged.
func (c *Controller) Drop(uris []fyne.URI) error {
	c.DragLeave()

	files := lo.Filter(uris, func(u fyne.URI, _ int) bool { return isLocal(u) })
	if len(files) == 0 {
		c.logger.Debug("drop without files ignored", log.Int("items", len(uris)))
		return nil
	}
	if len(files) > 1 {
		c.logger.Info("multiple files dropped, keeping the first", log.Int("files", len(files)))
	}
	return c.stage(files[0].Path(), SourceDropped)
}

// Choose handles a selection made through the file dialog. Only local
// files can be staged; anything else leaves the selection untouched.
func (c *Controller) Choose(uri fyne.URI) error {
	if uri == nil {
		return nil
	}
	if !isLocal(uri) {
		c.logger.Warn("non-local selection rejected", log.String("uri", uri.String()))
		return errors.NewValidationError("file", "only local files can be selected", errors.ErrNotAFile)
	}
	return c.stage(uri.Path(), SourceClicked)
}

func isLocal(u fyne.URI) bool {
	return u != nil && u.Scheme() == "file"
}

// Active returns the current selection.
func (c *Controller) Active() (StagedFile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return StagedFile{}, false
	}
	return *c.active, true
}

// Reset discards the selection. It does not emit FileChosen.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.active = nil
	c.mu.Unlock()
}

func (c *Controller) stage(path string, src Source) error {
	f, err := Stat(path)
	if err != nil {
		c.logger.Warn("stage failed", log.String("path", path), log.Err(err))
		return err
	}
	if err := c.policy.Check(f.Name, f.SizeBytes); err != nil {
		c.logger.Warn("file rejected", log.String("path", path), log.Err(err))
		return err
	}
	f.Source = src

	c.mu.Lock()
	c.active = &f
	c.mu.Unlock()

	c.logger.Info("file staged",
		log.String("name", f.Name),
		log.Int64("size", f.SizeBytes),
		log.String("type", f.MimeOrExtension),
		log.String("source", src.String()))
	c.chosen.Emit(f)
	return nil
}

// Stat describes the local file at path. Directories are rejected.
// The type is sniffed from content, falling back to the extension when the
// content is not recognised.
func Stat(path string) (StagedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return StagedFile{}, errors.NewFileError("stat", path, err)
	}
	if !info.Mode().IsRegular() {
		return StagedFile{}, errors.NewFileError("stat", path, errors.ErrNotAFile)
	}

	kind := ""
	if m, err := mimetype.DetectFile(path); err != nil {
		return StagedFile{}, errors.NewFileError("sniff", path, err)
	} else if !m.Is("application/octet-stream") {
		kind = m.String()
		if base, _, err := mime.ParseMediaType(kind); err == nil {
			kind = base
		}
	}
	if kind == "" {
		if ext := Extension(info.Name()); ext != "" {
			kind = "." + ext
		} else {
			kind = "application/octet-stream"
		}
	}

	return StagedFile{
		Name:            info.Name(),
		Path:            path,
		SizeBytes:       info.Size(),
		MimeOrExtension: kind,
	}, nil
}
