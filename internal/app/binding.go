package app

import (
	"fmt"

	"Cryptbook/internal/intake"
	"Cryptbook/internal/strength"
	"Cryptbook/internal/util"

	"fyne.io/fyne/v2/data/binding"
)

// DefaultInputLabel is shown while no file is staged.
const DefaultInputLabel = "Drop a file into this window or choose one"

// BoundFile exposes the staged file to widgets.
type BoundFile struct {
	Label binding.String // name, or DefaultInputLabel
	Size  binding.String // "1.5 KB"
	Type  binding.String // MIME type or extension
	Kind  binding.String // util.FileKind
}

// NewBoundFile creates a BoundFile showing no selection.
func NewBoundFile() *BoundFile {
	b := &BoundFile{
		Label: binding.NewString(),
		Size:  binding.NewString(),
		Type:  binding.NewString(),
		Kind:  binding.NewString(),
	}
	b.Reset()
	return b
}

// Set shows f.
func (b *BoundFile) Set(f intake.StagedFile) {
	_ = b.Label.Set(f.Name)
	_ = b.Size.Set(util.FormatFileSize(f.SizeBytes))
	_ = b.Type.Set(f.MimeOrExtension)
	_ = b.Kind.Set(string(util.FileType(f.Name)))
}

// Reset shows the empty state.
func (b *BoundFile) Reset() {
	_ = b.Label.Set(DefaultInputLabel)
	_ = b.Size.Set("")
	_ = b.Type.Set("")
	_ = b.Kind.Set(string(util.KindFile))
}

// BoundStrength exposes a score and its label to widgets.
type BoundStrength struct {
	Score binding.Float  // 0-100
	Label binding.String // "Strong (85)"
	Class binding.String // danger, warning, info, success
}

// NewBoundStrength creates a BoundStrength at score 0.
func NewBoundStrength() *BoundStrength {
	b := &BoundStrength{
		Score: binding.NewFloat(),
		Label: binding.NewString(),
		Class: binding.NewString(),
	}
	b.Set(0)
	return b
}

// Set shows score.
func (b *BoundStrength) Set(score int) {
	l := strength.LabelFor(score)
	_ = b.Score.Set(float64(score))
	_ = b.Label.Set(fmt.Sprintf("%s (%d)", l.Title(), score))
	_ = b.Class.Set(l.Class())
}

// BoundProgress exposes a job's progress to widgets.
type BoundProgress struct {
	Info   binding.String // "50.00%"
	Status binding.String
}

// NewBoundProgress creates a new BoundProgress with default values.
func NewBoundProgress() *BoundProgress {
	b := &BoundProgress{
		Info:   binding.NewString(),
		Status: binding.NewString(),
	}
	b.Reset()
	return b
}

// Reset resets all bindings to default values.
func (b *BoundProgress) Reset() {
	_ = b.Info.Set("")
	_ = b.Status.Set("Ready")
}
