package intake

import (
	"os"
	"path/filepath"
	"testing"

	"Cryptbook/internal/errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) fyne.URI {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return storage.NewFileURI(path)
}

type recorder struct {
	files []StagedFile
}

func (r *recorder) record(f StagedFile) { r.files = append(r.files, f) }

func TestDropZeroFilesKeepsSelection(t *testing.T) {
	c := New()
	rec := &recorder{}
	c.OnFileChosen(rec.record)

	first := writeFile(t, "first.txt", []byte("hello"))
	require.NoError(t, c.Choose(first))
	require.Len(t, rec.files, 1)

	link, err := storage.ParseURI("https://example.com/page")
	require.NoError(t, err)

	require.NoError(t, c.Drop(nil))
	require.NoError(t, c.Drop([]fyne.URI{link}))

	active, ok := c.Active()
	require.True(t, ok)
	assert.Equal(t, "first.txt", active.Name)
	assert.Equal(t, SourceClicked, active.Source)
	assert.Len(t, rec.files, 1, "no signal for an empty drop")
}

func TestDropTwoFilesKeepsFirst(t *testing.T) {
	c := New()
	rec := &recorder{}
	c.OnFileChosen(rec.record)

	a := writeFile(t, "a.txt", []byte("aaaa"))
	b := writeFile(t, "b.txt", []byte("bb"))
	require.NoError(t, c.Drop([]fyne.URI{a, b}))

	active, ok := c.Active()
	require.True(t, ok)
	assert.Equal(t, "a.txt", active.Name)
	assert.Equal(t, int64(4), active.SizeBytes)
	assert.Equal(t, SourceDropped, active.Source)
	require.Len(t, rec.files, 1)
	assert.Equal(t, active, rec.files[0])
}

func TestDropSkipsLinksBeforeFirstFile(t *testing.T) {
	c := New()
	link, err := storage.ParseURI("https://example.com")
	require.NoError(t, err)
	file := writeFile(t, "doc.txt", []byte("x"))

	require.NoError(t, c.Drop([]fyne.URI{link, file}))
	active, ok := c.Active()
	require.True(t, ok)
	assert.Equal(t, "doc.txt", active.Name)
}

func TestClickAndDropShareSignal(t *testing.T) {
	c := New()
	rec := &recorder{}
	c.OnFileChosen(rec.record)

	require.NoError(t, c.Choose(writeFile(t, "one.txt", []byte("1"))))
	require.NoError(t, c.Drop([]fyne.URI{writeFile(t, "two.txt", []byte("22"))}))

	require.Len(t, rec.files, 2)
	assert.Equal(t, SourceClicked, rec.files[0].Source)
	assert.Equal(t, SourceDropped, rec.files[1].Source)

	active, _ := c.Active()
	assert.Equal(t, "two.txt", active.Name, "new selection replaces the old one")
}

func TestDragActive(t *testing.T) {
	c := New()
	var states []bool
	c.OnDragActive(func(v bool) { states = append(states, v) })

	c.DragOver()
	c.DragOver()
	assert.True(t, c.Dragging())
	c.DragLeave()
	assert.False(t, c.Dragging())

	c.DragOver()
	require.NoError(t, c.Drop(nil))
	assert.False(t, c.Dragging(), "drop clears the highlight")

	assert.Equal(t, []bool{true, false, true, false}, states)
	_, ok := c.Active()
	assert.False(t, ok, "drag events never stage a file")
}

func TestUnsubscribeStopsSignal(t *testing.T) {
	c := New()
	rec := &recorder{}
	sub := c.OnFileChosen(rec.record)
	sub.Unsubscribe()

	require.NoError(t, c.Choose(writeFile(t, "a.txt", []byte("a"))))
	assert.Empty(t, rec.files)
}

func TestReset(t *testing.T) {
	c := New()
	require.NoError(t, c.Choose(writeFile(t, "a.txt", []byte("a"))))
	c.Reset()
	_, ok := c.Active()
	assert.False(t, ok)
}

func TestPolicyRejectionKeepsSelection(t *testing.T) {
	c := New(WithPolicy(DefaultPolicy()))
	rec := &recorder{}
	c.OnFileChosen(rec.record)

	require.NoError(t, c.Choose(writeFile(t, "ok.pdf", []byte("%PDF-1.4\n"))))

	err := c.Drop([]fyne.URI{writeFile(t, "setup.exe", []byte("MZ"))})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.True(t, errors.Is(err, errors.ErrUnsupportedType))

	err = c.Choose(writeFile(t, "unknown.xyz", []byte("x")))
	assert.True(t, errors.Is(err, errors.ErrUnsupportedType))

	active, _ := c.Active()
	assert.Equal(t, "ok.pdf", active.Name)
	assert.Len(t, rec.files, 1)
}

func TestChooseRejectsRemoteURI(t *testing.T) {
	c := New()
	rec := &recorder{}
	c.OnFileChosen(rec.record)

	require.NoError(t, c.Choose(writeFile(t, "local.txt", []byte("hello"))))

	remote, err := storage.ParseURI("https://example.com/report.pdf")
	require.NoError(t, err)
	err = c.Choose(remote)
	assert.True(t, errors.IsValidation(err))
	assert.True(t, errors.Is(err, errors.ErrNotAFile))
	var fe *errors.FileError
	assert.False(t, errors.As(err, &fe), "the remote path must never be stat'ed")

	active, _ := c.Active()
	assert.Equal(t, "local.txt", active.Name)
	assert.Len(t, rec.files, 1)
}

func TestPolicyCheck(t *testing.T) {
	p := &Policy{Denied: []string{"sh"}, MaxSize: 10}

	assert.NoError(t, p.Check("anything.bin", 10))
	assert.True(t, errors.Is(p.Check("run.SH", 1), errors.ErrUnsupportedType))
	assert.True(t, errors.Is(p.Check("big.bin", 11), errors.ErrFileTooLarge))

	var nilPolicy *Policy
	assert.NoError(t, nilPolicy.Check("run.sh", 1<<40))
}

func TestStat(t *testing.T) {
	t.Run("sniffed type", func(t *testing.T) {
		u := writeFile(t, "notes.txt", []byte("plain text content"))
		f, err := Stat(u.Path())
		require.NoError(t, err)
		assert.Equal(t, "text/plain", f.MimeOrExtension)
	})

	t.Run("extension fallback", func(t *testing.T) {
		u := writeFile(t, "blob.dat", []byte{0x00, 0x9f, 0x00, 0x01, 0xfe, 0x00})
		f, err := Stat(u.Path())
		require.NoError(t, err)
		assert.Equal(t, ".dat", f.MimeOrExtension)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := Stat(t.TempDir())
		assert.True(t, errors.Is(err, errors.ErrNotAFile))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := Stat(filepath.Join(t.TempDir(), "nope"))
		var fe *errors.FileError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "stat", fe.Op)
	})
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "gz", Extension("a.tar.gz"))
	assert.Equal(t, "pdf", Extension("A.PDF"))
	assert.Equal(t, "", Extension("Makefile"))
}
