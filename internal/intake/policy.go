package intake

import (
	"fmt"
	"path/filepath"
	"strings"

	"Cryptbook/internal/errors"
	"Cryptbook/internal/util"

	"github.com/samber/lo"
)

// DefaultMaxSize matches the upload limit of the encryption backend.
const DefaultMaxSize = 500 * util.MiB

// DefaultAllowed lists the extensions the backend accepts.
var DefaultAllowed = []string{
	"txt", "pdf", "png", "jpg", "jpeg", "gif", "zip",
	"tar", "gz", "bz2", "doc", "docx", "xls", "xlsx",
	"mp3", "mp4", "avi", "mov",
}

// DefaultDenied lists executable types that are always refused.
var DefaultDenied = []string{"exe", "sh", "bat", "cmd", "msi"}

// Policy decides whether a file may be staged.
// An empty Allowed list accepts every extension that is not denied.
// MaxSize <= 0 disables the size check.
type Policy struct {
	Allowed []string
	Denied  []string
	MaxSize int64
}

// DefaultPolicy returns the backend's own acceptance rules.
func DefaultPolicy() *Policy {
	return &Policy{
		Allowed: DefaultAllowed,
		Denied:  DefaultDenied,
		MaxSize: DefaultMaxSize,
	}
}

// Extension returns the lower-cased text after the last dot of name,
// without the dot, or "" when there is none.
func Extension(name string) string {
	ext := filepath.Ext(name)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Check validates a candidate by name and size.
func (p *Policy) Check(name string, size int64) error {
	if p == nil {
		return nil
	}
	ext := Extension(name)
	if lo.Contains(p.Denied, ext) {
		return errors.NewValidationError("file", fmt.Sprintf("unsupported file type: .%s", ext), errors.ErrUnsupportedType)
	}
	if len(p.Allowed) > 0 && !lo.Contains(p.Allowed, ext) {
		return errors.NewValidationError("file", fmt.Sprintf("unsupported file type: .%s", ext), errors.ErrUnsupportedType)
	}
	if p.MaxSize > 0 && size > p.MaxSize {
		return errors.NewValidationError("file",
			fmt.Sprintf("%s exceeds the %s limit", util.FormatFileSize(size), util.FormatFileSize(p.MaxSize)),
			errors.ErrFileTooLarge)
	}
	return nil
}
