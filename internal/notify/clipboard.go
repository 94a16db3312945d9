package notify

import (
	"fmt"

	"Cryptbook/internal/errors"
	"Cryptbook/internal/log"
)

const (
	copiedMessage     = "Copied to clipboard"
	copyFailedMessage = "Copy failed"
)

// ClipboardWriter puts text on the system clipboard.
type ClipboardWriter interface {
	WriteText(text string) error
}

// CopyToClipboard writes text and reports the outcome through n. A refused
// write becomes an error alert; it is not retried.
func CopyToClipboard(w ClipboardWriter, n Notifier, text string) error {
	if err := w.WriteText(text); err != nil {
		log.Error("clipboard write failed", log.Err(err))
		n.ShowAlert(copyFailedMessage, Error)
		if !errors.Is(err, errors.ErrClipboardDenied) {
			err = fmt.Errorf("%w: %v", errors.ErrClipboardDenied, err)
		}
		return err
	}
	n.ShowAlert(copiedMessage, Success)
	return nil
}
