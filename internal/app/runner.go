package app

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	cerrors "Cryptbook/internal/errors"
	"Cryptbook/internal/log"
	"Cryptbook/internal/util"
)

// ErrCancelled is returned when the reporter asks a job to stop.
var ErrCancelled = errors.New("operation cancelled")

// reportEvery limits progress callbacks to one per chunk.
const reportEvery = 1 * util.MiB

// progressReader reports how much of a known total has been read.
type progressReader struct {
	ctx      context.Context
	r        io.Reader
	total    int64
	done     int64
	next     int64
	start    time.Time
	reporter ProgressReporter
}

func (p *progressReader) Read(b []byte) (int, error) {
	if err := p.ctx.Err(); err != nil {
		return 0, err
	}
	if p.reporter.IsCancelled() {
		return 0, ErrCancelled
	}
	n, err := p.r.Read(b)
	p.done += int64(n)
	if p.done >= p.next || err == io.EOF {
		p.next = p.done + reportEvery
		p.report()
	}
	return n, err
}

func (p *progressReader) report() {
	fraction := float32(1)
	if p.total > 0 {
		fraction = min(float32(float64(p.done)/float64(p.total)), 1)
	}
	info := percentInfo(fraction) + " (ETA " + util.ETA(float64(fraction), time.Since(p.start)) + ")"
	p.reporter.SetProgress(fraction, info)
	p.reporter.Update()
}

// Fingerprint hashes the file at path while reporting real progress.
// It honours ctx and the reporter's cancel flag.
func Fingerprint(ctx context.Context, path string, r ProgressReporter) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", cerrors.NewFileError("open", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", cerrors.NewFileError("stat", path, err)
	}

	r.SetCanCancel(true)
	defer r.SetCanCancel(false)
	r.SetStatus("Fingerprinting " + info.Name())
	r.SetProgress(0, percentInfo(0))

	pr := &progressReader{ctx: ctx, r: f, total: info.Size(), start: time.Now(), reporter: r}
	sum, err := util.Fingerprint(pr)
	if err != nil {
		log.Warn("fingerprint aborted", log.String("path", path), log.Err(err))
		r.SetStatus("Cancelled")
		return "", err
	}
	r.SetProgress(1, percentInfo(1))
	r.SetStatus("Ready")
	log.Debug("fingerprint done", log.String("path", path), log.Int64("bytes", pr.done))
	return sum, nil
}
