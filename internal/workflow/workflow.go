// Package workflow is the upload, render and export contract without a UI
// loop. The TUI drives the same steps through bubbletea messages; the CLI
// drives them through Runner.
package workflow

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jask/guidegen/internal/backend"
	"github.com/jask/guidegen/internal/download"
	"github.com/jask/guidegen/internal/guides"
	"github.com/jask/guidegen/internal/progress"
)

// User-facing texts shared by every front end.
const (
	StatusDone        = "✅ Guide Generated!"
	StatusFailed      = "❌ Error generating guide"
	NoticeGenerated   = "Guides generated successfully!"
	noticeErrorPrefix = "Error: "
)

// ErrorNotice formats a failure for a notification.
func ErrorNotice(err error) string { return noticeErrorPrefix + err.Error() }

// Backend is the part of backend.Client the controllers use.
type Backend interface {
	Upload(ctx context.Context, filename string, r io.Reader) ([]guides.Guide, error)
	Export(ctx context.Context, kind backend.ExportKind) ([]byte, error)
}

// Runner executes the contract step by step for a non-interactive caller.
type Runner struct {
	Backend  Backend
	Session  *guides.Session
	Saver    download.Saver
	Progress *progress.Simulator
	Logger   *zap.Logger

	// Status receives progress bar updates; Notify receives notices.
	Status func(percent int, text string)
	Notify func(text string, isErr bool)
}

func (r *Runner) status(percent int, text string) {
	if r.Status != nil {
		r.Status(percent, text)
	}
}

func (r *Runner) notify(text string, isErr bool) {
	if r.Notify != nil {
		r.Notify(text, isErr)
	}
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// Generate uploads the CSV at path and stores the returned guides in the
// session. A blank path fails locally with backend.ErrNoFile.
func (r *Runner) Generate(ctx context.Context, path string) ([]guides.Guide, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		r.notify(backend.ErrNoFile.Error(), true)
		return nil, backend.ErrNoFile
	}

	r.status(0, progress.Label(0))
	gs, err := r.upload(ctx, path)
	if err != nil {
		r.status(r.Progress.Percent(), StatusFailed)
		r.logger().Error("upload failed", zap.String("op", "upload"), zap.String("file", path), zap.Error(err))
		r.notify(ErrorNotice(err), true)
		return nil, err
	}

	r.Session.Replace(gs)
	r.Progress.Complete()
	r.status(100, StatusDone)
	r.logger().Info("guides generated", zap.String("file", path), zap.Int("count", r.Session.Len()))
	r.notify(NoticeGenerated, false)
	return r.Session.Guides(), nil
}

// upload owns the progress timer for the duration of the request.
func (r *Runner) upload(ctx context.Context, path string) ([]guides.Guide, error) {
	stop := r.Progress.Run(func(p int) { r.status(p, progress.Label(p)) })
	defer stop()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	return r.Backend.Upload(ctx, filepath.Base(path), f)
}

// Export downloads one export and saves it, returning the written path.
func (r *Runner) Export(ctx context.Context, kind backend.ExportKind) (string, error) {
	if err := r.Session.RequireGenerated(); err != nil {
		r.notify(err.Error(), true)
		return "", err
	}
	path, err := Download(ctx, r.Backend, r.Saver, kind)
	if err != nil {
		r.logger().Error("export failed", zap.String("op", "export"), zap.Stringer("kind", kind), zap.Error(err))
		r.notify(ErrorNotice(err), true)
		return "", err
	}
	r.logger().Info("export saved", zap.Stringer("kind", kind), zap.String("path", path))
	r.notify(kind.SuccessMessage(), false)
	return path, nil
}

// Download fetches an export and writes it under its browser file name.
// Nothing is written when the fetch fails.
func Download(ctx context.Context, b Backend, s download.Saver, kind backend.ExportKind) (string, error) {
	data, err := b.Export(ctx, kind)
	if err != nil {
		return "", err
	}
	return s.Save(kind.Filename(), data)
}
