package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/guidegen/internal/backend"
	"github.com/jask/guidegen/internal/guides"
	"github.com/jask/guidegen/internal/workflow"
)

type uploadDoneMsg struct {
	path   string
	guides []guides.Guide
	err    error
}

type exportDoneMsg struct {
	kind backend.ExportKind
	path string
	err  error
}

// submit validates the file input, shows the overlay and progress, and
// starts the upload.
func (a *App) submit() tea.Cmd {
	path := strings.TrimSpace(a.fileInput.Value())
	if path == "" {
		return a.notify(backend.ErrNoFile.Error(), true)
	}
	a.busy = true
	a.showProgress = true
	a.statusErr = false
	tick := a.prog.Start()
	a.status = a.prog.Label()
	return tea.Batch(tick, a.spin.Tick, a.uploadCmd(path))
}

func (a *App) uploadCmd(path string) tea.Cmd {
	ctx, b := a.ctx, a.backend
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return uploadDoneMsg{path: path, err: fmt.Errorf("open %s: %w", filepath.Base(path), err)}
		}
		defer f.Close()
		gs, err := b.Upload(ctx, filepath.Base(path), f)
		return uploadDoneMsg{path: path, guides: gs, err: err}
	}
}

// finishUpload is the single completion point of an upload. The progress
// timer is stopped here whatever the outcome.
func (a *App) finishUpload(m uploadDoneMsg) tea.Cmd {
	defer a.prog.Stop()
	a.busy = false

	if m.err != nil {
		a.status = workflow.StatusFailed
		a.statusErr = true
		a.logger.Error("upload failed", zap.String("op", "upload"), zap.String("file", m.path), zap.Error(m.err))
		return a.notify(workflow.ErrorNotice(m.err), true)
	}

	a.session.Replace(m.guides)
	a.prog.Complete()
	a.status = workflow.StatusDone
	a.deck.Render(a.session.Guides())
	a.cursor = 0
	a.logger.Info("guides generated", zap.String("file", m.path), zap.Int("count", a.session.Len()))
	return a.notify(workflow.NoticeGenerated, false)
}

func (a *App) exportJSON() tea.Cmd { return a.export(backend.ExportJSON) }
func (a *App) exportTXT() tea.Cmd  { return a.export(backend.ExportTXT) }

func (a *App) export(kind backend.ExportKind) tea.Cmd {
	if err := a.session.RequireGenerated(); err != nil {
		return a.notify(err.Error(), true)
	}
	ctx, b, s := a.ctx, a.backend, a.saver
	return func() tea.Msg {
		path, err := workflow.Download(ctx, b, s, kind)
		return exportDoneMsg{kind: kind, path: path, err: err}
	}
}

func (a *App) finishExport(m exportDoneMsg) tea.Cmd {
	if m.err != nil {
		a.logger.Error("export failed", zap.String("op", "export"), zap.Stringer("kind", m.kind), zap.Error(m.err))
		return a.notify(workflow.ErrorNotice(m.err), true)
	}
	a.lastSaved = m.path
	a.logger.Info("export saved", zap.Stringer("kind", m.kind), zap.String("path", m.path))
	return a.notify(m.kind.SuccessMessage(), false)
}
