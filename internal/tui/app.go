package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	bprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/guidegen/internal/download"
	"github.com/jask/guidegen/internal/guides"
	"github.com/jask/guidegen/internal/picker"
	"github.com/jask/guidegen/internal/progress"
	"github.com/jask/guidegen/internal/toast"
	"github.com/jask/guidegen/internal/workflow"
)

// App is the interactive upload-and-render controller.
type App struct {
	ctx     context.Context
	backend workflow.Backend
	session *guides.Session
	saver   download.Saver
	logger  *zap.Logger
	server  string

	deck   guides.Deck
	toasts *toast.Stack
	prog   *progress.Simulator
	bar    bprogress.Model
	spin   spinner.Model
	keys   keyMap

	fileInput   textinput.Model
	searchInput textinput.Model
	picker      *picker.Picker

	focus        focusZone
	cursor       int // position within deck.Visible()
	busy         bool
	showProgress bool
	status       string
	statusErr    bool
	lastSaved    string
	width        int
	height       int
}

// Deps is everything the App needs from the outside.
type Deps struct {
	Backend  workflow.Backend
	Session  *guides.Session
	Saver    download.Saver
	Logger   *zap.Logger
	Progress *progress.Simulator
	ToastTTL time.Duration
	Server   string
	// InitialPath pre-fills the file input.
	InitialPath string
}

type focusZone int

const (
	focusFile focusZone = iota
	focusSearch
	focusCards
	focusZones
)

// New builds the App with the file input focused. Missing deps get defaults.
func New(ctx context.Context, d Deps) *App {
	if d.Session == nil {
		d.Session = guides.NewSession()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Progress == nil {
		d.Progress = progress.New(800*time.Millisecond, 10, 90)
	}
	if d.ToastTTL <= 0 {
		d.ToastTTL = 3 * time.Second
	}

	fi := textinput.New()
	fi.Prompt = "CSV file: "
	fi.Placeholder = "type a path, drop a file here, or ctrl+o to pick"
	fi.SetValue(d.InitialPath)
	fi.CursorEnd()
	fi.Focus()

	si := textinput.New()
	si.Prompt = "Search: "
	si.Placeholder = "filter guides"

	return &App{
		ctx:         ctx,
		backend:     d.Backend,
		session:     d.Session,
		saver:       d.Saver,
		logger:      d.Logger,
		server:      d.Server,
		toasts:      toast.NewStack(d.ToastTTL),
		prog:        d.Progress,
		bar:         bprogress.New(bprogress.WithDefaultGradient(), bprogress.WithoutPercentage(), bprogress.WithWidth(40)),
		spin:        spinner.New(spinner.WithSpinner(spinner.Dot)),
		keys:        newKeyMap(),
		fileInput:   fi,
		searchInput: si,
		focus:       focusFile,
	}
}

// Init starts the cursor blink.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update applies one message; the App is mutated in place and returned.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.bar.Width = min(max(m.Width-30, 10), 60)
		return a, nil
	case progress.TickMsg:
		changed, cmd := a.prog.Update(m)
		if changed {
			a.status = a.prog.Label()
		}
		return a, cmd
	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(m)
		return a, cmd
	case toast.ExpireMsg:
		a.toasts.Expire(m.ID)
		return a, nil
	case uploadDoneMsg:
		return a, a.finishUpload(m)
	case exportDoneMsg:
		return a, a.finishExport(m)
	case tea.KeyMsg:
		return a.handleKey(m)
	}
	return a, a.updateFocusedInput(msg)
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(m, a.keys.Quit) {
		return a, tea.Quit
	}
	// the overlay swallows input until the upload settles
	if a.busy {
		return a, nil
	}
	if a.picker != nil {
		return a, a.handlePickerKey(m)
	}
	if m.Paste && a.focus != focusSearch {
		return a, a.drop(string(m.Runes))
	}

	switch {
	case key.Matches(m, a.keys.Submit):
		return a, a.submit()
	case key.Matches(m, a.keys.ExportJSON):
		return a, a.exportJSON()
	case key.Matches(m, a.keys.ExportTXT):
		return a, a.exportTXT()
	case key.Matches(m, a.keys.Picker):
		return a, a.openPicker()
	case key.Matches(m, a.keys.NextFocus):
		return a, a.setFocus((a.focus + 1) % focusZones)
	case key.Matches(m, a.keys.PrevFocus):
		return a, a.setFocus((a.focus + focusZones - 1) % focusZones)
	}

	switch a.focus {
	case focusFile:
		if m.Type == tea.KeyEnter {
			return a, a.submit()
		}
		var cmd tea.Cmd
		a.fileInput, cmd = a.fileInput.Update(m)
		return a, cmd
	case focusSearch:
		if key.Matches(m, a.keys.Leave) {
			return a, a.setFocus(focusCards)
		}
		return a, a.updateSearch(m)
	default:
		return a, a.handleCardKey(m)
	}
}

func (a *App) handleCardKey(m tea.KeyMsg) tea.Cmd {
	visible := a.deck.Visible()
	switch {
	case m.String() == "q":
		return tea.Quit
	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.cursor < len(visible)-1 {
			a.cursor++
		}
	case key.Matches(m, a.keys.Toggle):
		if a.cursor < len(visible) {
			a.deck.Toggle(visible[a.cursor])
		}
	case key.Matches(m, a.keys.Search):
		return a.setFocus(focusSearch)
	}
	return nil
}

func (a *App) handlePickerKey(m tea.KeyMsg) tea.Cmd {
	res := a.picker.HandleKey(m.String())
	switch res.Action {
	case picker.ActionSelected:
		a.picker = nil
		a.fileInput.SetValue(res.Path)
		a.fileInput.CursorEnd()
		return a.setFocus(focusFile)
	case picker.ActionCancelled:
		a.picker = nil
	}
	return nil
}

// updateSearch feeds the search input and refilters whenever its value changes.
func (a *App) updateSearch(msg tea.Msg) tea.Cmd {
	before := a.searchInput.Value()
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	if a.searchInput.Value() != before {
		a.applySearch()
	}
	return cmd
}

func (a *App) applySearch() {
	a.deck.Filter(a.searchInput.Value())
	a.clampCursor()
}

func (a *App) clampCursor() {
	n := len(a.deck.Visible())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.focus {
	case focusFile:
		a.fileInput, cmd = a.fileInput.Update(msg)
	case focusSearch:
		a.searchInput, cmd = a.searchInput.Update(msg)
	}
	return cmd
}

func (a *App) setFocus(f focusZone) tea.Cmd {
	a.focus = f
	a.fileInput.Blur()
	a.searchInput.Blur()
	switch f {
	case focusFile:
		return a.fileInput.Focus()
	case focusSearch:
		return a.searchInput.Focus()
	}
	return nil
}

// dropActive mirrors the drag-over highlight of the drop zone.
func (a *App) dropActive() bool {
	return a.focus == focusFile && !a.busy && a.picker == nil
}

// drop assigns the first dropped path to the file input; submitting stays a
// separate step.
func (a *App) drop(text string) tea.Cmd {
	path, ok := picker.FirstDropped(text)
	if !ok {
		return nil
	}
	a.fileInput.SetValue(path)
	a.fileInput.CursorEnd()
	return a.setFocus(focusFile)
}

func (a *App) openPicker() tea.Cmd {
	typed := strings.TrimSpace(a.fileInput.Value())
	paths, err := picker.Discover(picker.SearchDir(typed))
	if err != nil {
		a.logger.Warn("list csv files", zap.Error(err))
		return a.notify(workflow.ErrorNotice(err), true)
	}
	a.picker = picker.New(paths, typed)
	return nil
}

func (a *App) notify(text string, isErr bool) tea.Cmd {
	_, cmd := a.toasts.Push(text, isErr)
	return cmd
}
