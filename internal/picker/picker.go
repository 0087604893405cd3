// Package picker finds CSV files for the upload input and parses paths
// dropped onto the terminal.
package picker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type Action int

const (
	ActionNone Action = iota
	ActionMoved
	ActionSelected
	ActionCancelled
)

type Result struct {
	Action Action
	Path   string
}

// Picker is a filterable list of candidate CSV paths.
type Picker struct {
	paths    []string
	filtered []string
	query    string
	cursor   int
}

// New returns a picker over paths with an initial query.
func New(paths []string, query string) *Picker {
	p := &Picker{paths: append([]string(nil), paths...), query: query}
	p.rebuild()
	return p
}

func (p *Picker) Query() string { return p.query }
func (p *Picker) Cursor() int   { return p.cursor }

// Items returns the visible candidates, best match first.
func (p *Picker) Items() []string { return append([]string(nil), p.filtered...) }

// SetQuery refilters and moves the highlight back to the best match.
func (p *Picker) SetQuery(q string) {
	p.query = q
	p.cursor = 0
	p.rebuild()
}

// Current is the highlighted candidate.
func (p *Picker) Current() (string, bool) {
	if len(p.filtered) == 0 {
		return "", false
	}
	idx := min(max(p.cursor, 0), len(p.filtered)-1)
	return p.filtered[idx], true
}

// HandleKey applies one key press by name.
func (p *Picker) HandleKey(keyName string) Result {
	switch keyName {
	case "up", "ctrl+p":
		if p.cursor > 0 {
			p.cursor--
			return Result{Action: ActionMoved}
		}
	case "down", "ctrl+n":
		if p.cursor < len(p.filtered)-1 {
			p.cursor++
			return Result{Action: ActionMoved}
		}
	case "enter":
		if path, ok := p.Current(); ok {
			return Result{Action: ActionSelected, Path: path}
		}
	case "esc":
		return Result{Action: ActionCancelled}
	case "backspace":
		if r := []rune(p.query); len(r) > 0 {
			p.SetQuery(string(r[:len(r)-1]))
		}
	default:
		if len([]rune(keyName)) == 1 && keyName[0] >= 32 {
			p.SetQuery(p.query + keyName)
		}
	}
	return Result{Action: ActionNone}
}

type scored struct {
	path  string
	score int
	dist  int
}

func (p *Picker) rebuild() {
	q := strings.ToLower(strings.TrimSpace(filepath.Base(p.query)))
	if q == "." {
		q = ""
	}
	rows := make([]scored, 0, len(p.paths))
	for _, path := range p.paths {
		base := strings.ToLower(filepath.Base(path))
		ok, score := fuzzyScore(base, q)
		if !ok {
			continue
		}
		rows = append(rows, scored{path: path, score: score, dist: levenshtein.ComputeDistance(base, q)})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].score != rows[j].score {
			return rows[i].score > rows[j].score
		}
		if rows[i].dist != rows[j].dist {
			return rows[i].dist < rows[j].dist
		}
		return rows[i].path < rows[j].path
	})
	p.filtered = p.filtered[:0]
	for _, r := range rows {
		p.filtered = append(p.filtered, r.path)
	}
	if p.cursor >= len(p.filtered) {
		p.cursor = len(p.filtered) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// fuzzyScore matches query as a subsequence of label. Prefix and contiguous
// runs score higher.
func fuzzyScore(label, query string) (bool, int) {
	if query == "" {
		return true, 0
	}
	matchIdx := make([]int, 0, len(query))
	from := 0
	for i := 0; i < len(query); i++ {
		j := strings.IndexByte(label[from:], query[i])
		if j < 0 {
			return false, 0
		}
		matchIdx = append(matchIdx, from+j)
		from += j + 1
	}
	score := len(query)
	if matchIdx[0] == 0 {
		score += 10
	}
	for i := 1; i < len(matchIdx); i++ {
		if matchIdx[i] == matchIdx[i-1]+1 {
			score += 3
		}
	}
	if label == query || strings.TrimSuffix(label, ".csv") == query {
		score += 20
	}
	return true, score
}

// Discover lists CSV files (by extension, any case) directly inside dir.
func Discover(dir string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// SearchDir is the directory the picker should list for a typed path.
func SearchDir(typed string) string {
	typed = strings.TrimSpace(typed)
	if typed == "" {
		return "."
	}
	if info, err := os.Stat(typed); err == nil && info.IsDir() {
		return typed
	}
	return filepath.Dir(typed)
}
