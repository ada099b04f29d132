package session

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gravitrone/novel-matrix/internal/export"
	"github.com/gravitrone/novel-matrix/internal/host"
	"github.com/gravitrone/novel-matrix/internal/matrix"
	"github.com/gravitrone/novel-matrix/internal/novel"
)

// ErrPersist wraps any failure to write a commit back to the project.
var ErrPersist = errors.New("could not save project")

// Session binds one project to the grid being edited.
type Session struct {
	project host.Project
	novel   *novel.Novel
	grid    *matrix.Grid
	log     *slog.Logger
}

// Open loads the project and builds its grid.
func Open(p host.Project, log *slog.Logger) (*Session, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Session{project: p, log: log}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload discards pending edits and reads the project again.
func (s *Session) Reload() error {
	n, err := s.Fetch()
	if err != nil {
		return err
	}
	s.Replace(n)
	return nil
}

// Fetch reads a fresh snapshot without touching the session, so it can run
// off the UI goroutine.
func (s *Session) Fetch() (*novel.Novel, error) {
	n, err := s.project.Load()
	if err != nil {
		s.log.Error("project load failed", "project", s.project.Name(), "err", err)
		return nil, fmt.Errorf("open %s: %w", s.project.Name(), err)
	}
	return n, nil
}

// Replace installs a fetched snapshot and rebuilds the grid from it.
func (s *Session) Replace(n *novel.Novel) {
	s.novel = n
	s.grid = matrix.Load(n)

	labels := s.grid.Labels()
	s.log.Info("project opened",
		"project", s.project.Name(),
		"rows", len(labels.Rows),
		"arcs", len(labels.Arcs),
		"characters", len(labels.Characters),
		"locations", len(labels.Locations),
		"items", len(labels.Items),
		"subplot", labels.Subplot,
	)
}

// Name identifies the project for titles and messages.
func (s *Session) Name() string {
	if s.novel != nil && strings.TrimSpace(s.novel.Title) != "" {
		return s.novel.Title
	}
	return s.project.Name()
}

// Grid returns the grid under edit.
func (s *Session) Grid() *matrix.Grid {
	return s.grid
}

// Labels returns the current row and column labels.
func (s *Session) Labels() matrix.Labels {
	return s.grid.Labels()
}

// Dirty reports unapplied edits.
func (s *Session) Dirty() bool {
	return s.grid.Dirty()
}

// Toggle flips one cell and returns its new value.
func (s *Session) Toggle(row string, c matrix.Category, col string) bool {
	v := s.grid.Toggle(row, c, col)
	s.log.Debug("cell toggled", "row", row, "category", c.String(), "col", col, "value", v)
	return v
}

// Changes lists what Apply would write.
func (s *Session) Changes() []matrix.Change {
	return matrix.Changes(s.grid, s.novel)
}

// Pending is a commit staged into a copy of the project.
type Pending struct {
	staged  *novel.Novel
	changes int
}

// Changes is the number of facet changes the commit carries.
func (p *Pending) Changes() int {
	return p.changes
}

// Stage commits the grid into a copy of the project. The live project is
// not touched.
func (s *Session) Stage() (*Pending, error) {
	changes := len(s.Changes())
	staged := s.novel.Clone()
	if err := matrix.Commit(s.grid, staged); err != nil {
		s.log.Error("commit failed", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return &Pending{staged: staged, changes: changes}, nil
}

// Persist writes a staged commit to the project. It reads only the staged
// copy, so it can run off the UI goroutine.
func (s *Session) Persist(p *Pending) error {
	if err := s.project.Save(p.staged); err != nil {
		s.log.Error("commit failed", "project", s.project.Name(), "err", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// Accept makes a persisted commit the live project and rebuilds the grid,
// which clears the dirty flag.
func (s *Session) Accept(p *Pending) {
	s.novel = p.staged
	s.grid = matrix.Load(p.staged)
	s.log.Info("commit applied", "project", s.project.Name(), "changes", p.changes)
}

// Apply stages, persists and accepts in one step. On any failure the live
// project and the grid, dirty flag included, are unchanged.
func (s *Session) Apply() error {
	p, err := s.Stage()
	if err != nil {
		return err
	}
	if err := s.Persist(p); err != nil {
		return err
	}
	s.Accept(p)
	return nil
}

// Export writes the current grid, pending edits included, as a CSV table.
func (s *Session) Export(path string, opts export.Options) error {
	if err := export.Write(path, export.Format(s.grid, opts), opts); err != nil {
		s.log.Error("export failed", "path", path, "err", err)
		return err
	}
	s.log.Info("export written", "path", path, "rows", len(s.grid.Labels().Rows))
	return nil
}

// DefaultExportPath proposes an export file name: next to a project file, or
// in the working directory named after the project title for a bridge.
func (s *Session) DefaultExportPath(suffix string) string {
	if fp, ok := s.project.(*host.FileProject); ok {
		return export.DefaultPath(fp.Name(), suffix)
	}
	return filepath.Join(".", titleStem(s.novel.Title)+suffix+export.Extension)
}

func titleStem(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "project"
	}
	return b.String()
}
