package application

import (
	"strconv"
	"time"

	"github.com/oksasatya/go-portfolio-builder/internal/domain/entity"
)

// Store holds the live builder state and applies transitions to it. It is
// not safe for concurrent use; PortfolioService serializes access.
type Store struct {
	content  entity.PortfolioContent
	selected []entity.SectionType
	editing  entity.SectionType

	now    func() time.Time
	lastID int64
}

type StoreOption func(*Store)

// WithClock replaces the clock used for project identifiers.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func NewStore(initial entity.Snapshot, opts ...StoreOption) *Store {
	s := &Store{now: time.Now}
	for _, o := range opts {
		o(s)
	}
	s.Replace(initial)
	return s
}

// Snapshot returns a deep copy of the content and selection.
func (s *Store) Snapshot() entity.Snapshot {
	return entity.Snapshot{Content: s.content, SelectedSections: s.selected}.Clone()
}

func (s *Store) Content() entity.PortfolioContent { return s.content.Clone() }

func (s *Store) SelectedSections() []entity.SectionType {
	out := make([]entity.SectionType, len(s.selected))
	copy(out, s.selected)
	return out
}

// EditingSection is empty when no editor is open.
func (s *Store) EditingSection() entity.SectionType { return s.editing }

// UpdateSection merges the patch into its section. It never fails.
func (s *Store) UpdateSection(p entity.SectionPatch) entity.PortfolioContent {
	s.content = p.Apply(s.content)
	return s.Content()
}

// AddProject appends in with a fresh identifier and returns the stored
// project.
func (s *Store) AddProject(in entity.ProjectInput) entity.Project {
	p := in.WithID(s.nextProjectID())
	if p.Tags == nil {
		p.Tags = []string{}
	}
	projects := make([]entity.Project, 0, len(s.content.Projects.Projects)+1)
	projects = append(projects, s.content.Projects.Projects...)
	s.content.Projects.Projects = append(projects, p)
	return p
}

// UpdateProject reports false and leaves the state alone when no project
// has id.
func (s *Store) UpdateProject(id string, patch entity.ProjectPatch) bool {
	i := s.content.Projects.FindProject(id)
	if i < 0 {
		return false
	}
	projects := append([]entity.Project(nil), s.content.Projects.Projects...)
	projects[i] = patch.Apply(projects[i])
	s.content.Projects.Projects = projects
	return true
}

// DeleteProject reports false when no project has id.
func (s *Store) DeleteProject(id string) bool {
	i := s.content.Projects.FindProject(id)
	if i < 0 {
		return false
	}
	old := s.content.Projects.Projects
	projects := make([]entity.Project, 0, len(old)-1)
	projects = append(projects, old[:i]...)
	s.content.Projects.Projects = append(projects, old[i+1:]...)
	return true
}

// SetSelectedSections replaces the selection and its order. The editor is
// closed when its section is no longer selected.
func (s *Store) SetSelectedSections(tags []entity.SectionType) []entity.SectionType {
	s.selected = entity.NormalizeSelection(tags)
	if s.editing != "" && !entity.ContainsSection(s.selected, s.editing) {
		s.editing = ""
	}
	return s.SelectedSections()
}

// SetEditingSection opens the editor for tag. Passing the section that is
// already open, or an empty tag, closes it. A section that is not selected
// cannot be edited and leaves the state unchanged.
func (s *Store) SetEditingSection(tag entity.SectionType) entity.SectionType {
	switch {
	case tag == "" || tag == s.editing:
		s.editing = ""
	case tag.Valid() && entity.ContainsSection(s.selected, tag):
		s.editing = tag
	}
	return s.editing
}

// ResetToDefaults restores the default document and selection. It does not
// touch durable storage.
func (s *Store) ResetToDefaults() {
	s.Replace(entity.DefaultSnapshot())
}

// Replace swaps in snap wholesale, as done by import, undo and redo.
func (s *Store) Replace(snap entity.Snapshot) {
	snap = snap.Clone()
	s.content = snap.Content
	s.selected = entity.NormalizeSelection(snap.SelectedSections)
	if s.editing != "" && !entity.ContainsSection(s.selected, s.editing) {
		s.editing = ""
	}
}

// nextProjectID issues millisecond timestamps, bumped past any identifier
// already issued or present so they never repeat within the store.
func (s *Store) nextProjectID() string {
	ts := s.now().UnixMilli()
	if ts <= s.lastID {
		ts = s.lastID + 1
	}
	for s.content.Projects.FindProject(strconv.FormatInt(ts, 10)) >= 0 {
		ts++
	}
	s.lastID = ts
	return strconv.FormatInt(ts, 10)
}
