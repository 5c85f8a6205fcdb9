package application

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-builder/internal/domain/entity"
)

const DefaultPersistTimeout = 2 * time.Second

// StateView is what editors and previews read after every change.
type StateView struct {
	Content          entity.PortfolioContent `json:"content"`
	SelectedSections []entity.SectionType    `json:"selectedSections"`
	EditingSection   *entity.SectionType     `json:"editingSection"`
	Theme            string                  `json:"theme,omitempty"`
	CanUndo          bool                    `json:"canUndo"`
	CanRedo          bool                    `json:"canRedo"`
}

// Stats are exported through expvar by the debug module.
type Stats struct {
	Mutations       uint64 `json:"mutations"`
	PersistFailures uint64 `json:"persist_failures"`
	Imports         uint64 `json:"imports"`
	Resets          uint64 `json:"resets"`
	HistoryLength   int    `json:"history_length"`
	HistoryPosition int    `json:"history_position"`
	Subscribers     int    `json:"subscribers"`
}

type ServiceOptions struct {
	HistoryLimit   int
	PersistTimeout time.Duration
	StoreOptions   []StoreOption
}

// PortfolioService owns the builder state for one editing session. Every
// operation runs under one lock: the store transition, the history record,
// the persistence write and the subscriber fan-out happen in that order
// before the next operation starts.
type PortfolioService struct {
	mu      sync.Mutex
	store   *Store
	history *History
	persist *Persistence
	logger  *logrus.Logger
	theme   string
	timeout time.Duration

	subs    map[int]func(StateView)
	nextSub int
	stats   Stats
}

// NewPortfolioService seeds the state from the persisted slot, or from the
// defaults when there is none.
func NewPortfolioService(ctx context.Context, persist *Persistence, logger *logrus.Logger, opts ServiceOptions) *PortfolioService {
	if opts.HistoryLimit == 0 {
		opts.HistoryLimit = DefaultHistoryLimit
	}
	if opts.PersistTimeout <= 0 {
		opts.PersistTimeout = DefaultPersistTimeout
	}
	snap, restored := persist.Load(ctx)
	theme, _ := persist.LoadTheme(ctx)
	if logger != nil {
		logger.WithFields(logrus.Fields{
			"restored": restored,
			"sections": len(snap.SelectedSections),
			"projects": len(snap.Content.Projects.Projects),
		}).Info("portfolio state loaded")
	}
	return &PortfolioService{
		store:   NewStore(snap, opts.StoreOptions...),
		history: NewHistory(snap, opts.HistoryLimit),
		persist: persist,
		logger:  logger,
		theme:   theme,
		timeout: opts.PersistTimeout,
		subs:    make(map[int]func(StateView)),
	}
}

func (s *PortfolioService) State() StateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Snapshot returns the current content and selection.
func (s *PortfolioService) Snapshot() entity.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Snapshot()
}

func (s *PortfolioService) UpdateSection(ctx context.Context, patch entity.SectionPatch) StateView {
	return s.mutate(ctx, func() { s.store.UpdateSection(patch) })
}

// AddProject returns the project as stored, with its new identifier.
func (s *PortfolioService) AddProject(ctx context.Context, in entity.ProjectInput) (entity.Project, StateView) {
	var p entity.Project
	view := s.mutate(ctx, func() { p = s.store.AddProject(in) })
	return p, view
}

// UpdateProject is a no-op when no project has id.
func (s *PortfolioService) UpdateProject(ctx context.Context, id string, patch entity.ProjectPatch) StateView {
	return s.mutate(ctx, func() { s.store.UpdateProject(id, patch) })
}

// DeleteProject is a no-op when no project has id.
func (s *PortfolioService) DeleteProject(ctx context.Context, id string) StateView {
	return s.mutate(ctx, func() { s.store.DeleteProject(id) })
}

func (s *PortfolioService) SetSelectedSections(ctx context.Context, tags []entity.SectionType) StateView {
	return s.mutate(ctx, func() { s.store.SetSelectedSections(tags) })
}

// SetEditingSection toggles the open editor. It is session state only: it
// is neither recorded nor persisted.
func (s *PortfolioService) SetEditingSection(tag entity.SectionType) StateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.store.EditingSection()
	if after := s.store.SetEditingSection(tag); after != before {
		s.notifyLocked()
	}
	return s.viewLocked()
}

// SetTheme stores the theme preference in its own slot. An empty theme
// removes it.
func (s *PortfolioService) SetTheme(ctx context.Context, theme string) StateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	if theme != s.theme {
		s.theme = theme
		s.saveThemeLocked(ctx)
		s.notifyLocked()
	}
	return s.viewLocked()
}

// Undo restores the previous snapshot; a no-op when there is none.
func (s *PortfolioService) Undo(ctx context.Context) StateView {
	return s.travel(ctx, s.history.Undo)
}

// Redo reapplies the next snapshot; a no-op when there is none.
func (s *PortfolioService) Redo(ctx context.Context) StateView {
	return s.travel(ctx, s.history.Redo)
}

// Reset restores the defaults, clears the history and removes every
// application-owned key from durable storage. Keys outside the
// application's namespace are left alone.
func (s *PortfolioService) Reset(ctx context.Context) StateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.ResetToDefaults()
	s.store.SetEditingSection("")
	s.history.Reset(s.store.Snapshot())
	s.theme = ""
	s.stats.Resets++

	c, cancel := s.persistContext(ctx)
	defer cancel()
	if err := s.persist.Clear(c); err != nil {
		s.stats.PersistFailures++
		s.logWarn(err, "clear saved state failed")
	}
	s.notifyLocked()
	return s.viewLocked()
}

// Import replaces the whole state with a validated document and starts a
// new history. A rejected document leaves the state untouched and the
// error is a *DocumentError.
func (s *PortfolioService) Import(ctx context.Context, data []byte) (StateView, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return s.State(), err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Replace(doc.Snapshot())
	s.store.SetEditingSection("")
	snap := s.store.Snapshot()
	s.history.Reset(snap)
	s.stats.Imports++
	s.saveLocked(ctx, snap)
	if doc.Theme != nil && *doc.Theme != s.theme {
		s.theme = *doc.Theme
		s.saveThemeLocked(ctx)
	}
	s.notifyLocked()
	return s.viewLocked(), nil
}

// Subscribe registers fn to receive the state after every change. fn runs
// while the service lock is held and must not block or call back into the
// service.
func (s *PortfolioService) Subscribe(fn func(StateView)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// WithState calls fn with the current state under the service lock, so no
// change lands while fn runs. fn follows the same rules as a subscriber.
func (s *PortfolioService) WithState(fn func(StateView)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.viewLocked())
}

func (s *PortfolioService) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stats
	st.HistoryLength = s.history.Len()
	st.HistoryPosition = s.history.Position()
	st.Subscribers = len(s.subs)
	return st
}

// mutate runs op and, when it changed the snapshot, records and persists
// the result. Persistence is best effort: a failed write is logged and the
// in-memory state stays authoritative.
func (s *PortfolioService) mutate(ctx context.Context, op func()) StateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.store.Snapshot()
	editing := s.store.EditingSection()
	op()
	after := s.store.Snapshot()
	if !reflect.DeepEqual(before, after) {
		s.history.Record(after)
		s.stats.Mutations++
		s.saveLocked(ctx, after)
		s.notifyLocked()
	} else if editing != s.store.EditingSection() {
		s.notifyLocked()
	}
	return s.viewLocked()
}

func (s *PortfolioService) travel(ctx context.Context, step func() (entity.Snapshot, bool)) StateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := step()
	if !ok {
		return s.viewLocked()
	}
	s.store.Replace(snap)
	s.saveLocked(ctx, snap)
	s.notifyLocked()
	return s.viewLocked()
}

func (s *PortfolioService) saveLocked(ctx context.Context, snap entity.Snapshot) {
	c, cancel := s.persistContext(ctx)
	defer cancel()
	if err := s.persist.Save(c, snap); err != nil {
		s.stats.PersistFailures++
		s.logWarn(err, "persist state failed")
	}
}

func (s *PortfolioService) saveThemeLocked(ctx context.Context) {
	c, cancel := s.persistContext(ctx)
	defer cancel()
	if err := s.persist.SaveTheme(c, s.theme); err != nil {
		s.stats.PersistFailures++
		s.logWarn(err, "persist theme failed")
	}
}

// persistContext detaches from the caller's cancellation so a client that
// goes away mid-request does not abort the write.
func (s *PortfolioService) persistContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
}

func (s *PortfolioService) notifyLocked() {
	if len(s.subs) == 0 {
		return
	}
	view := s.viewLocked()
	for _, fn := range s.subs {
		fn(view)
	}
}

func (s *PortfolioService) viewLocked() StateView {
	snap := s.store.Snapshot()
	v := StateView{
		Content:          snap.Content,
		SelectedSections: snap.SelectedSections,
		Theme:            s.theme,
		CanUndo:          s.history.CanUndo(),
		CanRedo:          s.history.CanRedo(),
	}
	if e := s.store.EditingSection(); e != "" {
		v.EditingSection = &e
	}
	return v
}

func (s *PortfolioService) logWarn(err error, msg string) {
	if s.logger != nil {
		s.logger.WithError(err).WithField("slot", s.persist.Key).Warn(msg)
	}
}
