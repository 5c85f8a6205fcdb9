package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-builder/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-builder/internal/domain/repository"
)

const (
	DefaultSlotKey = "portfolio-content"
	ThemeSlotKey   = "theme"
)

// Persistence writes the builder snapshot to one named slot of a
// StateRepository and reads it back at startup.
type Persistence struct {
	Repo   repository.StateRepository
	Key    string
	Logger *logrus.Logger
}

func NewPersistence(repo repository.StateRepository, key string, logger *logrus.Logger) *Persistence {
	if key == "" {
		key = DefaultSlotKey
	}
	return &Persistence{Repo: repo, Key: key, Logger: logger}
}

type slotPayload struct {
	Content          entity.PortfolioContent `json:"content"`
	SelectedSections []entity.SectionType    `json:"selectedSections"`
}

// storedSlot mirrors slotPayload with every section optional so a slot
// missing one of them can be told apart from one holding zero values.
type storedSlot struct {
	Content *struct {
		Hero     json.RawMessage `json:"hero"`
		About    json.RawMessage `json:"about"`
		Projects json.RawMessage `json:"projects"`
		Contact  json.RawMessage `json:"contact"`
	} `json:"content"`
	SelectedSections []entity.SectionType `json:"selectedSections"`
}

var errIncompleteSlot = errors.New("saved state is missing a section")

// Load returns the saved snapshot. A missing, unreadable or corrupt slot
// yields the defaults with ok set to false; it is never an error.
//
// The slot is decoded without the import schema: whatever the store
// accepted and saved must come back, including values an import would
// reject. Only unparsable JSON or a missing section counts as corrupt.
func (p *Persistence) Load(ctx context.Context) (snap entity.Snapshot, ok bool) {
	raw, err := p.Repo.Get(ctx, p.Key)
	if errors.Is(err, repository.ErrSlotNotFound) {
		return entity.DefaultSnapshot(), false
	}
	if err != nil {
		p.warn(err, "read saved state failed, starting from defaults")
		return entity.DefaultSnapshot(), false
	}
	snap, err = decodeSlot(raw)
	if err != nil {
		p.warn(err, "saved state is corrupt, starting from defaults")
		return entity.DefaultSnapshot(), false
	}
	return snap, true
}

func decodeSlot(raw []byte) (entity.Snapshot, error) {
	var shape storedSlot
	if err := json.Unmarshal(raw, &shape); err != nil {
		return entity.Snapshot{}, err
	}
	c := shape.Content
	if c == nil || isAbsent(c.Hero) || isAbsent(c.About) || isAbsent(c.Projects) || isAbsent(c.Contact) {
		return entity.Snapshot{}, errIncompleteSlot
	}
	var payload slotPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return entity.Snapshot{}, err
	}
	selected := entity.DefaultSelection()
	if shape.SelectedSections != nil {
		selected = entity.NormalizeSelection(payload.SelectedSections)
	}
	return entity.Snapshot{Content: payload.Content.Normalized(), SelectedSections: selected}, nil
}

func isAbsent(m json.RawMessage) bool {
	return len(m) == 0 || string(m) == "null"
}

func (p *Persistence) Save(ctx context.Context, snap entity.Snapshot) error {
	b, err := json.Marshal(slotPayload{Content: snap.Content, SelectedSections: snap.SelectedSections})
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return p.Repo.Put(ctx, p.Key, b)
}

// LoadTheme returns the stored theme preference, if any.
func (p *Persistence) LoadTheme(ctx context.Context) (string, bool) {
	raw, err := p.Repo.Get(ctx, ThemeSlotKey)
	if err != nil {
		if !errors.Is(err, repository.ErrSlotNotFound) {
			p.warn(err, "read theme failed")
		}
		return "", false
	}
	return string(raw), true
}

func (p *Persistence) SaveTheme(ctx context.Context, theme string) error {
	if theme == "" {
		return p.Repo.Delete(ctx, ThemeSlotKey)
	}
	return p.Repo.Put(ctx, ThemeSlotKey, []byte(theme))
}

// Clear removes every application-owned key, including the state slot and
// the theme preference.
func (p *Persistence) Clear(ctx context.Context) error {
	return p.Repo.Clear(ctx)
}

func (p *Persistence) warn(err error, msg string) {
	if p.Logger != nil {
		p.Logger.WithError(err).WithField("slot", p.Key).Warn(msg)
	}
}
