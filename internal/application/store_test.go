package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-portfolio-builder/internal/domain/entity"
)

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestStoreAddProjectAssignsUniqueIDs(t *testing.T) {
	s := NewStore(entity.DefaultSnapshot(), WithClock(fixedClock(1700000000000)))

	a := s.AddProject(entity.ProjectInput{Title: "A"})
	b := s.AddProject(entity.ProjectInput{Title: "B"})

	assert.Equal(t, "1700000000000", a.ID)
	assert.Equal(t, "1700000000001", b.ID)
	assert.NotNil(t, a.Tags)

	projects := s.Content().Projects.Projects
	require.Len(t, projects, 5)
	assert.Equal(t, "B", projects[4].Title)
}

func TestStoreAddProjectSkipsExistingIDs(t *testing.T) {
	snap := entity.DefaultSnapshot()
	snap.Content.Projects.Projects[0].ID = "5000"
	s := NewStore(snap, WithClock(fixedClock(5000)))

	p := s.AddProject(entity.ProjectInput{})
	assert.Equal(t, "5001", p.ID)
}

func TestStoreUpdateAndDeleteProject(t *testing.T) {
	s := NewStore(entity.DefaultSnapshot())
	title := "Renamed"

	assert.True(t, s.UpdateProject("2", entity.ProjectPatch{Title: &title}))
	assert.Equal(t, "Renamed", s.Content().Projects.Projects[1].Title)

	assert.False(t, s.UpdateProject("nope", entity.ProjectPatch{Title: &title}))

	assert.True(t, s.DeleteProject("1"))
	ids := []string{}
	for _, p := range s.Content().Projects.Projects {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"2", "3"}, ids)
	assert.False(t, s.DeleteProject("1"))
}

func TestStoreSnapshotIsIsolated(t *testing.T) {
	s := NewStore(entity.DefaultSnapshot())
	snap := s.Snapshot()
	snap.Content.Projects.Projects[0].Title = "mutated"
	snap.SelectedSections[0] = entity.SectionContact

	assert.Equal(t, "E-Commerce Platform", s.Content().Projects.Projects[0].Title)
	assert.Equal(t, []entity.SectionType{entity.SectionHero}, s.SelectedSections())
}

func TestStoreEditingSection(t *testing.T) {
	s := NewStore(entity.DefaultSnapshot())
	s.SetSelectedSections([]entity.SectionType{entity.SectionHero, entity.SectionAbout})

	assert.Equal(t, entity.SectionAbout, s.SetEditingSection(entity.SectionAbout))
	assert.Equal(t, entity.SectionType(""), s.SetEditingSection(entity.SectionAbout), "same tag toggles off")

	assert.Equal(t, entity.SectionType(""), s.SetEditingSection(entity.SectionContact), "unselected section is ignored")

	s.SetEditingSection(entity.SectionAbout)
	s.SetSelectedSections([]entity.SectionType{entity.SectionHero})
	assert.Equal(t, entity.SectionType(""), s.EditingSection(), "deselecting closes the editor")
}

func TestStoreSelectionOrderAndDedup(t *testing.T) {
	s := NewStore(entity.DefaultSnapshot())
	got := s.SetSelectedSections([]entity.SectionType{entity.SectionContact, entity.SectionHero, entity.SectionContact})
	assert.Equal(t, []entity.SectionType{entity.SectionContact, entity.SectionHero}, got)

	assert.Equal(t, []entity.SectionType{}, s.SetSelectedSections(nil))
}

func TestStoreResetToDefaults(t *testing.T) {
	s := NewStore(entity.DefaultSnapshot())
	name := "Ada"
	s.UpdateSection(entity.HeroPatch{Name: &name})
	s.SetSelectedSections([]entity.SectionType{entity.SectionAbout})

	s.ResetToDefaults()
	assert.Equal(t, entity.DefaultSnapshot(), s.Snapshot())
}
