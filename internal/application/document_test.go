package application

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-portfolio-builder/internal/domain/entity"
)

// defaultDocMap returns the default document as a generic JSON tree so
// tests can break individual fields.
func defaultDocMap(t *testing.T) map[string]any {
	t.Helper()
	snap := entity.DefaultSnapshot()
	b, err := MarshalDocument(Document{Version: DocumentVersion, Content: snap.Content, SelectedSections: snap.SelectedSections})
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

func sub(m map[string]any, keys ...string) map[string]any {
	for _, k := range keys {
		m = m[k].(map[string]any)
	}
	return m
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func requireDocErr(t *testing.T, err error) *DocumentError {
	t.Helper()
	require.Error(t, err)
	var de *DocumentError
	require.ErrorAs(t, err, &de)
	return de
}

func TestParseDocumentAcceptsDefaults(t *testing.T) {
	doc, err := ParseDocument(mustJSON(t, defaultDocMap(t)))
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultContent(), doc.Content)
	assert.Equal(t, entity.DefaultSelection(), doc.SelectedSections)
	assert.Equal(t, DocumentVersion, doc.Version)
	assert.Nil(t, doc.Theme)
}

func TestParseDocumentRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m map[string]any)
		field  string
	}{
		{
			name:   "missing hero name",
			mutate: func(m map[string]any) { delete(sub(m, "content", "hero"), "name") },
			field:  "content.hero.name",
		},
		{
			name: "skill level above 100",
			mutate: func(m map[string]any) {
				skills := sub(m, "content", "about")["skills"].([]any)
				skills[1].(map[string]any)["level"] = 150
			},
			field: "content.about.skills[1].level",
		},
		{
			name: "unknown icon",
			mutate: func(m map[string]any) {
				services := sub(m, "content", "about")["services"].([]any)
				services[0].(map[string]any)["icon"] = "Rocket"
			},
			field: "content.about.services[0].icon",
		},
		{
			name: "duplicate project ids",
			mutate: func(m map[string]any) {
				projects := sub(m, "content", "projects")["projects"].([]any)
				projects[1].(map[string]any)["id"] = "1"
			},
			field: "content.projects.projects",
		},
		{
			name: "empty project id",
			mutate: func(m map[string]any) {
				projects := sub(m, "content", "projects")["projects"].([]any)
				projects[0].(map[string]any)["id"] = ""
			},
			field: "content.projects.projects[0].id",
		},
		{
			name:   "unknown section selected",
			mutate: func(m map[string]any) { m["selectedSections"] = []any{"hero", "blog"} },
			field:  "selectedSections[1]",
		},
		{
			name:   "missing contact",
			mutate: func(m map[string]any) { delete(sub(m, "content"), "contact") },
			field:  "content.contact",
		},
		{
			name:   "missing selection",
			mutate: func(m map[string]any) { delete(m, "selectedSections") },
			field:  "selectedSections",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := defaultDocMap(t)
			tc.mutate(m)
			_, err := ParseDocument(mustJSON(t, m))
			de := requireDocErr(t, err)
			assert.ErrorIs(t, err, ErrInvalidDocument)
			assert.Contains(t, de.Details, tc.field)
		})
	}
}

func TestParseDocumentWrongType(t *testing.T) {
	m := defaultDocMap(t)
	m["theme"] = 5
	_, err := ParseDocument(mustJSON(t, m))
	requireDocErr(t, err)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestParseDocumentInvalidJSON(t *testing.T) {
	_, err := ParseDocument([]byte(`{"content":`))
	de := requireDocErr(t, err)
	assert.ErrorIs(t, err, ErrInvalidJSON)
	assert.Equal(t, "invalid json", de.Details["payload"])
}

func TestParseDocumentDefaultsOptionalFlags(t *testing.T) {
	m := defaultDocMap(t)
	hero := sub(m, "content", "hero")
	delete(hero, "ctaPrimaryEnabled")
	hero["avatar"] = "AL"
	links := sub(m, "content", "hero", "socialLinks")
	delete(links, "twitterEnabled")
	links["twitter"] = nil
	delete(sub(m, "content", "contact"), "phoneEnabled")
	m["theme"] = "dark"

	doc, err := ParseDocument(mustJSON(t, m))
	require.NoError(t, err)
	assert.True(t, doc.Content.Hero.CTAPrimaryEnabled)
	assert.Equal(t, entity.Avatar{Initials: "AL"}, doc.Content.Hero.Avatar)
	assert.Nil(t, doc.Content.Hero.SocialLinks.Twitter)
	assert.False(t, doc.Content.Hero.SocialLinks.TwitterEnabled)
	assert.True(t, doc.Content.Contact.PhoneEnabled)
	require.NotNil(t, doc.Theme)
	assert.Equal(t, "dark", *doc.Theme)
}

func TestParseDocumentCollapsesDuplicateSelection(t *testing.T) {
	m := defaultDocMap(t)
	m["selectedSections"] = []any{"about", "hero", "about"}
	doc, err := ParseDocument(mustJSON(t, m))
	require.NoError(t, err)
	assert.Equal(t, []entity.SectionType{entity.SectionAbout, entity.SectionHero}, doc.SelectedSections)
}

func TestValidatePatch(t *testing.T) {
	c := entity.DefaultContent()
	dup := []entity.Project{{ID: "a", Tags: []string{}}, {ID: "a", Tags: []string{}}}
	assert.Error(t, ValidatePatch(c, entity.ProjectsPatch{Projects: &dup}))

	skills := []entity.Skill{{Name: "Go", Level: 101}}
	assert.Error(t, ValidatePatch(c, entity.AboutPatch{Skills: &skills}))

	name := ""
	assert.NoError(t, ValidatePatch(c, entity.HeroPatch{Name: &name}))
}

func TestDocumentErrorMessageIsSorted(t *testing.T) {
	err := &DocumentError{Err: ErrInvalidDocument, Details: map[string]string{"b": "is required", "a": "is required"}}
	assert.Equal(t, "document does not match the portfolio schema: a is required; b is required", err.Error())
}
