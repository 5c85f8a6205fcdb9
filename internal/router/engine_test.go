package router

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-portfolio-builder/config"
	"github.com/oksasatya/go-portfolio-builder/internal/application"
	"github.com/oksasatya/go-portfolio-builder/internal/container"
	"github.com/oksasatya/go-portfolio-builder/internal/domain/entity"
	meminfra "github.com/oksasatya/go-portfolio-builder/internal/infrastructure/memory"
	"github.com/oksasatya/go-portfolio-builder/internal/interface/middleware"
	"github.com/oksasatya/go-portfolio-builder/pkg/bundle"
	"github.com/oksasatya/go-portfolio-builder/pkg/helpers"
	"github.com/oksasatya/go-portfolio-builder/pkg/validation"
)

type envelope struct {
	Status  int               `json:"status"`
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	cfg := &config.Config{
		StorageDriver:   "memory",
		StateNamespace:  "portfolio-builder:",
		HistoryLimit:    100,
		RateLimitMax:    30,
		RateLimitWindow: time.Minute,
	}
	logger := helpers.NewDiscardLogger()
	repo := meminfra.NewStateRepository(nil, cfg.StateNamespace)
	svc := application.NewPortfolioService(testContext(t), application.NewPersistence(repo, "", logger), logger, application.ServiceOptions{})

	c := &container.Container{
		Config:    cfg,
		Logger:    logger,
		Portfolio: svc,
		Uploads:   application.NewUploadService(nil, 0, logger),
		Exports:   application.NewExportService(svc, bundle.NewBuilder(nil, logger), nil, logger),
	}
	t.Cleanup(c.Close)
	return NewEngine(c)
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") && w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func stateOf(t *testing.T, env envelope) application.StateView {
	t.Helper()
	var v application.StateView
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestGetPortfolio(t *testing.T) {
	r := newTestEngine(t)
	w, env := do(t, r, http.MethodGet, "/api/portfolio", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	st := stateOf(t, env)
	assert.Equal(t, entity.DefaultContent(), st.Content)
	assert.Equal(t, entity.DefaultSelection(), st.SelectedSections)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestUpdateSectionAndUndoRedo(t *testing.T) {
	r := newTestEngine(t)

	w, env := do(t, r, http.MethodPatch, "/api/portfolio/sections/hero", `{"name":"Ada Lovelace"}`)
	require.Equal(t, http.StatusOK, w.Code)
	st := stateOf(t, env)
	assert.Equal(t, "Ada Lovelace", st.Content.Hero.Name)
	assert.Equal(t, "Full-Stack Developer", st.Content.Hero.Title)
	assert.True(t, st.CanUndo)

	_, env = do(t, r, http.MethodPost, "/api/portfolio/undo", "")
	assert.Equal(t, "John Doe", stateOf(t, env).Content.Hero.Name)

	_, env = do(t, r, http.MethodPost, "/api/portfolio/redo", "")
	assert.Equal(t, "Ada Lovelace", stateOf(t, env).Content.Hero.Name)
}

func TestUpdateSectionRejections(t *testing.T) {
	r := newTestEngine(t)

	w, env := do(t, r, http.MethodPatch, "/api/portfolio/sections/footer", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "unknown section", env.Message)

	w, env = do(t, r, http.MethodPatch, "/api/portfolio/sections/about", `{"skills":[{"name":"Go","level":150,"category":"Backend"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error, "content.about.skills[0].level")

	w, env = do(t, r, http.MethodPatch, "/api/portfolio/sections/projects",
		`{"projects":[{"id":"1","title":"a","description":"","image":"","tags":[],"liveUrl":"","githubUrl":"","featured":false},`+
			`{"id":"1","title":"b","description":"","image":"","tags":[],"liveUrl":"","githubUrl":"","featured":false}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error, "content.projects.projects")

	_, env = do(t, r, http.MethodGet, "/api/portfolio", "")
	assert.False(t, stateOf(t, env).CanUndo, "rejected patches are not applied")
}

func TestProjectLifecycle(t *testing.T) {
	r := newTestEngine(t)

	w, env := do(t, r, http.MethodPost, "/api/portfolio/projects", `{"title":"X","description":"Y","tags":["go"]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Project entity.Project        `json:"project"`
		State   application.StateView `json:"state"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.Project.ID)
	assert.Len(t, created.State.Content.Projects.Projects, 4)

	id := created.Project.ID
	w, env = do(t, r, http.MethodPatch, "/api/portfolio/projects/"+id, `{"featured":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	projects := stateOf(t, env).Content.Projects.Projects
	assert.True(t, projects[3].Featured)
	assert.Equal(t, "X", projects[3].Title)

	w, _ = do(t, r, http.MethodDelete, "/api/portfolio/projects/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodDelete, "/api/portfolio/projects/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = do(t, r, http.MethodPatch, "/api/portfolio/projects/nope", `{"title":"z"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSelectionAndEditing(t *testing.T) {
	r := newTestEngine(t)

	w, env := do(t, r, http.MethodPut, "/api/portfolio/selection", `{"sections":["contact","hero","contact"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []entity.SectionType{entity.SectionContact, entity.SectionHero}, stateOf(t, env).SelectedSections)

	w, _ = do(t, r, http.MethodPut, "/api/portfolio/selection", `{"sections":["footer"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = do(t, r, http.MethodPut, "/api/portfolio/editing", `{"section":"contact"}`)
	require.Equal(t, http.StatusOK, w.Code)
	st := stateOf(t, env)
	require.NotNil(t, st.EditingSection)
	assert.Equal(t, entity.SectionContact, *st.EditingSection)

	_, env = do(t, r, http.MethodPut, "/api/portfolio/editing", `{"section":null}`)
	assert.Nil(t, stateOf(t, env).EditingSection)

	w, _ = do(t, r, http.MethodPut, "/api/portfolio/editing", `{"section":"footer"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportImport(t *testing.T) {
	r := newTestEngine(t)
	do(t, r, http.MethodPatch, "/api/portfolio/sections/hero", `{"name":"Ada Lovelace"}`)

	w, _ := do(t, r, http.MethodGet, "/api/portfolio/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename=ada-lovelace-portfolio.json`, w.Header().Get("Content-Disposition"))
	exported := w.Body.Bytes()

	do(t, r, http.MethodPost, "/api/portfolio/reset", "")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "portfolio.json")
	require.NoError(t, err)
	_, err = fw.Write(exported)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/portfolio/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	_, env := do(t, r, http.MethodGet, "/api/portfolio", "")
	st := stateOf(t, env)
	assert.Equal(t, "Ada Lovelace", st.Content.Hero.Name)
	assert.False(t, st.CanUndo)
}

func TestImportRejectsInvalidDocument(t *testing.T) {
	r := newTestEngine(t)

	w, env := do(t, r, http.MethodPost, "/api/portfolio/import", `{"content":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid json", env.Message)

	w, env = do(t, r, http.MethodPost, "/api/portfolio/import", `{"content":{},"selectedSections":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid document", env.Message)
	assert.Contains(t, env.Error, "content.hero")
}

func TestBundleDownload(t *testing.T) {
	r := newTestEngine(t)
	w, _ := do(t, r, http.MethodGet, "/api/portfolio/export/bundle", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "john-doe-portfolio.zip")
}

func TestUnconfiguredBackends(t *testing.T) {
	r := newTestEngine(t)

	w, _ := do(t, r, http.MethodPost, "/api/portfolio/export/bundle/jobs", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "me.png")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/upload-avatar", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	w, _ = do(t, r, http.MethodPost, "/api/upload-avatar", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLivePreviewReceivesState(t *testing.T) {
	r := newTestEngine(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/portfolio/live", nil)
	require.NoError(t, err)
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var frame struct {
		Type  string                `json:"type"`
		State application.StateView `json:"state"`
	}
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "state", frame.Type)
	assert.Equal(t, "John Doe", frame.State.Content.Hero.Name)

	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/api/portfolio/sections/hero", strings.NewReader(`{"name":"Grace"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = res.Body.Close()

	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "Grace", frame.State.Content.Hero.Name)
}
