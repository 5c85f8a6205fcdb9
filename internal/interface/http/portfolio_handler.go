package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-builder/internal/application"
	"github.com/oksasatya/go-portfolio-builder/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-builder/pkg/response"
	"github.com/oksasatya/go-portfolio-builder/pkg/validation"
)

type PortfolioHandler struct {
	Svc    *application.PortfolioService
	Logger *logrus.Logger
}

func NewPortfolioHandler(svc *application.PortfolioService, logger *logrus.Logger) *PortfolioHandler {
	return &PortfolioHandler{Svc: svc, Logger: logger}
}

type selectionRequest struct {
	Sections []string `json:"sections" binding:"required,dive,section"`
}

type editingRequest struct {
	Section *string `json:"section"`
}

type themeRequest struct {
	Theme string `json:"theme" binding:"max=64"`
}

type projectCreated struct {
	Project entity.Project        `json:"project"`
	State   application.StateView `json:"state"`
}

func (h *PortfolioHandler) Get(c *gin.Context) {
	response.Success(c, http.StatusOK, h.Svc.State(), "portfolio", nil)
}

// UpdateSection merges the request body into one section. Only the fields
// present in the body change.
func (h *PortfolioHandler) UpdateSection(c *gin.Context) {
	section, err := entity.ParseSection(c.Param("section"))
	if err != nil {
		response.Invalid(c, "unknown section", map[string]string{"section": c.Param("section")})
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	patch, err := entity.DecodeSectionPatch(section, body)
	if err != nil {
		response.Invalid(c, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := application.ValidatePatch(h.Svc.Snapshot().Content, patch); err != nil {
		writeDocumentError(c, err)
		return
	}
	response.Success(c, http.StatusOK, h.Svc.UpdateSection(c.Request.Context(), patch), section.Label()+" updated", nil)
}

func (h *PortfolioHandler) AddProject(c *gin.Context) {
	var in entity.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Invalid(c, "invalid payload", validation.ToDetails(err))
		return
	}
	p, view := h.Svc.AddProject(c.Request.Context(), in)
	response.Success(c, http.StatusCreated, projectCreated{Project: p, State: view}, "project added", nil)
}

func (h *PortfolioHandler) UpdateProject(c *gin.Context) {
	id := c.Param("id")
	var patch entity.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Invalid(c, "invalid payload", validation.ToDetails(err))
		return
	}
	if !h.hasProject(id) {
		response.Error[any](c, http.StatusNotFound, "project not found", map[string]string{"id": id})
		return
	}
	response.Success(c, http.StatusOK, h.Svc.UpdateProject(c.Request.Context(), id, patch), "project updated", nil)
}

func (h *PortfolioHandler) DeleteProject(c *gin.Context) {
	id := c.Param("id")
	if !h.hasProject(id) {
		response.Error[any](c, http.StatusNotFound, "project not found", map[string]string{"id": id})
		return
	}
	response.Success(c, http.StatusOK, h.Svc.DeleteProject(c.Request.Context(), id), "project deleted", nil)
}

func (h *PortfolioHandler) hasProject(id string) bool {
	return h.Svc.Snapshot().Content.Projects.FindProject(id) >= 0
}

func (h *PortfolioHandler) SetSelection(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, "invalid payload", validation.ToDetails(err))
		return
	}
	tags := make([]entity.SectionType, 0, len(req.Sections))
	for _, s := range req.Sections {
		tags = append(tags, entity.SectionType(s))
	}
	response.Success(c, http.StatusOK, h.Svc.SetSelectedSections(c.Request.Context(), tags), "selection updated", nil)
}

// SetEditing opens or closes a section editor. A null or empty section
// closes it; so does naming the section already open.
func (h *PortfolioHandler) SetEditing(c *gin.Context) {
	var req editingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, "invalid payload", validation.ToDetails(err))
		return
	}
	var tag entity.SectionType
	if req.Section != nil && *req.Section != "" {
		s, err := entity.ParseSection(*req.Section)
		if err != nil {
			response.Invalid(c, "unknown section", map[string]string{"section": *req.Section})
			return
		}
		tag = s
	}
	response.Success(c, http.StatusOK, h.Svc.SetEditingSection(tag), "editing updated", nil)
}

func (h *PortfolioHandler) SetTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, "invalid payload", validation.ToDetails(err))
		return
	}
	response.Success(c, http.StatusOK, h.Svc.SetTheme(c.Request.Context(), req.Theme), "theme updated", nil)
}

func (h *PortfolioHandler) Undo(c *gin.Context) {
	response.Success(c, http.StatusOK, h.Svc.Undo(c.Request.Context()), "undo", nil)
}

func (h *PortfolioHandler) Redo(c *gin.Context) {
	response.Success(c, http.StatusOK, h.Svc.Redo(c.Request.Context()), "redo", nil)
}

func (h *PortfolioHandler) Reset(c *gin.Context) {
	response.Success(c, http.StatusOK, h.Svc.Reset(c.Request.Context()), "portfolio reset to defaults", nil)
}

// writeDocumentError maps a rejected document to a 400 with field details.
func writeDocumentError(c *gin.Context, err error) {
	var de *application.DocumentError
	if !errors.As(err, &de) {
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	msg := "invalid document"
	if errors.Is(err, application.ErrInvalidJSON) {
		msg = "invalid json"
	}
	response.Invalid(c, msg, de.Details)
}
