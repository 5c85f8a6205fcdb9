package application

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/go-portfolio-builder/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-builder/pkg/validation"
)

// DocumentVersion is written into every exported document.
const DocumentVersion = 1

var (
	ErrInvalidJSON     = errors.New("document is not valid json")
	ErrInvalidDocument = errors.New("document does not match the portfolio schema")
)

// Document is the portable form of the builder state used by export and
// import. Theme is optional.
type Document struct {
	Version          int                     `json:"version"`
	Content          entity.PortfolioContent `json:"content"`
	SelectedSections []entity.SectionType    `json:"selectedSections"`
	Theme            *string                 `json:"theme,omitempty"`
}

func (d Document) Snapshot() entity.Snapshot {
	return entity.Snapshot{Content: d.Content, SelectedSections: d.SelectedSections}.Clone()
}

// DocumentError is returned when a document is rejected. Details maps a
// dotted field path to a message.
type DocumentError struct {
	Err     error
	Details map[string]string
}

func (e *DocumentError) Error() string {
	if len(e.Details) == 0 {
		return e.Err.Error()
	}
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Details[k])
	}
	return e.Err.Error() + ": " + strings.Join(parts, "; ")
}

func (e *DocumentError) Unwrap() error { return e.Err }

// ParseDocument validates raw JSON against the portfolio schema. It either
// returns a complete document or a *DocumentError; it never returns a
// partially filled document.
func ParseDocument(data []byte) (Document, error) {
	if !json.Valid(data) {
		return Document{}, &DocumentError{Err: ErrInvalidJSON, Details: map[string]string{"payload": "invalid json"}}
	}
	var raw documentDoc
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, &DocumentError{Err: ErrInvalidDocument, Details: validation.ToDetails(err)}
	}
	if err := documentValidator.Struct(&raw); err != nil {
		return Document{}, &DocumentError{Err: ErrInvalidDocument, Details: validation.ToDetails(err)}
	}
	return raw.toDocument(), nil
}

// ValidateValue validates an already parsed JSON-like value, for example a
// map[string]any produced by a generic decoder.
func ValidateValue(v any) (Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Document{}, &DocumentError{Err: ErrInvalidDocument, Details: map[string]string{"payload": err.Error()}}
	}
	return ParseDocument(data)
}

// ValidatePatch reports whether c with patch applied is still a valid
// document. Editors call it before committing a section update so a
// projects list with duplicate or empty ids never reaches the store.
func ValidatePatch(c entity.PortfolioContent, patch entity.SectionPatch) error {
	_, err := ValidateValue(Document{
		Version:          DocumentVersion,
		Content:          patch.Apply(c.Clone()),
		SelectedSections: []entity.SectionType{},
	})
	return err
}

var documentValidator = newDocumentValidator()

func newDocumentValidator() *validator.Validate {
	v := validation.New()
	v.RegisterStructValidation(uniqueProjectIDs, projectsDoc{})
	return v
}

func uniqueProjectIDs(sl validator.StructLevel) {
	doc := sl.Current().Interface().(projectsDoc)
	seen := make(map[string]bool, len(doc.Projects))
	for _, p := range doc.Projects {
		if p.ID == nil {
			continue
		}
		if seen[*p.ID] {
			sl.ReportError(doc.Projects, "projects", "Projects", "unique", "id")
			return
		}
		seen[*p.ID] = true
	}
}

// The *Doc types mirror the entity types with pointer fields so a missing
// field can be told apart from a zero value. Enabled flags are optional and
// fall back to the section defaults, which lets documents exported before
// the flags existed still import.

type documentDoc struct {
	Version          *int        `json:"version"`
	Content          *contentDoc `json:"content" validate:"required"`
	SelectedSections []*string   `json:"selectedSections" validate:"required,dive,required,section"`
	Theme            *string     `json:"theme"`
}

type contentDoc struct {
	Hero     *heroDoc     `json:"hero" validate:"required"`
	About    *aboutDoc    `json:"about" validate:"required"`
	Projects *projectsDoc `json:"projects" validate:"required"`
	Contact  *contactDoc  `json:"contact" validate:"required"`
}

type heroDoc struct {
	Name                *string        `json:"name" validate:"required"`
	Title               *string        `json:"title" validate:"required"`
	Subtitle            *string        `json:"subtitle" validate:"required"`
	Description         *string        `json:"description" validate:"required"`
	Avatar              *entity.Avatar `json:"avatar" validate:"required"`
	AvailableForWork    *bool          `json:"availableForWork" validate:"required"`
	CTAPrimary          *string        `json:"ctaPrimary" validate:"required"`
	CTAPrimaryEnabled   *bool          `json:"ctaPrimaryEnabled"`
	CTASecondary        *string        `json:"ctaSecondary" validate:"required"`
	CTASecondaryEnabled *bool          `json:"ctaSecondaryEnabled"`
	SocialLinks         *heroLinksDoc  `json:"socialLinks" validate:"required"`
}

type heroLinksDoc struct {
	GitHub          *string `json:"github" validate:"required"`
	GitHubEnabled   *bool   `json:"githubEnabled"`
	LinkedIn        *string `json:"linkedin" validate:"required"`
	LinkedInEnabled *bool   `json:"linkedinEnabled"`
	Email           *string `json:"email" validate:"required"`
	EmailEnabled    *bool   `json:"emailEnabled"`
	Twitter         *string `json:"twitter"`
	TwitterEnabled  *bool   `json:"twitterEnabled"`
}

type aboutDoc struct {
	Title       *string       `json:"title" validate:"required"`
	Subtitle    *string       `json:"subtitle" validate:"required"`
	Description *string       `json:"description" validate:"required"`
	Journey     []*string     `json:"journey" validate:"required,dive,required"`
	Skills      []*skillDoc   `json:"skills" validate:"required,dive,required"`
	Services    []*serviceDoc `json:"services" validate:"required,dive,required"`
}

type skillDoc struct {
	Name     *string `json:"name" validate:"required"`
	Level    *int    `json:"level" validate:"required,percent"`
	Category *string `json:"category" validate:"required"`
}

type serviceDoc struct {
	Title       *string `json:"title" validate:"required"`
	Description *string `json:"description" validate:"required"`
	Icon        *string `json:"icon" validate:"required,icon"`
}

type projectsDoc struct {
	Title       *string       `json:"title" validate:"required"`
	Subtitle    *string       `json:"subtitle" validate:"required"`
	Description *string       `json:"description" validate:"required"`
	Projects    []*projectDoc `json:"projects" validate:"required,dive,required"`
}

type projectDoc struct {
	ID          *string   `json:"id" validate:"required,min=1"`
	Title       *string   `json:"title" validate:"required"`
	Description *string   `json:"description" validate:"required"`
	Image       *string   `json:"image" validate:"required"`
	Tags        []*string `json:"tags" validate:"required,dive,required"`
	LiveURL     *string   `json:"liveUrl" validate:"required"`
	GitHubURL   *string   `json:"githubUrl" validate:"required"`
	Featured    *bool     `json:"featured" validate:"required"`
}

type contactDoc struct {
	Title           *string          `json:"title" validate:"required"`
	Subtitle        *string          `json:"subtitle" validate:"required"`
	Description     *string          `json:"description" validate:"required"`
	Email           *string          `json:"email" validate:"required"`
	EmailEnabled    *bool            `json:"emailEnabled"`
	Phone           *string          `json:"phone" validate:"required"`
	PhoneEnabled    *bool            `json:"phoneEnabled"`
	Location        *string          `json:"location" validate:"required"`
	LocationEnabled *bool            `json:"locationEnabled"`
	SocialLinks     *contactLinksDoc `json:"socialLinks" validate:"required"`
	FormEnabled     *bool            `json:"formEnabled" validate:"required"`
}

type contactLinksDoc struct {
	GitHub          *string `json:"github" validate:"required"`
	GitHubEnabled   *bool   `json:"githubEnabled"`
	LinkedIn        *string `json:"linkedin" validate:"required"`
	LinkedInEnabled *bool   `json:"linkedinEnabled"`
	Twitter         *string `json:"twitter" validate:"required"`
	TwitterEnabled  *bool   `json:"twitterEnabled"`
}

func (d *documentDoc) toDocument() Document {
	def := entity.DefaultContent()
	c := d.Content
	h, a, p, ct := c.Hero, c.About, c.Projects, c.Contact

	out := Document{Version: DocumentVersion, Theme: d.Theme}
	if d.Version != nil {
		out.Version = *d.Version
	}

	var twitter *string
	if h.SocialLinks.Twitter != nil {
		tw := *h.SocialLinks.Twitter
		twitter = &tw
	}
	out.Content.Hero = entity.HeroContent{
		Name:                *h.Name,
		Title:               *h.Title,
		Subtitle:            *h.Subtitle,
		Description:         *h.Description,
		Avatar:              *h.Avatar,
		AvailableForWork:    *h.AvailableForWork,
		CTAPrimary:          *h.CTAPrimary,
		CTAPrimaryEnabled:   flag(h.CTAPrimaryEnabled, def.Hero.CTAPrimaryEnabled),
		CTASecondary:        *h.CTASecondary,
		CTASecondaryEnabled: flag(h.CTASecondaryEnabled, def.Hero.CTASecondaryEnabled),
		SocialLinks: entity.HeroSocialLinks{
			GitHub:          *h.SocialLinks.GitHub,
			GitHubEnabled:   flag(h.SocialLinks.GitHubEnabled, def.Hero.SocialLinks.GitHubEnabled),
			LinkedIn:        *h.SocialLinks.LinkedIn,
			LinkedInEnabled: flag(h.SocialLinks.LinkedInEnabled, def.Hero.SocialLinks.LinkedInEnabled),
			Email:           *h.SocialLinks.Email,
			EmailEnabled:    flag(h.SocialLinks.EmailEnabled, def.Hero.SocialLinks.EmailEnabled),
			Twitter:         twitter,
			TwitterEnabled:  flag(h.SocialLinks.TwitterEnabled, twitter != nil && def.Hero.SocialLinks.TwitterEnabled),
		},
	}

	about := entity.AboutContent{
		Title:       *a.Title,
		Subtitle:    *a.Subtitle,
		Description: *a.Description,
		Journey:     derefStrings(a.Journey),
		Skills:      make([]entity.Skill, 0, len(a.Skills)),
		Services:    make([]entity.Service, 0, len(a.Services)),
	}
	for _, s := range a.Skills {
		about.Skills = append(about.Skills, entity.Skill{Name: *s.Name, Level: *s.Level, Category: *s.Category})
	}
	for _, s := range a.Services {
		about.Services = append(about.Services, entity.Service{
			Title:       *s.Title,
			Description: *s.Description,
			Icon:        entity.Icon(*s.Icon),
		})
	}
	out.Content.About = about

	projects := entity.ProjectsContent{
		Title:       *p.Title,
		Subtitle:    *p.Subtitle,
		Description: *p.Description,
		Projects:    make([]entity.Project, 0, len(p.Projects)),
	}
	for _, pr := range p.Projects {
		projects.Projects = append(projects.Projects, entity.Project{
			ID:          *pr.ID,
			Title:       *pr.Title,
			Description: *pr.Description,
			Image:       *pr.Image,
			Tags:        derefStrings(pr.Tags),
			LiveURL:     *pr.LiveURL,
			GitHubURL:   *pr.GitHubURL,
			Featured:    *pr.Featured,
		})
	}
	out.Content.Projects = projects

	out.Content.Contact = entity.ContactContent{
		Title:           *ct.Title,
		Subtitle:        *ct.Subtitle,
		Description:     *ct.Description,
		Email:           *ct.Email,
		EmailEnabled:    flag(ct.EmailEnabled, def.Contact.EmailEnabled),
		Phone:           *ct.Phone,
		PhoneEnabled:    flag(ct.PhoneEnabled, def.Contact.PhoneEnabled),
		Location:        *ct.Location,
		LocationEnabled: flag(ct.LocationEnabled, def.Contact.LocationEnabled),
		SocialLinks: entity.ContactSocialLinks{
			GitHub:          *ct.SocialLinks.GitHub,
			GitHubEnabled:   flag(ct.SocialLinks.GitHubEnabled, def.Contact.SocialLinks.GitHubEnabled),
			LinkedIn:        *ct.SocialLinks.LinkedIn,
			LinkedInEnabled: flag(ct.SocialLinks.LinkedInEnabled, def.Contact.SocialLinks.LinkedInEnabled),
			Twitter:         *ct.SocialLinks.Twitter,
			TwitterEnabled:  flag(ct.SocialLinks.TwitterEnabled, def.Contact.SocialLinks.TwitterEnabled),
		},
		FormEnabled: *ct.FormEnabled,
	}

	selected := make([]entity.SectionType, 0, len(d.SelectedSections))
	for _, s := range d.SelectedSections {
		selected = append(selected, entity.SectionType(*s))
	}
	out.SelectedSections = entity.NormalizeSelection(selected)
	return out
}

func flag(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func derefStrings(in []*string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, *s)
	}
	return out
}
