package entity

import (
	"encoding/json"
	"fmt"
)

// SectionPatch is a partial update of one section record. Only the fields
// set in the patch are replaced. Nested records and slices are replaced
// wholesale: a caller changing one social link supplies the full
// socialLinks object.
type SectionPatch interface {
	Section() SectionType
	Apply(c PortfolioContent) PortfolioContent
}

type HeroPatch struct {
	Name                *string          `json:"name,omitempty"`
	Title               *string          `json:"title,omitempty"`
	Subtitle            *string          `json:"subtitle,omitempty"`
	Description         *string          `json:"description,omitempty"`
	Avatar              *Avatar          `json:"avatar,omitempty"`
	AvailableForWork    *bool            `json:"availableForWork,omitempty"`
	CTAPrimary          *string          `json:"ctaPrimary,omitempty"`
	CTAPrimaryEnabled   *bool            `json:"ctaPrimaryEnabled,omitempty"`
	CTASecondary        *string          `json:"ctaSecondary,omitempty"`
	CTASecondaryEnabled *bool            `json:"ctaSecondaryEnabled,omitempty"`
	SocialLinks         *HeroSocialLinks `json:"socialLinks,omitempty"`
}

func (HeroPatch) Section() SectionType { return SectionHero }

func (p HeroPatch) Apply(c PortfolioContent) PortfolioContent {
	h := c.Hero
	setIf(&h.Name, p.Name)
	setIf(&h.Title, p.Title)
	setIf(&h.Subtitle, p.Subtitle)
	setIf(&h.Description, p.Description)
	setIf(&h.Avatar, p.Avatar)
	setIf(&h.AvailableForWork, p.AvailableForWork)
	setIf(&h.CTAPrimary, p.CTAPrimary)
	setIf(&h.CTAPrimaryEnabled, p.CTAPrimaryEnabled)
	setIf(&h.CTASecondary, p.CTASecondary)
	setIf(&h.CTASecondaryEnabled, p.CTASecondaryEnabled)
	if p.SocialLinks != nil {
		links := *p.SocialLinks
		if links.Twitter != nil {
			tw := *links.Twitter
			links.Twitter = &tw
		}
		h.SocialLinks = links
	}
	c.Hero = h
	return c
}

type AboutPatch struct {
	Title       *string    `json:"title,omitempty"`
	Subtitle    *string    `json:"subtitle,omitempty"`
	Description *string    `json:"description,omitempty"`
	Journey     *[]string  `json:"journey,omitempty"`
	Skills      *[]Skill   `json:"skills,omitempty"`
	Services    *[]Service `json:"services,omitempty"`
}

func (AboutPatch) Section() SectionType { return SectionAbout }

func (p AboutPatch) Apply(c PortfolioContent) PortfolioContent {
	a := c.About
	setIf(&a.Title, p.Title)
	setIf(&a.Subtitle, p.Subtitle)
	setIf(&a.Description, p.Description)
	if p.Journey != nil {
		a.Journey = nonNil(cloneStrings(*p.Journey))
	}
	if p.Skills != nil {
		a.Skills = nonNil(cloneSlice(*p.Skills))
	}
	if p.Services != nil {
		a.Services = nonNil(cloneSlice(*p.Services))
	}
	c.About = a
	return c
}

type ProjectsPatch struct {
	Title       *string    `json:"title,omitempty"`
	Subtitle    *string    `json:"subtitle,omitempty"`
	Description *string    `json:"description,omitempty"`
	Projects    *[]Project `json:"projects,omitempty"`
}

func (ProjectsPatch) Section() SectionType { return SectionProjects }

func (p ProjectsPatch) Apply(c PortfolioContent) PortfolioContent {
	pr := c.Projects
	setIf(&pr.Title, p.Title)
	setIf(&pr.Subtitle, p.Subtitle)
	setIf(&pr.Description, p.Description)
	if p.Projects != nil {
		pr.Projects = nonNil(cloneProjects(*p.Projects))
		for i := range pr.Projects {
			pr.Projects[i].Tags = nonNil(pr.Projects[i].Tags)
		}
	}
	c.Projects = pr
	return c
}

type ContactPatch struct {
	Title           *string             `json:"title,omitempty"`
	Subtitle        *string             `json:"subtitle,omitempty"`
	Description     *string             `json:"description,omitempty"`
	Email           *string             `json:"email,omitempty"`
	EmailEnabled    *bool               `json:"emailEnabled,omitempty"`
	Phone           *string             `json:"phone,omitempty"`
	PhoneEnabled    *bool               `json:"phoneEnabled,omitempty"`
	Location        *string             `json:"location,omitempty"`
	LocationEnabled *bool               `json:"locationEnabled,omitempty"`
	SocialLinks     *ContactSocialLinks `json:"socialLinks,omitempty"`
	FormEnabled     *bool               `json:"formEnabled,omitempty"`
}

func (ContactPatch) Section() SectionType { return SectionContact }

func (p ContactPatch) Apply(c PortfolioContent) PortfolioContent {
	ct := c.Contact
	setIf(&ct.Title, p.Title)
	setIf(&ct.Subtitle, p.Subtitle)
	setIf(&ct.Description, p.Description)
	setIf(&ct.Email, p.Email)
	setIf(&ct.EmailEnabled, p.EmailEnabled)
	setIf(&ct.Phone, p.Phone)
	setIf(&ct.PhoneEnabled, p.PhoneEnabled)
	setIf(&ct.Location, p.Location)
	setIf(&ct.LocationEnabled, p.LocationEnabled)
	setIf(&ct.SocialLinks, p.SocialLinks)
	setIf(&ct.FormEnabled, p.FormEnabled)
	c.Contact = ct
	return c
}

// ProjectPatch is a partial update of a single project. The identifier is
// not part of it.
type ProjectPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Image       *string   `json:"image,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	LiveURL     *string   `json:"liveUrl,omitempty"`
	GitHubURL   *string   `json:"githubUrl,omitempty"`
	Featured    *bool     `json:"featured,omitempty"`
}

func (p ProjectPatch) Apply(pr Project) Project {
	setIf(&pr.Title, p.Title)
	setIf(&pr.Description, p.Description)
	setIf(&pr.Image, p.Image)
	if p.Tags != nil {
		pr.Tags = nonNil(cloneStrings(*p.Tags))
	}
	setIf(&pr.LiveURL, p.LiveURL)
	setIf(&pr.GitHubURL, p.GitHubURL)
	setIf(&pr.Featured, p.Featured)
	return pr
}

// DecodeSectionPatch reads a JSON object of changed fields for section.
// Fields that do not belong to the section are ignored.
func DecodeSectionPatch(section SectionType, data []byte) (SectionPatch, error) {
	var (
		patch SectionPatch
		err   error
	)
	switch section {
	case SectionHero:
		var p HeroPatch
		err = json.Unmarshal(data, &p)
		patch = p
	case SectionAbout:
		var p AboutPatch
		err = json.Unmarshal(data, &p)
		patch = p
	case SectionProjects:
		var p ProjectsPatch
		err = json.Unmarshal(data, &p)
		patch = p
	case SectionContact:
		var p ContactPatch
		err = json.Unmarshal(data, &p)
		patch = p
	default:
		return nil, ErrUnknownSection
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s patch: %w", section, err)
	}
	return patch, nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
