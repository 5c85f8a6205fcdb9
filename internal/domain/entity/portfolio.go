package entity

// PortfolioContent is the aggregate root for the builder. All four sections
// always exist; a section that was never edited holds its defaults.
type PortfolioContent struct {
	Hero     HeroContent     `json:"hero"`
	About    AboutContent    `json:"about"`
	Projects ProjectsContent `json:"projects"`
	Contact  ContactContent  `json:"contact"`
}

type HeroContent struct {
	Name                string          `json:"name"`
	Title               string          `json:"title"`
	Subtitle            string          `json:"subtitle"`
	Description         string          `json:"description"`
	Avatar              Avatar          `json:"avatar"`
	AvailableForWork    bool            `json:"availableForWork"`
	CTAPrimary          string          `json:"ctaPrimary"`
	CTAPrimaryEnabled   bool            `json:"ctaPrimaryEnabled"`
	CTASecondary        string          `json:"ctaSecondary"`
	CTASecondaryEnabled bool            `json:"ctaSecondaryEnabled"`
	SocialLinks         HeroSocialLinks `json:"socialLinks"`
}

// HeroSocialLinks holds the hero links. Twitter is optional and may be null.
type HeroSocialLinks struct {
	GitHub          string  `json:"github"`
	GitHubEnabled   bool    `json:"githubEnabled"`
	LinkedIn        string  `json:"linkedin"`
	LinkedInEnabled bool    `json:"linkedinEnabled"`
	Email           string  `json:"email"`
	EmailEnabled    bool    `json:"emailEnabled"`
	Twitter         *string `json:"twitter"`
	TwitterEnabled  bool    `json:"twitterEnabled"`
}

type AboutContent struct {
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	Journey     []string  `json:"journey"`
	Skills      []Skill   `json:"skills"`
	Services    []Service `json:"services"`
}

// Skill level is a percentage in [0, 100].
type Skill struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Category string `json:"category"`
}

type Service struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        Icon   `json:"icon"`
}

type ProjectsContent struct {
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	Projects    []Project `json:"projects"`
}

type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	LiveURL     string   `json:"liveUrl"`
	GitHubURL   string   `json:"githubUrl"`
	Featured    bool     `json:"featured"`
}

// ProjectInput is a project before the store assigns its identifier.
type ProjectInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	LiveURL     string   `json:"liveUrl"`
	GitHubURL   string   `json:"githubUrl"`
	Featured    bool     `json:"featured"`
}

// WithID builds the stored project.
func (in ProjectInput) WithID(id string) Project {
	return Project{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		Tags:        cloneStrings(in.Tags),
		LiveURL:     in.LiveURL,
		GitHubURL:   in.GitHubURL,
		Featured:    in.Featured,
	}
}

type ContactContent struct {
	Title           string             `json:"title"`
	Subtitle        string             `json:"subtitle"`
	Description     string             `json:"description"`
	Email           string             `json:"email"`
	EmailEnabled    bool               `json:"emailEnabled"`
	Phone           string             `json:"phone"`
	PhoneEnabled    bool               `json:"phoneEnabled"`
	Location        string             `json:"location"`
	LocationEnabled bool               `json:"locationEnabled"`
	SocialLinks     ContactSocialLinks `json:"socialLinks"`
	FormEnabled     bool               `json:"formEnabled"`
}

type ContactSocialLinks struct {
	GitHub          string `json:"github"`
	GitHubEnabled   bool   `json:"githubEnabled"`
	LinkedIn        string `json:"linkedin"`
	LinkedInEnabled bool   `json:"linkedinEnabled"`
	Twitter         string `json:"twitter"`
	TwitterEnabled  bool   `json:"twitterEnabled"`
}

// Snapshot is the content plus selection at one point in time. It is the
// unit recorded in history and written to the persisted slot.
type Snapshot struct {
	Content          PortfolioContent `json:"content"`
	SelectedSections []SectionType    `json:"selectedSections"`
}

// Clone returns a deep copy so the caller can hand it out or keep it
// without sharing slices.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Content:          s.Content.Clone(),
		SelectedSections: cloneSlice(s.SelectedSections),
	}
}

func (c PortfolioContent) Clone() PortfolioContent {
	out := c
	if c.Hero.SocialLinks.Twitter != nil {
		tw := *c.Hero.SocialLinks.Twitter
		out.Hero.SocialLinks.Twitter = &tw
	}
	out.About.Journey = cloneStrings(c.About.Journey)
	out.About.Skills = cloneSlice(c.About.Skills)
	out.About.Services = cloneSlice(c.About.Services)
	out.Projects.Projects = cloneProjects(c.Projects.Projects)
	return out
}

// Normalized fills nil lists with empty ones, matching what the patches
// store, so decoded content compares equal to the content that produced it.
func (c PortfolioContent) Normalized() PortfolioContent {
	out := c.Clone()
	out.About.Journey = nonNil(out.About.Journey)
	out.About.Skills = nonNil(out.About.Skills)
	out.About.Services = nonNil(out.About.Services)
	out.Projects.Projects = nonNil(out.Projects.Projects)
	for i := range out.Projects.Projects {
		out.Projects.Projects[i].Tags = nonNil(out.Projects.Projects[i].Tags)
	}
	return out
}

// FindProject returns the index of the project with id, or -1.
func (p ProjectsContent) FindProject(id string) int {
	for i := range p.Projects {
		if p.Projects[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneProjects(in []Project) []Project {
	if in == nil {
		return nil
	}
	out := make([]Project, len(in))
	for i, p := range in {
		p.Tags = cloneStrings(p.Tags)
		out[i] = p
	}
	return out
}

func cloneStrings(in []string) []string {
	return cloneSlice(in)
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
