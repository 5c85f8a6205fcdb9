package bundle

import (
	"html/template"

	"github.com/oksasatya/go-portfolio-builder/internal/domain/entity"
)

var iconGlyphs = map[entity.Icon]string{
	entity.IconCode:       "</>",
	entity.IconDatabase:   "☷",
	entity.IconPalette:    "✿",
	entity.IconZap:        "⚡",
	entity.IconGlobe:      "◎",
	entity.IconSmartphone: "☎",
}

// IconGlyph is total: unknown icons render as Code.
func IconGlyph(i entity.Icon) string {
	return iconGlyphs[i.OrDefault()]
}

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"icon":  IconGlyph,
	"label": func(s entity.SectionType) string { return s.Label() },
}).Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="en"{{if .Theme}} data-theme="{{.Theme}}"{{end}}>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Content.Hero.Name}}{{if .Content.Hero.Title}} - {{.Content.Hero.Title}}{{end}}</title>
<style>
body{font-family:system-ui,sans-serif;margin:0;color:#111;background:#fff}
[data-theme=dark] body{color:#eee;background:#111}
section{max-width:960px;margin:0 auto;padding:4rem 1.5rem}
nav{display:flex;gap:1rem;justify-content:center;padding:1rem}
.avatar{width:128px;height:128px;border-radius:50%;object-fit:cover;display:flex;align-items:center;justify-content:center;font-size:2.5rem;background:#ddd}
.tags span{display:inline-block;margin:0 .25rem .25rem 0;padding:.1rem .5rem;border-radius:1rem;background:#eee;font-size:.8rem}
.bar{height:.5rem;background:#eee;border-radius:.25rem}.bar div{height:100%;background:#4f46e5;border-radius:.25rem}
.grid{display:grid;gap:1.5rem;grid-template-columns:repeat(auto-fit,minmax(260px,1fr))}
</style>
</head>
<body>
<nav>{{range .Sections}}<a href="#{{.}}">{{label .}}</a>{{end}}</nav>
{{- range .Sections}}
{{- if eq . "hero"}}{{with $.Content.Hero}}
<section id="hero">
  {{if $.AvatarSrc}}<img class="avatar" src="{{$.AvatarSrc}}" alt="{{.Name}}">{{else}}<div class="avatar">{{$.AvatarText}}</div>{{end}}
  {{if .AvailableForWork}}<p>Available for work</p>{{end}}
  <h1>{{.Name}}</h1>
  <h2>{{.Title}}</h2>
  <p>{{.Subtitle}}</p>
  <p>{{.Description}}</p>
  <p>
    {{if .CTAPrimaryEnabled}}<a href="#contact">{{.CTAPrimary}}</a>{{end}}
    {{if .CTASecondaryEnabled}}<a href="#projects">{{.CTASecondary}}</a>{{end}}
  </p>
  <p>
    {{with .SocialLinks}}
    {{if .GitHubEnabled}}<a href="{{.GitHub}}">GitHub</a>{{end}}
    {{if .LinkedInEnabled}}<a href="{{.LinkedIn}}">LinkedIn</a>{{end}}
    {{if .EmailEnabled}}<a href="mailto:{{.Email}}">Email</a>{{end}}
    {{if and .TwitterEnabled .Twitter}}<a href="{{.Twitter}}">Twitter</a>{{end}}
    {{end}}
  </p>
</section>
{{- end}}{{end}}
{{- if eq . "about"}}{{with $.Content.About}}
<section id="about">
  <h2>{{.Title}}</h2>
  <p>{{.Subtitle}}</p>
  <p>{{.Description}}</p>
  {{range .Journey}}<p>{{.}}</p>{{end}}
  <div class="grid">
    {{range .Skills}}<div><strong>{{.Name}}</strong> <small>{{.Category}}</small><div class="bar"><div style="width: {{.Level}}%"></div></div></div>{{end}}
  </div>
  <div class="grid">
    {{range .Services}}<div><span aria-hidden="true">{{icon .Icon}}</span><h3>{{.Title}}</h3><p>{{.Description}}</p></div>{{end}}
  </div>
</section>
{{- end}}{{end}}
{{- if eq . "projects"}}{{with $.Content.Projects}}
<section id="projects">
  <h2>{{.Title}}</h2>
  <p>{{.Subtitle}}</p>
  <p>{{.Description}}</p>
  <div class="grid">
    {{range .Projects}}<article>
      {{with index $.ProjectImages .ID}}<img src="{{.}}" alt="" width="100%">{{end}}
      <h3>{{.Title}}{{if .Featured}} <small>Featured</small>{{end}}</h3>
      <p>{{.Description}}</p>
      <p class="tags">{{range .Tags}}<span>{{.}}</span>{{end}}</p>
      {{if .LiveURL}}<a href="{{.LiveURL}}">Live</a>{{end}}
      {{if .GitHubURL}}<a href="{{.GitHubURL}}">Code</a>{{end}}
    </article>{{end}}
  </div>
</section>
{{- end}}{{end}}
{{- if eq . "contact"}}{{with $.Content.Contact}}
<section id="contact">
  <h2>{{.Title}}</h2>
  <p>{{.Subtitle}}</p>
  <p>{{.Description}}</p>
  <ul>
    {{if .EmailEnabled}}<li><a href="mailto:{{.Email}}">{{.Email}}</a></li>{{end}}
    {{if .PhoneEnabled}}<li>{{.Phone}}</li>{{end}}
    {{if .LocationEnabled}}<li>{{.Location}}</li>{{end}}
  </ul>
  <p>
    {{with .SocialLinks}}
    {{if .GitHubEnabled}}<a href="{{.GitHub}}">GitHub</a>{{end}}
    {{if .LinkedInEnabled}}<a href="{{.LinkedIn}}">LinkedIn</a>{{end}}
    {{if .TwitterEnabled}}<a href="{{.Twitter}}">Twitter</a>{{end}}
    {{end}}
  </p>
  {{if .FormEnabled}}<form method="post" action="#">
    <input name="name" placeholder="Name" required>
    <input name="email" type="email" placeholder="Email" required>
    <textarea name="message" placeholder="Message" required></textarea>
    <button type="submit">Send</button>
  </form>{{end}}
</section>
{{- end}}{{end}}
{{- end}}
</body>
</html>
`
