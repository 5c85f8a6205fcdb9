// Package bundle renders a builder document as a static site packed in a
// zip archive: index.html, portfolio.json and the images it references.
package bundle

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-builder/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-builder/pkg/helpers"
)

const (
	DefaultFetchTimeout  = 10 * time.Second
	DefaultMaxAssetBytes = 10 << 20
)

var (
	errAssetTooLarge = errors.New("asset too large")

	// ErrBlockedAddress is returned when an asset URL resolves to an
	// address that is not publicly routable.
	ErrBlockedAddress = errors.New("asset address is not public")
)

// Input is everything the page is rendered from. Document is written
// verbatim as portfolio.json.
type Input struct {
	Content  entity.PortfolioContent
	Sections []entity.SectionType
	Theme    string
	Document []byte
}

// Fetcher downloads a remote asset.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

type HTTPFetcher struct {
	Client   *http.Client
	MaxBytes int64
}

// NewHTTPFetcher returns a fetcher that only connects to public addresses.
// The check runs on the dialed address, so redirects and DNS answers that
// point inside the network are refused too.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	dialer := &net.Dialer{Timeout: timeout, Control: publicOnly}
	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ExpectContinueTimeout: time.Second,
	}
	return &HTTPFetcher{
		Client:   &http.Client{Timeout: timeout, Transport: transport},
		MaxBytes: DefaultMaxAssetBytes,
	}
}

func publicOnly(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil || helpers.IsInternalIP(ip) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, host)
	}
	return nil
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	res, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", rawURL, res.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(res.Body, f.MaxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > f.MaxBytes {
		return nil, errAssetTooLarge
	}
	return b, nil
}

type Builder struct {
	Fetcher Fetcher
	Logger  *logrus.Logger
}

func NewBuilder(f Fetcher, logger *logrus.Logger) *Builder {
	return &Builder{Fetcher: f, Logger: logger}
}

type page struct {
	Content       entity.PortfolioContent
	Sections      []entity.SectionType
	Theme         string
	AvatarSrc     string
	AvatarText    string
	ProjectImages map[string]string
}

type asset struct {
	name string
	data []byte
}

// Build renders in and returns the zip archive. Images that cannot be
// downloaded stay linked to their original URL.
func (b *Builder) Build(ctx context.Context, in Input) ([]byte, error) {
	p := page{
		Content:       in.Content,
		Sections:      entity.NormalizeSelection(in.Sections),
		Theme:         in.Theme,
		AvatarText:    in.Content.Hero.Avatar.Display(in.Content.Hero.Name),
		ProjectImages: make(map[string]string),
	}
	var assets []asset
	names := map[string]bool{"avatar": true}

	hero := in.Content.Hero
	if entity.ContainsSection(p.Sections, entity.SectionHero) && hero.Avatar.HasImage() {
		p.AvatarSrc = hero.Avatar.ImageURL
		if a, ok := b.fetchAsset(ctx, hero.Avatar.ImageURL, "avatar"); ok {
			p.AvatarSrc = a.name
			assets = append(assets, a)
		}
	}
	if entity.ContainsSection(p.Sections, entity.SectionProjects) {
		for _, pr := range in.Content.Projects.Projects {
			if strings.TrimSpace(pr.Image) == "" {
				continue
			}
			p.ProjectImages[pr.ID] = pr.Image
			if a, ok := b.fetchAsset(ctx, pr.Image, uniqueName(names, safeName(pr.ID))); ok {
				p.ProjectImages[pr.ID] = a.name
				assets = append(assets, a)
			}
		}
	}

	var html bytes.Buffer
	if err := pageTemplate.Execute(&html, p); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := append([]asset{
		{name: "index.html", data: html.Bytes()},
		{name: "portfolio.json", data: in.Document},
	}, assets...)
	for _, f := range files {
		w, err := zw.Create(f.name)
		if err != nil {
			return nil, fmt.Errorf("zip %s: %w", f.name, err)
		}
		if _, err := w.Write(f.data); err != nil {
			return nil, fmt.Errorf("zip %s: %w", f.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip close: %w", err)
	}
	return buf.Bytes(), nil
}

func (b *Builder) fetchAsset(ctx context.Context, rawURL, base string) (asset, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || b.Fetcher == nil {
		return asset{}, false
	}
	data, err := b.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		b.warn(err, rawURL)
		return asset{}, false
	}
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		b.warn(fmt.Errorf("not an image: %s", mime.String()), rawURL)
		return asset{}, false
	}
	return asset{name: "assets/" + base + mime.Extension(), data: data}, true
}

func (b *Builder) warn(err error, rawURL string) {
	if b.Logger != nil {
		b.Logger.WithError(err).WithField("url", rawURL).Warn("bundle asset skipped")
	}
}

// uniqueName returns base, or base with the first free numeric suffix, and
// marks the result as taken.
func uniqueName(taken map[string]bool, base string) string {
	name := base
	for n := 2; taken[name]; n++ {
		name = fmt.Sprintf("%s-%d", base, n)
	}
	taken[name] = true
	return name
}

// safeName keeps identifiers usable as file names.
func safeName(id string) string {
	var sb strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	if sb.Len() == 0 {
		return "project"
	}
	return sb.String()
}
