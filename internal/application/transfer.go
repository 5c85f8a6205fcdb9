package application

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const fallbackExportName = "my-portfolio.json"

// Document returns the current state in its portable form.
func (s *PortfolioService) Document() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.store.Snapshot()
	doc := Document{
		Version:          DocumentVersion,
		Content:          snap.Content,
		SelectedSections: snap.SelectedSections,
	}
	if s.theme != "" {
		theme := s.theme
		doc.Theme = &theme
	}
	return doc
}

// Export encodes the current document with two-space indentation and
// returns it with a download file name derived from the hero name.
func (s *PortfolioService) Export() (data []byte, filename string, err error) {
	doc := s.Document()
	data, err = MarshalDocument(doc)
	if err != nil {
		return nil, "", err
	}
	return data, ExportFileName(doc.Content.Hero.Name), nil
}

func MarshalDocument(doc Document) ([]byte, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return b, nil
}

// ExportFileName turns "Ada Lovelace" into "ada-lovelace-portfolio.json"
// and "José Núñez" into "jose-nunez-portfolio.json".
func ExportFileName(name string) string {
	slug := Slug(name)
	if slug == "" {
		return fallbackExportName
	}
	return slug + "-portfolio.json"
}

// latinLetters spells out letters that have no decomposed form.
var latinLetters = strings.NewReplacer("ß", "ss", "æ", "ae", "œ", "oe", "ø", "o", "ł", "l", "đ", "d", "þ", "th")

// Slug lowercases s, strips diacritics and joins its ASCII letter and
// digit runs with dashes. Letters outside the Latin script are dropped.
func Slug(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}
	folded = latinLetters.Replace(folded)

	var b strings.Builder
	dash := false
	for _, r := range folded {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
