package entity

import (
	"errors"
	"strings"
)

// SectionType is one of the four top-level content areas.
type SectionType string

const (
	SectionHero     SectionType = "hero"
	SectionAbout    SectionType = "about"
	SectionProjects SectionType = "projects"
	SectionContact  SectionType = "contact"
)

var ErrUnknownSection = errors.New("unknown section")

// Sections lists every section in canonical order.
func Sections() []SectionType {
	return []SectionType{SectionHero, SectionAbout, SectionProjects, SectionContact}
}

func (s SectionType) Valid() bool {
	switch s {
	case SectionHero, SectionAbout, SectionProjects, SectionContact:
		return true
	default:
		return false
	}
}

// Label is the display name used in UI messages and exported pages.
func (s SectionType) Label() string {
	switch s {
	case SectionHero:
		return "Hero"
	case SectionAbout:
		return "About"
	case SectionProjects:
		return "Projects"
	case SectionContact:
		return "Contact"
	default:
		return string(s)
	}
}

func ParseSection(v string) (SectionType, error) {
	s := SectionType(strings.ToLower(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", ErrUnknownSection
	}
	return s, nil
}

// NormalizeSelection drops unknown tags and repeated tags, keeping the
// first occurrence so the order the caller chose is preserved.
func NormalizeSelection(in []SectionType) []SectionType {
	out := make([]SectionType, 0, len(in))
	seen := make(map[SectionType]bool, len(in))
	for _, s := range in {
		if !s.Valid() || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// ContainsSection reports whether s is part of the selection.
func ContainsSection(selected []SectionType, s SectionType) bool {
	for _, v := range selected {
		if v == s {
			return true
		}
	}
	return false
}
