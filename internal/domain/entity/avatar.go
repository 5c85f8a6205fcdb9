package entity

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Avatar is either an uploaded image, referenced by URL, or initials text.
// The image bytes belong to the upload service.
type Avatar struct {
	ImageURL string `json:"imageUrl,omitempty"`
	Initials string `json:"initials,omitempty"`
}

// UnmarshalJSON also accepts the older plain string form ("JD"), which is
// read as initials.
func (a *Avatar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Avatar{Initials: s}
		return nil
	}
	type plain Avatar
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*a = Avatar(p)
	return nil
}

func (a Avatar) HasImage() bool {
	return strings.TrimSpace(a.ImageURL) != ""
}

// Display returns the text shown when there is no image: the stored
// initials, or initials derived from name.
func (a Avatar) Display(name string) string {
	if s := strings.TrimSpace(a.Initials); s != "" {
		return s
	}
	return Initials(name)
}

// Initials takes the first letter of up to two words of name.
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, w := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(w)
		if r == utf8.RuneError {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		if n++; n == 2 {
			break
		}
	}
	return b.String()
}
