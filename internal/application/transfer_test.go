package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Ada Lovelace":       "ada-lovelace",
		"  Grace   Hopper  ": "grace-hopper",
		"J.R.R. Tolkien":     "j-r-r-tolkien",
		"Zoë Ünal":           "zoe-unal",
		"José":               "jose",
		"Søren Kierkegaard":  "soren-kierkegaard",
		"Straße 5":           "strasse-5",
		"李 Wei":              "wei",
		"":                   "",
		"!!!":                "",
		"R2-D2":              "r2-d2",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slug(in), in)
	}
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "ada-lovelace-portfolio.json", ExportFileName("Ada Lovelace"))
	assert.Equal(t, "my-portfolio.json", ExportFileName("   "))
	assert.Equal(t, "jose-nunez-portfolio.json", ExportFileName("José Núñez"))
	assert.Equal(t, "ada-lovelace-portfolio.zip", BundleFileName("Ada Lovelace"))
	assert.Equal(t, "my-portfolio.zip", BundleFileName(""))
}
