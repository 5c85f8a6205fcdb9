package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type skill struct {
	Name  string `json:"name" validate:"required"`
	Level int    `json:"level" validate:"percent"`
}

type profile struct {
	Section string  `json:"section" validate:"section"`
	Icon    string  `json:"icon" validate:"omitempty,icon"`
	Skills  []skill `json:"skills" validate:"dive"`
}

func TestToDetailsUsesJSONPaths(t *testing.T) {
	err := New().Struct(profile{
		Section: "footer",
		Icon:    "Rocket",
		Skills:  []skill{{Name: "Go", Level: 50}, {Level: 120}},
	})
	require.Error(t, err)

	assert.Equal(t, map[string]string{
		"section":         "must be one of: hero, about, projects, contact",
		"icon":            "must be one of: Code, Database, Palette, Zap, Globe, Smartphone",
		"skills[1].name":  "is required",
		"skills[1].level": "must be between 0 and 100",
	}, ToDetails(err))
}

func TestToDetailsDecodeErrors(t *testing.T) {
	var v struct {
		Level int `json:"level"`
	}
	err := json.Unmarshal([]byte(`{"level":"high"}`), &v)
	assert.Equal(t, map[string]string{"level": "must be an integer"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{"level":`), &v)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("other")))
	assert.Nil(t, ToDetails(nil))
}
