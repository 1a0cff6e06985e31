package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeTemplates_UserOverridesBuiltin(t *testing.T) {
	builtin := map[string]TemplateConfig{
		"anker": {ID: "anker", Name: "Anker"},
	}
	user := map[string]TemplateConfig{
		"anker": {ID: "anker", Name: "Anker (custom)"},
		"acme":  {ID: "acme", Name: "Acme"},
	}

	merged := mergeTemplates(builtin, user)
	assert.Len(t, merged, 2)
	assert.Equal(t, "Anker (custom)", merged["anker"].Name)
	assert.Equal(t, "Acme", merged["acme"].Name)
}

func TestMergeTemplates_EmptyUser(t *testing.T) {
	builtin := map[string]TemplateConfig{"anker": {ID: "anker", Name: "Anker"}}
	merged := mergeTemplates(builtin, nil)
	assert.Len(t, merged, 1)
	assert.Equal(t, "Anker", merged["anker"].Name)
}
