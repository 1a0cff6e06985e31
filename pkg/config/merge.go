package config

// mergeTemplates merges built-in and user-defined vendor templates.
// User-defined templates override built-in templates with the same id.
func mergeTemplates(builtin map[string]TemplateConfig, user map[string]TemplateConfig) map[string]*TemplateConfig {
	result := make(map[string]*TemplateConfig, len(builtin)+len(user))

	for id, tpl := range builtin {
		tplCopy := tpl
		result[id] = &tplCopy
	}

	for id, tpl := range user {
		tplCopy := tpl
		result[id] = &tplCopy
	}

	return result
}
