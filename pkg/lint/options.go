package lint

// option extracts a typed option with a default value.
func option[T any](opts map[string]any, key string, defaultVal T) T {
	if opts == nil {
		return defaultVal
	}
	v, ok := opts[key]
	if !ok {
		return defaultVal
	}
	if typed, ok := v.(T); ok {
		return typed
	}
	return defaultVal
}

// IntOption returns an int option, handling float64 from JSON and int64
// from YAML decoders.
func (p *Pass) IntOption(key string, defaultVal int) int {
	if p.Options == nil {
		return defaultVal
	}
	switch n := p.Options[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return defaultVal
	}
}

// StringOption returns a string option.
func (p *Pass) StringOption(key, defaultVal string) string {
	return option(p.Options, key, defaultVal)
}

// BoolOption returns a bool option.
func (p *Pass) BoolOption(key string, defaultVal bool) bool {
	return option(p.Options, key, defaultVal)
}

// StringSliceOption returns a string slice option. Lists decoded from
// config files arrive as []any.
func (p *Pass) StringSliceOption(key string, defaultVal []string) []string {
	if p.Options == nil {
		return defaultVal
	}
	switch s := p.Options[key].(type) {
	case []string:
		return s
	case []any:
		result := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	default:
		return defaultVal
	}
}
