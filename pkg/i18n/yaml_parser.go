package i18n

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a catalog document of the form
//
//	<lang>:
//	  section:
//	    key: "text"
//
// into flat per-language maps keyed by dotted paths ("section.key").
func ParseYAML(content []byte) (map[string]map[string]string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	if len(doc) == 0 {
		return nil, ErrEmptyCatalog
	}

	result := make(map[string]map[string]string, len(doc))
	for lang, val := range doc {
		tree, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q: expected map, got %T", ErrFailedToParseYAML, lang, val)
		}
		flat := make(map[string]string)
		flatten("", tree, flat)
		result[lang] = flat
	}

	return result, nil
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		case nil:
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}
