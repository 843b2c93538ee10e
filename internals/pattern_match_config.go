package internals

import (
	"fmt"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// loadMatchPattern loads the recursive `match` configuration subtree: a
// structural form built from `include`/`exclude`/`name`/`size`/`modified`/
// `accessed`/`created` nodes, as an alternative to the flat surface-syntax
// string accepted by DirectoryConfig.pattern.
func loadMatchPattern(node yaml.MapSlice) (Pattern, error) {
	// A `pattern:` key short-circuits to the flat surface syntax.
	if v, ok := mapSliceGet(node, "pattern"); ok {
		s, ok := v.(string)
		if !ok {
			return nil, errors.New("match.pattern must be a string")
		}
		p, err := ParsePattern(s)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, errors.Errorf("invalid pattern string: %s", s)
		}
		return p, nil
	}

	var children []Pattern
	inverted := false
	mergeMode := MergeAll

	for _, item := range node {
		key, ok := item.Key.(string)
		if !ok {
			continue
		}
		switch key {
		case "include":
			sub, ok := item.Value.(yaml.MapSlice)
			if !ok {
				return nil, errors.New("match.include must be a mapping")
			}
			p, err := loadActionPatterns(sub, MergeAll, false)
			if err != nil {
				return nil, err
			}
			children = append(children, p)
		case "exclude":
			sub, ok := item.Value.(yaml.MapSlice)
			if !ok {
				return nil, errors.New("match.exclude must be a mapping")
			}
			p, err := loadActionPatterns(sub, MergeAny, true)
			if err != nil {
				return nil, err
			}
			children = append(children, p)
		case "name":
			names, err := toStringSlice(item.Value)
			if err != nil {
				return nil, err
			}
			mergeMode = MergeAny
			for _, name := range names {
				leaf, err := namePatternFromConfigString(name)
				if err != nil {
					return nil, err
				}
				children = append(children, leaf)
			}
		case "size":
			sub, _ := item.Value.(yaml.MapSlice)
			p, err := sizePatternFromConfig(sub)
			if err != nil {
				return nil, err
			}
			return p, nil
		case "modified", "accessed", "created":
			sub, _ := item.Value.(yaml.MapSlice)
			p, err := datePatternFromConfig(sub, key)
			if err != nil {
				return nil, err
			}
			return p, nil
		default:
			return nil, errors.Errorf("unknown pattern action: %s", key)
		}
	}

	return &CompositePattern{Children: children, Inverted: inverted, MergeMode: mergeMode}, nil
}

func loadActionPatterns(node yaml.MapSlice, mode MergeMode, inverted bool) (Pattern, error) {
	children := make([]Pattern, 0, len(node))
	for _, item := range node {
		single := yaml.MapSlice{item}
		p, err := loadMatchPattern(single)
		if err != nil {
			return nil, err
		}
		children = append(children, p)
	}
	return &CompositePattern{Children: children, Inverted: inverted, MergeMode: mode}, nil
}

func namePatternFromConfigString(name string) (Pattern, error) {
	switch {
	case len(name) > 0 && name[0] == '.':
		return NewNamePattern(name, NameExtension)
	case len(name) > 1 && name[0] == '/' && name[len(name)-1] == '/':
		return NewNamePattern(name[1:len(name)-1], NameRegex)
	default:
		return NewNamePattern(name, NameExact)
	}
}

func sizePatternFromConfig(node yaml.MapSlice) (Pattern, error) {
	var min, max *int64
	if v, ok := mapSliceGet(node, "min"); ok {
		n, err := parseSizeConfigValue(v)
		if err != nil {
			return nil, err
		}
		min = &n
	}
	if v, ok := mapSliceGet(node, "max"); ok {
		n, err := parseSizeConfigValue(v)
		if err != nil {
			return nil, err
		}
		max = &n
	}
	return &SizePattern{Min: min, Max: max}, nil
}

func datePatternFromConfig(node yaml.MapSlice, mode string) (Pattern, error) {
	var min, max *int64
	if v, ok := mapSliceGet(node, "min"); ok {
		n, err := parseDurationConfigValue(v)
		if err != nil {
			return nil, err
		}
		min = &n
	}
	if v, ok := mapSliceGet(node, "max"); ok {
		n, err := parseDurationConfigValue(v)
		if err != nil {
			return nil, err
		}
		max = &n
	}
	kind := DateModified
	switch mode {
	case "accessed":
		kind = DateAccessed
	case "created":
		kind = DateCreated
	}
	return &DatePattern{Min: min, Max: max, Kind: kind}, nil
}

func parseSizeConfigValue(v interface{}) (int64, error) {
	switch t := v.(type) {
	case int:
		return int64(t), nil
	case int64:
		return t, nil
	case string:
		return ParseSize(t)
	default:
		return 0, fmt.Errorf("unsupported size value: %v", v)
	}
}

func parseDurationConfigValue(v interface{}) (int64, error) {
	switch t := v.(type) {
	case int:
		return int64(t), nil
	case int64:
		return t, nil
	case string:
		return ParseDuration(t)
	default:
		return 0, fmt.Errorf("unsupported duration value: %v", v)
	}
}

func mapSliceGet(node yaml.MapSlice, key string) (interface{}, bool) {
	for _, item := range node {
		if k, ok := item.Key.(string); ok && k == key {
			return item.Value, true
		}
	}
	return nil, false
}

func toStringSlice(v interface{}) ([]string, error) {
	list, ok := v.([]interface{})
	if !ok {
		return nil, errors.New("expected a list of names")
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, errors.New("expected a list of name strings")
		}
		out = append(out, s)
	}
	return out, nil
}
