package domain

import "strings"

// Module is a coherent curriculum unit extracted from document text.
type Module struct {
	Name          string   `json:"name"`
	Summary       string   `json:"summary"`
	Content       string   `json:"content"`
	Prerequisites []string `json:"prerequisites"`
	// Topics is optional and only set by callers; the extractor never fills it.
	Topics []string `json:"topics,omitempty"`
}

// Validate checks the fields every emitted module must carry.
func (m *Module) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return NewInvalidInputError("module name is required")
	}
	if strings.TrimSpace(m.Content) == "" {
		return NewInvalidInputError("module content is required")
	}
	return nil
}

// ModuleKey is the case-insensitive merge key of a module name.
func ModuleKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MergeModules folds modules sharing a ModuleKey into the first occurrence.
// Later duplicates have their content appended after a blank line and their
// prerequisites unioned in. Output order is first-seen order and the input
// is left untouched.
func MergeModules(modules []Module) []Module {
	index := make(map[string]int, len(modules))
	merged := make([]Module, 0, len(modules))

	for _, mod := range modules {
		key := ModuleKey(mod.Name)
		if i, ok := index[key]; ok {
			existing := &merged[i]
			existing.Content += "\n\n" + mod.Content
			existing.Prerequisites = unionStrings(existing.Prerequisites, mod.Prerequisites)
			continue
		}
		seed := mod
		seed.Prerequisites = unionStrings(nil, mod.Prerequisites)
		if mod.Topics != nil {
			seed.Topics = append([]string(nil), mod.Topics...)
		}
		index[key] = len(merged)
		merged = append(merged, seed)
	}
	return merged
}

func unionStrings(base []string, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]struct{}, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
