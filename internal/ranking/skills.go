package ranking

import "strings"

// SkillSet is a set of lower-cased, trimmed skill tokens.
type SkillSet []string

// ParseSkills splits a comma separated skills string into a SkillSet.
// Empty tokens are dropped and duplicates collapse to their first occurrence.
func ParseSkills(raw string) SkillSet {
	tokens := tokenize(raw)
	if len(tokens) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tokens))
	out := make(SkillSet, 0, len(tokens))
	for _, t := range tokens {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// Empty reports whether the set has no tokens.
func (s SkillSet) Empty() bool {
	return len(s) == 0
}

func tokenize(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.ToLower(strings.TrimSpace(p))
		if t == "" {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}
