// Package suggest implements debounced, per-field word completion for the
// resume form.
package suggest

import (
	"fmt"
	"strconv"
	"strings"
)

// Section identifies which part of the form a field belongs to.
type Section int

const (
	SectionPersonal Section = iota
	SectionEducation
	SectionExperience
)

func (s Section) String() string {
	switch s {
	case SectionPersonal:
		return "personal"
	case SectionEducation:
		return "education"
	case SectionExperience:
		return "experience"
	}
	return "unknown"
}

// FieldKey identifies a form field. Index is only meaningful for
// experience fields.
type FieldKey struct {
	Section Section
	Index   int
	Name    string
}

// Personal returns the key of a top-level form field.
func Personal(name string) FieldKey {
	return FieldKey{Section: SectionPersonal, Name: name}
}

// Education returns the key of an education field.
func Education(name string) FieldKey {
	return FieldKey{Section: SectionEducation, Name: name}
}

// Experience returns the key of a field in the i-th experience entry.
func Experience(i int, name string) FieldKey {
	return FieldKey{Section: SectionExperience, Index: i, Name: name}
}

// String renders the key as name, education_<name> or experience_<i>_<name>.
func (k FieldKey) String() string {
	switch k.Section {
	case SectionEducation:
		return "education_" + k.Name
	case SectionExperience:
		return fmt.Sprintf("experience_%d_%s", k.Index, k.Name)
	default:
		return k.Name
	}
}

// ParseFieldKey is the inverse of FieldKey.String.
func ParseFieldKey(s string) (FieldKey, error) {
	if s == "" {
		return FieldKey{}, fmt.Errorf("empty field key")
	}
	if name, ok := strings.CutPrefix(s, "education_"); ok {
		if name == "" {
			return FieldKey{}, fmt.Errorf("invalid field key %q", s)
		}
		return Education(name), nil
	}
	if rest, ok := strings.CutPrefix(s, "experience_"); ok {
		idx, name, found := strings.Cut(rest, "_")
		if !found || name == "" {
			return FieldKey{}, fmt.Errorf("invalid field key %q", s)
		}
		i, err := strconv.Atoi(idx)
		if err != nil || i < 0 {
			return FieldKey{}, fmt.Errorf("invalid experience index in %q", s)
		}
		return Experience(i, name), nil
	}
	return Personal(s), nil
}
