package suggest

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/job-portal/internal/types"
)

// Field names of the resume form.
const (
	FieldFullName       = "fullName"
	FieldEmail          = "email"
	FieldPhoneNumber    = "phoneNumber"
	FieldLinkedIn       = "linkedin"
	FieldSkills         = "skills"
	FieldCertifications = "certifications"
	FieldHobbies        = "hobbies"

	FieldInstitution    = "institution"
	FieldDegree         = "degree"
	FieldGraduationYear = "graduationYear"

	FieldCompanyName = "companyName"
	FieldJobTitle    = "jobTitle"
	FieldDuration    = "duration"
)

// PersonalFields, EducationFields and ExperienceFields list the form fields
// of each section in display order.
var (
	PersonalFields   = []string{FieldFullName, FieldEmail, FieldPhoneNumber, FieldLinkedIn, FieldSkills, FieldCertifications, FieldHobbies}
	EducationFields  = []string{FieldInstitution, FieldDegree, FieldGraduationYear}
	ExperienceFields = []string{FieldCompanyName, FieldJobTitle, FieldDuration}
)

// ErrLastExperience is returned when removing the only experience entry.
var ErrLastExperience = errors.New("cannot remove the last experience entry")

// ResumeForm is a resume being filled in through an Engine.
type ResumeForm struct {
	engine *Engine

	mu          sync.Mutex
	experiences int
}

// NewResumeForm returns a form with a single empty experience entry.
func NewResumeForm(engine *Engine) *ResumeForm {
	return &ResumeForm{engine: engine, experiences: 1}
}

// Engine returns the engine backing the form.
func (f *ResumeForm) Engine() *Engine {
	return f.engine
}

// ExperienceCount returns the number of experience entries.
func (f *ResumeForm) ExperienceCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.experiences
}

// Keys lists every field key of the form in display order.
func (f *ResumeForm) Keys() []FieldKey {
	n := f.ExperienceCount()
	keys := make([]FieldKey, 0, len(PersonalFields)+len(EducationFields)+n*len(ExperienceFields))
	for _, name := range PersonalFields {
		keys = append(keys, Personal(name))
	}
	for _, name := range EducationFields {
		keys = append(keys, Education(name))
	}
	for i := 0; i < n; i++ {
		for _, name := range ExperienceFields {
			keys = append(keys, Experience(i, name))
		}
	}
	return keys
}

// AddExperience appends an empty experience entry and returns its index.
func (f *ResumeForm) AddExperience() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.experiences++
	return f.experiences - 1
}

// RemoveExperience deletes entry i. Later entries shift down one index.
func (f *ResumeForm) RemoveExperience(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if i < 0 || i >= f.experiences {
		return fmt.Errorf("experience index %d out of range", i)
	}
	if f.experiences == 1 {
		return ErrLastExperience
	}

	for j := i; j < f.experiences-1; j++ {
		for _, name := range ExperienceFields {
			f.engine.Set(Experience(j, name), f.engine.Value(Experience(j+1, name)))
		}
	}
	for _, name := range ExperienceFields {
		f.engine.Remove(Experience(f.experiences-1, name))
	}
	f.experiences--
	return nil
}

// Resume assembles the form values. A non-empty accountEmail replaces the
// email typed into the form.
func (f *ResumeForm) Resume(accountEmail string) types.Resume {
	e := f.engine
	r := types.Resume{
		FullName:       e.Value(Personal(FieldFullName)),
		Email:          e.Value(Personal(FieldEmail)),
		PhoneNumber:    e.Value(Personal(FieldPhoneNumber)),
		LinkedIn:       e.Value(Personal(FieldLinkedIn)),
		Skills:         e.Value(Personal(FieldSkills)),
		Certifications: e.Value(Personal(FieldCertifications)),
		Hobbies:        e.Value(Personal(FieldHobbies)),
		Education: types.Education{
			Institution:    e.Value(Education(FieldInstitution)),
			Degree:         e.Value(Education(FieldDegree)),
			GraduationYear: e.Value(Education(FieldGraduationYear)),
		},
	}
	if email := strings.TrimSpace(accountEmail); email != "" {
		r.Email = email
	}

	n := f.ExperienceCount()
	r.Experience = make([]types.Experience, n)
	for i := 0; i < n; i++ {
		r.Experience[i] = types.Experience{
			CompanyName: e.Value(Experience(i, FieldCompanyName)),
			JobTitle:    e.Value(Experience(i, FieldJobTitle)),
			Duration:    e.Value(Experience(i, FieldDuration)),
		}
	}
	return r
}
