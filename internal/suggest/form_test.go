package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeForm_Resume(t *testing.T) {
	e := newTestEngine(t, dictionaryPredictor(nil))
	form := NewResumeForm(e)

	e.Set(Personal(FieldFullName), "Jane Doe")
	e.Set(Personal(FieldEmail), "typed@example.com")
	e.Set(Personal(FieldSkills), "Go, SQL")
	e.Set(Education(FieldInstitution), "MIT")
	e.Set(Education(FieldGraduationYear), "2020")
	e.Set(Experience(0, FieldCompanyName), "Acme")
	e.Set(Experience(0, FieldJobTitle), "Engineer")

	r := form.Resume("jane@example.com")
	assert.Equal(t, "Jane Doe", r.FullName)
	assert.Equal(t, "jane@example.com", r.Email, "account email wins")
	assert.Equal(t, "Go, SQL", r.Skills)
	assert.Equal(t, "MIT", r.Education.Institution)
	assert.Equal(t, "2020", r.Education.GraduationYear)
	require.Len(t, r.Experience, 1)
	assert.Equal(t, "Acme", r.Experience[0].CompanyName)
	assert.Equal(t, "Engineer", r.Experience[0].JobTitle)

	assert.Equal(t, "typed@example.com", form.Resume("").Email)
}

func TestResumeForm_AddAndRemoveExperience(t *testing.T) {
	e := newTestEngine(t, dictionaryPredictor(nil))
	form := NewResumeForm(e)

	assert.ErrorIs(t, form.RemoveExperience(0), ErrLastExperience)

	assert.Equal(t, 1, form.AddExperience())
	assert.Equal(t, 2, form.AddExperience())
	e.Set(Experience(0, FieldCompanyName), "A")
	e.Set(Experience(1, FieldCompanyName), "B")
	e.Set(Experience(2, FieldCompanyName), "C")
	e.Set(Experience(2, FieldDuration), "2y")

	require.NoError(t, form.RemoveExperience(1))
	assert.Equal(t, 2, form.ExperienceCount())

	r := form.Resume("")
	require.Len(t, r.Experience, 2)
	assert.Equal(t, "A", r.Experience[0].CompanyName)
	assert.Equal(t, "C", r.Experience[1].CompanyName)
	assert.Equal(t, "2y", r.Experience[1].Duration)

	_, ok := e.Field(Experience(2, FieldCompanyName))
	assert.False(t, ok)

	assert.Error(t, form.RemoveExperience(5))
}

func TestResumeForm_Keys(t *testing.T) {
	form := NewResumeForm(newTestEngine(t, dictionaryPredictor(nil)))
	form.AddExperience()

	keys := form.Keys()
	assert.Len(t, keys, len(PersonalFields)+len(EducationFields)+2*len(ExperienceFields))
	assert.Equal(t, Personal(FieldFullName), keys[0])
	assert.Equal(t, Experience(1, FieldDuration), keys[len(keys)-1])
}
