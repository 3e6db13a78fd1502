package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldKey_String(t *testing.T) {
	assert.Equal(t, "skills", Personal("skills").String())
	assert.Equal(t, "education_degree", Education("degree").String())
	assert.Equal(t, "experience_2_jobTitle", Experience(2, "jobTitle").String())
}

func TestParseFieldKey(t *testing.T) {
	for _, k := range []FieldKey{Personal("fullName"), Education("institution"), Experience(0, "companyName"), Experience(11, "duration")} {
		got, err := ParseFieldKey(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	for _, bad := range []string{"", "education_", "experience_x_name", "experience_1", "experience_-1_name"} {
		_, err := ParseFieldKey(bad)
		assert.Error(t, err, bad)
	}
}
