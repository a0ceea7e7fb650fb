package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"plain", "johndoe", "johndoe", true},
		{"leading at stripped", "@johndoe", "johndoe", true},
		{"surrounding whitespace", "  johndoe  ", "johndoe", true},
		{"whitespace then at", " @johndoe", "johndoe", true},
		{"dots dashes underscores", "john.doe-_99", "john.doe-_99", true},
		{"minimum length", "abc", "abc", true},
		{"maximum length", strings.Repeat("a", 64), strings.Repeat("a", 64), true},
		{"too short", "ab", "", false},
		{"too long", strings.Repeat("a", 65), "", false},
		{"spaces inside", "john doe", "", false},
		{"shell metacharacters", "john;rm", "", false},
		{"unicode", "jöhnny", "", false},
		{"empty", "", "", false},
		{"bare at", "@", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateUsername(tt.input)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrInvalidUsername)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchOptions_Validated(t *testing.T) {
	opts := SearchOptions{
		TopSites:       99999,
		TimeoutSeconds: -5,
		MaxConnections: 0,
		Retries:        50,
		Tags:           []string{"forum"},
	}

	v := opts.Validated()
	assert.Equal(t, TopSitesMax, v.TopSites)
	assert.Equal(t, TimeoutMin, v.TimeoutSeconds)
	assert.Equal(t, MaxConnectionsMin, v.MaxConnections)
	assert.Equal(t, RetriesMax, v.Retries)
	assert.Equal(t, DefaultIDType, v.IDType)
	assert.Equal(t, []string{"forum"}, v.Tags)

	// Idempotent: a validated copy passes through unchanged.
	assert.Equal(t, v, v.Validated())
}

func TestSearchOptions_ValidatedCopiesSlices(t *testing.T) {
	tags := []string{"forum", "news"}
	v := SearchOptions{Tags: tags}.Validated()

	tags[0] = "mutated"
	assert.Equal(t, "forum", v.Tags[0])
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(5, 1, 10))
	assert.Equal(t, 1, Clamp(-3, 1, 10))
	assert.Equal(t, 10, Clamp(200, 1, 10))
	assert.Equal(t, 1, Clamp(1, 1, 10))
	assert.Equal(t, 10, Clamp(10, 1, 10))
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Equal(t, []string{"forum"}, SplitList("forum"))
	assert.Equal(t, []string{"forum", "news"}, SplitList("forum, news"))
	assert.Equal(t, []string{"a", "b"}, SplitList(" a ,, b , "))
	assert.Nil(t, SplitList(" , ,"))
}
