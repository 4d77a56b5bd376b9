package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_RecommendTemplates(t *testing.T) {
	ClearCache()

	general, err := Get(RecommendFile, KeyJobRecommendations)
	require.NoError(t, err)
	assert.Contains(t, general, "overall_top_jobs")
	assert.Contains(t, general, "{{.Skills}}")

	keyword, err := Get(RecommendFile, KeyKeywordRecommendations)
	require.NoError(t, err)
	assert.Contains(t, keyword, "keyword_jobs")
	assert.Contains(t, keyword, "learning_path")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(RecommendFile, "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() { MustGet("nonexistent.json", "some-key") })
	assert.NotPanics(t, func() {
		assert.NotEmpty(t, MustGet(RecommendFile, KeyAdditionalContext))
	})
}

func TestFormat(t *testing.T) {
	tmpl := "Skills: {{.Skills}} for {{.Keyword}} and {{.Keyword}}"
	out := Format(tmpl, map[string]string{"Skills": "go, sql", "Keyword": "go"})
	assert.Equal(t, "Skills: go, sql for go and go", out)
}

func TestFormat_MissingValueLeftInPlace(t *testing.T) {
	assert.Equal(t, "Hello {{.Name}}", Format("Hello {{.Name}}", map[string]string{}))
}

func TestFormat_ValueContainingPlaceholderIsNotExpanded(t *testing.T) {
	out := Format("{{.A}}", map[string]string{"A": "{{.B}}", "B": "x"})
	assert.Equal(t, "{{.B}}", out)
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders(MustGet(RecommendFile, KeyKeywordRecommendations))
	assert.Equal(t, []string{"Context", "Keyword"}, got)
}

func TestRender(t *testing.T) {
	ClearCache()

	out, err := Render(RecommendFile, KeyKeywordRecommendations, map[string]string{
		"Keyword": "Python",
		"Context": " (context: SQL, Docker)",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "PRIMARY SKILL: Python (context: SQL, Docker)")
	assert.NotContains(t, out, "{{.")

	_, err = Render(RecommendFile, KeyKeywordRecommendations, map[string]string{"Keyword": "Python"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing values for Context")
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List(RecommendFile)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyAdditionalContext, KeyJobRecommendations, KeyKeywordRecommendations}, keys)
}

func TestCaching(t *testing.T) {
	ClearCache()

	_, err := Get(RecommendFile, KeyJobRecommendations)
	require.NoError(t, err)

	cacheMu.RLock()
	_, cached := cache[RecommendFile]
	cacheMu.RUnlock()
	assert.True(t, cached)
}
