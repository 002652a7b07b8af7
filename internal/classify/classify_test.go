package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchFirstRuleWins(t *testing.T) {
	t.Parallel()

	// "grace" precedes "amazing grace"; first match in order wins even though
	// the later keyword is longer and more specific.
	rules := RuleSet{
		{"grace", "Grace & Salvation"},
		{"amazing grace", "Hymn"},
	}

	assert.Equal(t, "Grace & Salvation", rules.Match("Amazing Grace Hymnbook", "Other"))
}

func TestMatchCaseFolding(t *testing.T) {
	t.Parallel()

	rules := RuleSet{{"calvin", "John Calvin"}}

	assert.Equal(t, "John Calvin", rules.Match("CALVIN - Institutes.pdf", "Unknown"))
	assert.Equal(t, "John Calvin", rules.Match("calvin institutes", "Unknown"))
}

func TestMatchFallback(t *testing.T) {
	t.Parallel()

	rules := RuleSet{{"calvin", "John Calvin"}}

	assert.Equal(t, "Unknown", rules.Match("Pilgrim's Progress", "Unknown"))
	assert.Equal(t, "Other", RuleSet(nil).Match("anything", "Other"))
}

func TestMatchIsPure(t *testing.T) {
	t.Parallel()

	rules := RuleSet{
		{"systematic", "Systematic Theology"},
		{"theology", "Systematic Theology"},
		{"sermon", "Sermons"},
	}

	const input = "Systematic Theology Vol 1.pdf"
	first := rules.Match(input, "Other")
	for i := 0; i < 50; i++ {
		require.Equal(t, first, rules.Match(input, "Other"))
	}
	// Unrelated calls in between must not influence the result.
	rules.Match("a sermon on prayer", "Other")
	assert.Equal(t, first, rules.Match(input, "Other"))
}

func TestClassifierDefaults(t *testing.T) {
	t.Parallel()

	c := New(nil, nil)

	assert.Equal(t, "Systematic Theology", c.Category("Berkhof Systematic Theology.epub"))
	assert.Equal(t, "Louis Berkhof", c.Author("Berkhof Systematic Theology.epub"))
	assert.Equal(t, "Other", c.Category("1689 London Baptist.pdf"))
	assert.Equal(t, "Unknown", c.Author("some anonymous tract"))
}

func TestClassifierPinnedRuleOrder(t *testing.T) {
	t.Parallel()

	// "systematic" is defined before "theology", so a title containing both
	// resolves through the first rule. Both map to the same label today; the
	// order is still pinned because overlapping author keywords rely on it.
	cats := DefaultCategoryRules()
	require.Equal(t, "systematic", cats[0].Keyword)
	require.Equal(t, "theology", cats[1].Keyword)

	c := New(nil, nil)
	// "christ" appears before "salvation" in the table.
	assert.Equal(t, "Christology", c.Category("christ our salvation"))
}
