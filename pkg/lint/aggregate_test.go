package lint_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapa11y/pkg/core"
	"github.com/leapstack-labs/leapa11y/pkg/dom"
	"github.com/leapstack-labs/leapa11y/pkg/lint"
)

func finding(name string, level core.Level, line int) core.Finding {
	return core.Finding{
		RuleID:    name,
		Name:      name,
		Criterion: "1.1.1",
		Level:     level,
		Element:   "<x>",
		Line:      line,
		Message:   "m",
	}
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, lint.Aggregate(nil))
	assert.Equal(t, 0, lint.CountIssues(nil))
}

func TestAggregate_GroupsAndOrders(t *testing.T) {
	findings := []core.Finding{
		finding("alpha", core.LevelA, 1),
		finding("beta", core.LevelAAA, 2),
		finding("alpha", core.LevelA, 3),
		finding("gamma", core.LevelAA, 4),
		finding("delta", core.LevelA, 5),
		finding("beta", core.LevelAAA, 6),
	}

	groups := lint.Aggregate(findings)
	require.Len(t, groups, 4)

	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	assert.Equal(t, []string{"beta", "gamma", "alpha", "delta"}, names)

	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, 2, groups[2].Count)
	assert.Equal(t, []int{1, 3}, []int{groups[2].Issues[0].Line, groups[2].Issues[1].Line})
	assert.Equal(t, len(findings), lint.CountIssues(groups))
}

func TestAggregate_KeyIncludesLevelAndCriterion(t *testing.T) {
	a := finding("same", core.LevelA, 1)
	b := finding("same", core.LevelAA, 2)
	c := finding("same", core.LevelA, 3)
	c.Criterion = "2.2.2"

	groups := lint.Aggregate([]core.Finding{a, b, c})
	require.Len(t, groups, 3)
	assert.Equal(t, core.LevelAA, groups[0].Level)
}

func TestAggregate_SeverityMonotonic(t *testing.T) {
	levels := []core.Level{core.LevelA, core.LevelAAA, core.LevelAA, "", core.LevelA, core.LevelAAA}
	var findings []core.Finding
	for i, l := range levels {
		findings = append(findings, finding(string(rune('a'+i)), l, i))
	}

	groups := lint.Aggregate(findings)
	for i := 1; i < len(groups); i++ {
		assert.GreaterOrEqual(t, groups[i-1].Level.Rank(), groups[i].Level.Rank())
	}
	assert.Equal(t, core.Level(""), groups[len(groups)-1].Level)
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	findings := []core.Finding{finding("a", core.LevelA, 1), finding("b", core.LevelAAA, 2)}
	_ = lint.Aggregate(findings)
	assert.Equal(t, "a", findings[0].Name)
}

func TestDescribeElement(t *testing.T) {
	doc := dom.Parse(`<p class="x">hi</p>`)
	assert.Equal(t, `<p class="x">hi</p>`, lint.DescribeElement(doc.Find(dom.Tag("p"))))
	assert.Equal(t, "unknown", lint.DescribeElement(nil))

	big := `<div id="big" title="a&amp;b">` + strings.Repeat("<p>x</p>\n", 60) + `</div>`
	doc = dom.Parse(big)
	assert.Equal(t, `<div id="big" title="a&amp;b">...`, lint.DescribeElement(doc.Find(dom.Tag("div"))))

	bare := `<section>` + strings.Repeat("\n", 55) + `</section>`
	doc = dom.Parse(bare)
	assert.Equal(t, `<section>...`, lint.DescribeElement(doc.Find(dom.Tag("section"))))
}
