package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCatalog_IndexesActiveRules(t *testing.T) {
	rules := DefaultRules()
	cat := NewCatalog(rules)

	assert.Equal(t, len(rules), cat.Len())

	rule, ok := cat.Rule("material_slate")
	assert.True(t, ok)
	assert.Equal(t, 2.5, rule.Multiplier)

	_, ok = cat.Rule("material_unobtanium")
	assert.False(t, ok)

	materials := cat.RulesByCategory(CategoryMaterial)
	assert.Len(t, materials, 5)
	assert.Empty(t, cat.RulesByCategory("no_such_category"))
}

func TestNewCatalog_SkipsInactiveRules(t *testing.T) {
	rules := DefaultRules()
	for i := range rules {
		if rules[i].RuleKey == "material_slate" {
			rules[i].IsActive = false
		}
	}

	cat := NewCatalog(rules)
	_, ok := cat.Rule("material_slate")
	assert.False(t, ok)
	assert.Len(t, cat.RulesByCategory(CategoryMaterial), 4)
}

func TestNewCatalog_FirstKeyWins(t *testing.T) {
	one := int64(100)
	two := int64(200)
	cat := NewCatalog([]PricingRule{
		{RuleKey: "base_repair", RuleCategory: CategoryBase, BaseRate: &one, Multiplier: 1, IsActive: true},
		{RuleKey: "base_repair", RuleCategory: CategoryBase, BaseRate: &two, Multiplier: 1, IsActive: true},
	})

	rule, ok := cat.Rule("base_repair")
	assert.True(t, ok)
	assert.Equal(t, int64(100), *rule.BaseRate)
	assert.Equal(t, 1, cat.Len())
}
