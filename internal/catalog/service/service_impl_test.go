package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	catalogdomain "github.com/shinglesoft/roofline/internal/catalog/domain"
	catalogrepository "github.com/shinglesoft/roofline/internal/catalog/repository"
	"github.com/shinglesoft/roofline/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) catalogdomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&catalogdomain.PricingRule{}))
	require.NoError(t, seed.EnsureDefaultCatalog(db))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  catalogrepository.Provide(),
	})
}

func TestGetRule(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rule, err := svc.GetRule(ctx, "base_full_replacement")
	require.NoError(t, err)
	require.NotNil(t, rule)
	assert.Equal(t, catalogdomain.CategoryBase, rule.RuleCategory)
	assert.Equal(t, catalogdomain.UnitSqft, rule.Unit)

	// Unknown keys are absence, not an error.
	rule, err = svc.GetRule(ctx, "no_such_rule")
	require.NoError(t, err)
	assert.Nil(t, rule)
}

func TestGetRulesByCategory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rules, err := svc.GetRulesByCategory(ctx, catalogdomain.CategoryIssue)
	require.NoError(t, err)
	assert.Len(t, rules, 6)

	empty, err := svc.GetRulesByCategory(ctx, "no_such_category")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestDeactivateRule_HidesFromLookups(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.DeactivateRule(ctx, "material_slate"))

	rule, err := svc.GetRule(ctx, "material_slate")
	require.NoError(t, err)
	assert.Nil(t, rule)

	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	_, ok := snapshot.Rule("material_slate")
	assert.False(t, ok)

	assert.ErrorIs(t, svc.DeactivateRule(ctx, "no_such_rule"), catalogdomain.ErrRuleNotFound)
}

func TestUpsertRule(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.UpsertRule(ctx, catalogdomain.UpsertRuleRequest{
		RuleKey:      "issue_hail_damage",
		RuleCategory: catalogdomain.CategoryIssue,
		DisplayName:  "Hail damage repair",
		FlatFee:      40000,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, float64(1), created.Multiplier)
	assert.True(t, created.IsActive)

	updated, err := svc.UpsertRule(ctx, catalogdomain.UpsertRuleRequest{
		RuleKey:      "issue_hail_damage",
		RuleCategory: catalogdomain.CategoryIssue,
		DisplayName:  "Hail damage repair",
		FlatFee:      55000,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	rule, err := svc.GetRule(ctx, "issue_hail_damage")
	require.NoError(t, err)
	require.NotNil(t, rule)
	assert.Equal(t, int64(55000), rule.FlatFee)
}

func TestUpsertRule_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.UpsertRule(ctx, catalogdomain.UpsertRuleRequest{RuleCategory: "x"})
	assert.ErrorIs(t, err, catalogdomain.ErrInvalidRuleKey)

	_, err = svc.UpsertRule(ctx, catalogdomain.UpsertRuleRequest{RuleKey: "x"})
	assert.ErrorIs(t, err, catalogdomain.ErrInvalidRuleCategory)

	_, err = svc.UpsertRule(ctx, catalogdomain.UpsertRuleRequest{RuleKey: "x", RuleCategory: "y", Multiplier: -1})
	assert.ErrorIs(t, err, catalogdomain.ErrInvalidMultiplier)
}
