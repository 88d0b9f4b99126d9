package service

import (
	"math"
	"strings"

	catalogdomain "github.com/shinglesoft/roofline/internal/catalog/domain"
	estimationdomain "github.com/shinglesoft/roofline/internal/estimation/domain"
)

const (
	lowBandFactor  = 0.85
	highBandFactor = 1.25

	// Applied when the caller omits the roof size; a sparse lead still has to
	// produce a usable ballpark, not a zero price.
	defaultRoofSizeSqft = 1800.0

	defaultMaterial = "asphalt_3tab"
)

// Per-job-type floors the subtotal is clamped up to. Also the base price
// fallback when the catalog carries no base rule for the job type.
var minimumCharges = map[estimationdomain.JobType]int64{
	estimationdomain.JobTypeFullReplacement:    150000,
	estimationdomain.JobTypePartialReplacement: 75000,
	estimationdomain.JobTypeRepair:             35000,
	estimationdomain.JobTypeInspection:         15000,
}

const fallbackMinimumCharge = 35000

// Evaluate prices one job against a catalog snapshot. It is a pure function:
// no I/O, no shared state, deterministic for identical inputs.
//
// The composition model is fixed regardless of catalog contents: the base rule
// seeds the subtotal, multiplicative rules compose by running product in a
// fixed category order (material, pitch, stories, urgency), and flat fees
// accumulate separately so they are added after all multipliers resolve and
// are never themselves scaled. Each applied rule emits one adjustment whose
// impact is its exact dollar delta, so base + sum(impacts) == price likely.
func Evaluate(cat *catalogdomain.Catalog, input estimationdomain.PricingInput) estimationdomain.PricingResult {
	jobType := estimationdomain.JobTypeFullReplacement
	if input.JobType != nil && *input.JobType != "" {
		jobType = *input.JobType
	}

	sqft := defaultRoofSizeSqft
	if input.RoofSizeSqft != nil && *input.RoofSizeSqft > 0 {
		sqft = *input.RoofSizeSqft
	}

	eval := &evaluation{catalog: cat}
	eval.resolveBase(jobType, sqft)

	if material := optionalString(input.RoofMaterial); material != "" && material != defaultMaterial {
		eval.applyRule("material_" + material)
	}
	switch pitch := optionalString(input.PitchCategory); pitch {
	case "", "flat", "low":
		// Neutral pitch contributes nothing.
	default:
		eval.applyRule("pitch_" + pitch)
	}
	if input.Stories != nil {
		switch {
		case *input.Stories == 2:
			eval.applyRule("stories_two")
		case *input.Stories >= 3:
			eval.applyRule("stories_three_plus")
		}
	}
	switch urgency := optionalString(input.TimelineUrgency); urgency {
	case "", "flexible", "standard":
	default:
		eval.applyRule("urgency_" + urgency)
	}

	if input.HasSkylights != nil && *input.HasSkylights {
		eval.applyRule("feature_skylights")
	}
	if input.HasChimneys != nil && *input.HasChimneys {
		eval.applyRule("feature_chimneys")
	}
	if input.HasSolarPanels != nil && *input.HasSolarPanels {
		eval.applyRule("feature_solar_panels")
	}

	seen := make(map[string]bool, len(input.Issues))
	for _, issue := range input.Issues {
		issue = strings.ToLower(strings.TrimSpace(issue))
		if issue == "" || seen[issue] {
			continue
		}
		seen[issue] = true
		eval.applyRule("issue_" + issue)
	}

	likely := eval.subtotal + eval.flatFees

	if minimum := minimumCharge(jobType); likely < minimum {
		eval.adjustments = append(eval.adjustments, estimationdomain.Adjustment{
			Name:        "Minimum charge",
			Category:    catalogdomain.CategoryBase,
			Impact:      minimum - likely,
			Description: "Clamped to the job type minimum charge",
		})
		likely = minimum
	}

	return estimationdomain.PricingResult{
		PriceLow:    roundToDollars(roundMoney(float64(likely) * lowBandFactor)),
		PriceLikely: likely,
		PriceHigh:   roundToDollars(roundMoney(float64(likely) * highBandFactor)),
		Adjustments: eval.adjustments,
	}
}

type evaluation struct {
	catalog     *catalogdomain.Catalog
	subtotal    int64
	flatFees    int64
	adjustments []estimationdomain.Adjustment
}

func (e *evaluation) resolveBase(jobType estimationdomain.JobType, sqft float64) {
	rule, ok := e.catalog.Rule("base_" + string(jobType))
	if !ok || rule.BaseRate == nil {
		// No base rule configured; charge the job type minimum instead of failing.
		minimum := minimumCharge(jobType)
		e.subtotal = minimum
		e.adjustments = append(e.adjustments, estimationdomain.Adjustment{
			Name:        "Base price",
			Category:    catalogdomain.CategoryBase,
			Impact:      minimum,
			Description: "No base rule for job type; minimum charge applied",
		})
		return
	}

	base := *rule.BaseRate
	if rule.Unit == catalogdomain.UnitSqft {
		base = roundMoney(float64(*rule.BaseRate) * sqft)
	}
	e.subtotal = base
	e.adjustments = append(e.adjustments, estimationdomain.Adjustment{
		Name:        ruleName(rule),
		Category:    rule.RuleCategory,
		Impact:      base,
		Description: rule.Description,
	})
}

// applyRule applies the keyed rule to the running totals. Unknown keys are
// silently skipped: an attribute with no configured rule contributes nothing.
func (e *evaluation) applyRule(key string) {
	rule, ok := e.catalog.Rule(key)
	if !ok {
		return
	}

	var impact int64
	if rule.Multiplier != 1 {
		after := roundMoney(float64(e.subtotal) * rule.Multiplier)
		impact += after - e.subtotal
		e.subtotal = after
	}
	if rule.FlatFee != 0 {
		e.flatFees += rule.FlatFee
		impact += rule.FlatFee
	}
	if impact == 0 {
		return
	}

	e.adjustments = append(e.adjustments, estimationdomain.Adjustment{
		Name:        ruleName(rule),
		Category:    rule.RuleCategory,
		Impact:      impact,
		Description: rule.Description,
	})
}

func minimumCharge(jobType estimationdomain.JobType) int64 {
	if minimum, ok := minimumCharges[jobType]; ok {
		return minimum
	}
	return fallbackMinimumCharge
}

func ruleName(rule *catalogdomain.PricingRule) string {
	if rule.DisplayName != "" {
		return rule.DisplayName
	}
	return rule.RuleKey
}

func optionalString(value *string) string {
	if value == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*value))
}

func roundMoney(raw float64) int64 {
	return int64(math.Floor(raw + 0.5))
}

func roundToDollars(cents int64) int64 {
	return ((cents + 50) / 100) * 100
}
