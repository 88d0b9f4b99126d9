package domain

func cents(v int64) *int64 { return &v }

// DefaultRules returns the stock rule catalog installed for a new tenant.
// Tenants edit these rows afterwards; the evaluator only ever sees whatever
// catalog snapshot it is handed.
func DefaultRules() []PricingRule {
	return []PricingRule{
		// Base rules, one per job type. Size-independent job types carry a
		// flat base rate.
		{RuleKey: "base_full_replacement", RuleCategory: CategoryBase, DisplayName: "Full replacement base", BaseRate: cents(550), Multiplier: 1, Unit: UnitSqft, IsActive: true},
		{RuleKey: "base_partial_replacement", RuleCategory: CategoryBase, DisplayName: "Partial replacement base", BaseRate: cents(600), Multiplier: 1, Unit: UnitSqft, IsActive: true},
		{RuleKey: "base_repair", RuleCategory: CategoryBase, DisplayName: "Repair base", BaseRate: cents(45000), Multiplier: 1, Unit: UnitFlat, IsActive: true},
		{RuleKey: "base_inspection", RuleCategory: CategoryBase, DisplayName: "Inspection", BaseRate: cents(22500), Multiplier: 1, Unit: UnitFlat, IsActive: true},

		// Material upgrades relative to three-tab asphalt.
		{RuleKey: "material_architectural", RuleCategory: CategoryMaterial, DisplayName: "Architectural shingles", Multiplier: 1.15, Unit: UnitFlat, IsActive: true},
		{RuleKey: "material_wood_shake", RuleCategory: CategoryMaterial, DisplayName: "Wood shake", Multiplier: 1.4, Unit: UnitFlat, IsActive: true},
		{RuleKey: "material_metal", RuleCategory: CategoryMaterial, DisplayName: "Metal roofing", Multiplier: 1.6, Unit: UnitFlat, IsActive: true},
		{RuleKey: "material_tile", RuleCategory: CategoryMaterial, DisplayName: "Tile roofing", Multiplier: 1.8, Unit: UnitFlat, IsActive: true},
		{RuleKey: "material_slate", RuleCategory: CategoryMaterial, DisplayName: "Slate roofing", Multiplier: 2.5, Unit: UnitFlat, IsActive: true},

		// Pitch surcharges; low pitch is the neutral default.
		{RuleKey: "pitch_moderate", RuleCategory: CategoryPitch, DisplayName: "Moderate pitch", Multiplier: 1.1, Unit: UnitFlat, IsActive: true},
		{RuleKey: "pitch_steep", RuleCategory: CategoryPitch, DisplayName: "Steep pitch", Multiplier: 1.25, Unit: UnitFlat, IsActive: true},
		{RuleKey: "pitch_very_steep", RuleCategory: CategoryPitch, DisplayName: "Very steep pitch", Multiplier: 1.45, Unit: UnitFlat, IsActive: true},

		// Access difficulty by story count.
		{RuleKey: "stories_two", RuleCategory: CategoryStories, DisplayName: "Two stories", Multiplier: 1.1, Unit: UnitFlat, IsActive: true},
		{RuleKey: "stories_three_plus", RuleCategory: CategoryStories, DisplayName: "Three or more stories", Multiplier: 1.2, Unit: UnitFlat, IsActive: true},

		// Timeline urgency.
		{RuleKey: "urgency_asap", RuleCategory: CategoryUrgency, DisplayName: "ASAP scheduling", Multiplier: 1.1, Unit: UnitFlat, IsActive: true},
		{RuleKey: "urgency_emergency", RuleCategory: CategoryUrgency, DisplayName: "Emergency response", Multiplier: 1.25, Unit: UnitFlat, IsActive: true},

		// Roof features, flat work independent of size.
		{RuleKey: "feature_skylights", RuleCategory: CategoryFeature, DisplayName: "Skylight flashing", FlatFee: 50000, Multiplier: 1, Unit: UnitFlat, IsActive: true},
		{RuleKey: "feature_chimneys", RuleCategory: CategoryFeature, DisplayName: "Chimney flashing", FlatFee: 35000, Multiplier: 1, Unit: UnitFlat, IsActive: true},
		{RuleKey: "feature_solar_panels", RuleCategory: CategoryFeature, DisplayName: "Solar panel detach and reset", FlatFee: 75000, Multiplier: 1, Unit: UnitFlat, IsActive: true},

		// Reported issues.
		{RuleKey: "issue_active_leak", RuleCategory: CategoryIssue, DisplayName: "Active leak remediation", FlatFee: 45000, Multiplier: 1, Unit: UnitFlat, IsActive: true},
		{RuleKey: "issue_sagging", RuleCategory: CategoryIssue, DisplayName: "Structural sagging repair", FlatFee: 120000, Multiplier: 1, Unit: UnitFlat, IsActive: true},
		{RuleKey: "issue_mold", RuleCategory: CategoryIssue, DisplayName: "Mold treatment", FlatFee: 80000, Multiplier: 1, Unit: UnitFlat, IsActive: true},
		{RuleKey: "issue_storm_damage", RuleCategory: CategoryIssue, DisplayName: "Storm damage repair", FlatFee: 60000, Multiplier: 1, Unit: UnitFlat, IsActive: true},
		{RuleKey: "issue_missing_shingles", RuleCategory: CategoryIssue, DisplayName: "Missing shingle replacement", FlatFee: 30000, Multiplier: 1, Unit: UnitFlat, IsActive: true},
		{RuleKey: "issue_granule_loss", RuleCategory: CategoryIssue, DisplayName: "Granule loss treatment", FlatFee: 25000, Multiplier: 1, Unit: UnitFlat, IsActive: true},
	}
}
