package segment

// CanonicalProfiles are the five segments identified by the offline
// clustering study, with their representative elasticities.
func CanonicalProfiles() []Profile {
	return []Profile{
		{ID: 0, Name: "Premium Power Users", PriceElasticity: -0.3,
			PricingStrategy: "Focus on loyalty rewards and exclusive features. Low price sensitivity."},
		{ID: 1, Name: "Price-Conscious", PriceElasticity: -1.8,
			PricingStrategy: "Offer dynamic discounts and promotional pricing. High price sensitivity."},
		{ID: 2, Name: "Value-Seekers", PriceElasticity: -1.2,
			PricingStrategy: "Emphasize value-for-money with tiered pricing options."},
		{ID: 3, Name: "Budget Users", PriceElasticity: -2.0,
			PricingStrategy: "Off-peak offers and basic plans with flexibility."},
		{ID: 4, Name: "Casual Premium", PriceElasticity: -0.5,
			PricingStrategy: "Convenience pricing with simple premium options."},
	}
}

// ProfileForElasticity maps a raw elasticity coefficient onto the
// canonical segment whose representative elasticity is closest in band.
// Used when only the heuristic elasticity is available.
func ProfileForElasticity(elasticity float64) Profile {
	profiles := CanonicalProfiles()
	switch {
	case elasticity > -0.5:
		return profiles[0] // Premium Power Users
	case elasticity > -1.0:
		return profiles[4] // Casual Premium
	case elasticity > -1.5:
		return profiles[2] // Value-Seekers
	case elasticity > -1.9:
		return profiles[1] // Price-Conscious
	default:
		return profiles[3] // Budget Users
	}
}
