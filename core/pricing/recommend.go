package pricing

// Recommendation thresholds on the price change percentage.
const (
	thresholdMaxDiscount = -20
	thresholdPromo       = -10
	thresholdPremium     = 10
)

// recommend maps a price change percentage to a pricing action.
func recommend(changePct float64) string {
	switch {
	case changePct < thresholdMaxDiscount:
		return "High retention risk. Apply maximum discount with loyalty offer."
	case changePct < thresholdPromo:
		return "Moderate retention risk. Offer promotional discount."
	case changePct < 0:
		return "Slight concern. Consider small incentive to maintain engagement."
	case changePct <= thresholdPremium:
		return "Customer is stable. Standard pricing applies."
	default:
		return "High-value customer. Premium pricing acceptable."
	}
}
