package pricing

import (
	"broadbandx-pricing/core/types"
	"broadbandx-pricing/internal/errors"
)

// CalculateROIProjection projects the return on a retention investment:
//
//	revenue_saved = customers_saved x ARPU x avg lifetime months
//	roi_percent   = (revenue_saved - cost) / cost x 100
//	payback       = cost / (revenue_saved / lifetime months)
//
// Pure arithmetic over the inputs; engine state plays no part.
func (e *Engine) CalculateROIProjection(customersSaved int, avgRevenuePerUser float64, avgLifetimeMonths int, implementationCost float64) (*types.ROIProjection, error) {
	if customersSaved < 0 {
		return nil, errors.Input("customers_saved must not be negative")
	}
	if avgRevenuePerUser < 0 {
		return nil, errors.Input("avg_revenue_per_user must not be negative")
	}
	if avgLifetimeMonths <= 0 {
		return nil, errors.Input("avg_lifetime_months must be positive")
	}
	if implementationCost <= 0 {
		return nil, errors.Input("implementation_cost must be positive")
	}

	revenueSaved := float64(customersSaved) * avgRevenuePerUser * float64(avgLifetimeMonths)
	if revenueSaved == 0 {
		return nil, errors.Projection("cannot compute payback: no revenue projected")
	}

	netBenefit := revenueSaved - implementationCost
	roiPercent := netBenefit / implementationCost * 100
	paybackMonths := implementationCost / (revenueSaved / float64(avgLifetimeMonths))

	return &types.ROIProjection{
		CustomersSaved:     customersSaved,
		RevenueSaved:       types.RoundMoney(revenueSaved),
		ImplementationCost: implementationCost,
		NetBenefit:         types.RoundMoney(netBenefit),
		ROIPercent:         types.Round2(roiPercent),
		PaybackMonths:      types.Round1(paybackMonths),
	}, nil
}
