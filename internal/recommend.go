package internal

import (
	"github.com/chrisconley/segmint/specs"
)

// recommendations is the fixed action table keyed by segment label. It is
// total over the closed label set; Recommend checks that rather than
// assuming it.
var recommendations = map[string]specs.RecommendationSpec{
	specs.LabelHighValue: {
		Label:   specs.LabelHighValue,
		Action:  "VIP treatment, exclusive offers, early access to new products",
		Urgency: specs.UrgencyMedium,
	},
	specs.LabelLoyal: {
		Label:   specs.LabelLoyal,
		Action:  "Loyalty rewards, thank you messages, maintain quality service",
		Urgency: specs.UrgencyLow,
	},
	specs.LabelAtRisk: {
		Label:   specs.LabelAtRisk,
		Action:  "Re-engagement campaigns, win-back offers, survey for feedback",
		Urgency: specs.UrgencyHigh,
	},
	specs.LabelNew: {
		Label:   specs.LabelNew,
		Action:  "Welcome offers, onboarding emails, product education",
		Urgency: specs.UrgencyMedium,
	},
	specs.LabelRegular: {
		Label:   specs.LabelRegular,
		Action:  "Regular engagement, special promotions, encourage repeat purchases",
		Urgency: specs.UrgencyLow,
	},
}

// Recommend implements specs.Recommend.
// A pure lookup keyed by the profile's label.
func Recommend(profile specs.SegmentProfileSpec) (specs.RecommendationSpec, error) {
	recommendation, ok := recommendations[profile.Label]
	if !ok {
		return specs.RecommendationSpec{}, &specs.UnknownSegmentError{Label: profile.Label}
	}
	return recommendation, nil
}
