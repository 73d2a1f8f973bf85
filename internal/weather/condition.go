package weather

import (
	"strings"

	"github.com/nimbusview/weather-backend/internal/common"
)

// conditionRules maps description keywords to canonical conditions.
// Order matters: the first rule whose keyword occurs in the text wins,
// so "thundery rain shower" classifies as thunderstorm, not rainy.
var conditionRules = []struct {
	keywords  []string
	condition Condition
}{
	{[]string{"thunder"}, ConditionThunderstorm},
	{[]string{"rain", "shower"}, ConditionRainy},
	{[]string{"snow"}, ConditionSnowy},
	{[]string{"fog", "mist"}, ConditionFoggy},
	{[]string{"cloud"}, ConditionCloudy},
	{[]string{"clear"}, ConditionClear},
}

// Classify maps a provider's free-text condition description to a canonical
// Condition. Matching is case-insensitive substring search in priority order.
// Text matching no rule maps to partly-cloudy; Classify never fails.
func Classify(description string) Condition {
	desc := strings.ToLower(description)
	for _, rule := range conditionRules {
		if common.HasAny(desc, rule.keywords...) {
			return rule.condition
		}
	}
	return ConditionPartlyCloudy
}
