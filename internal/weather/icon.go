package weather

// iconTable holds the day/night icon variants per canonical condition.
var iconTable = map[Condition][2]IconID{
	ConditionClear:        {"01d", "01n"},
	ConditionPartlyCloudy: {"02d", "02n"},
	ConditionCloudy:       {"03d", "03n"},
	ConditionRainy:        {"10d", "10n"},
	ConditionThunderstorm: {"11d", "11n"},
	ConditionSnowy:        {"13d", "13n"},
	ConditionFoggy:        {"50d", "50n"},
}

// ResolveIcon picks the canonical icon for a condition at a given moment.
// All arguments are epoch seconds. The daylight window is strictly between
// sunrise and sunset: a timestamp equal to either bound counts as night.
// An unknown condition resolves to the clear/day icon.
func ResolveIcon(cond Condition, timestamp, sunrise, sunset int64) IconID {
	variants, ok := iconTable[cond]
	if !ok {
		return iconTable[ConditionClear][0]
	}
	if timestamp > sunrise && timestamp < sunset {
		return variants[0]
	}
	return variants[1]
}
