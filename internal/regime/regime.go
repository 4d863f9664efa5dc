package regime

// Band is a named market regime covering a half-open score interval
// [Lower, Upper). The top band also absorbs every score at or above its
// lower bound so classification is total over all real scores.
type Band struct {
	Label       string  `json:"label"`
	Lower       float64 `json:"lower"`
	Upper       float64 `json:"upper"`
	Description string  `json:"description"`
}

// The ten regime bands, ordered from calm to crisis. Bounds are contiguous
// and non-overlapping over [0,100).
var bands = []Band{
	{"EXTREME CALM", 0, 10, "Market conditions are extremely calm with very low volatility"},
	{"LOW STRESS", 10, 20, "Market shows minimal stress with low volatility"},
	{"STABLE", 20, 30, "Market is stable with normal trading conditions"},
	{"MILD UNCERTAINTY", 30, 40, "Some uncertainty present but within normal range"},
	{"ELEVATED CAUTION", 40, 50, "Increased caution warranted due to market conditions"},
	{"HIGH UNCERTAINTY", 50, 60, "High levels of uncertainty and potential volatility"},
	{"STRESS CONDITIONS", 60, 70, "Market under stress with elevated risk levels"},
	{"HIGH STRESS", 70, 80, "High stress conditions with significant volatility"},
	{"SEVERE STRESS", 80, 90, "Severe market stress with extreme volatility"},
	{"CRISIS", 90, 100, "Crisis conditions with potential market disruption"},
}

// Bands returns the full ordered band table.
func Bands() []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	return out
}

// Classify maps a composite score to its regime band. Scores at or above the
// terminal band's lower bound (including >=100) classify as crisis; negative
// scores classify as the calmest band.
func Classify(score float64) Band {
	for _, b := range bands {
		if score >= b.Lower && score < b.Upper {
			return b
		}
	}
	if score >= bands[len(bands)-1].Lower {
		return bands[len(bands)-1]
	}
	return bands[0]
}
