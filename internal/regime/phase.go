package regime

// Phase is the coarse four-state regime used by the adaptive weighting
// strategies. It is distinct from the ten reporting bands: strategies only
// need to know whether the market is complacent, ordinary, stressed, or in
// crisis.
type Phase int

const (
	Euphoria Phase = iota // dangerous complacency
	Normal
	Stress
	Crisis
)

func (p Phase) String() string {
	switch p {
	case Euphoria:
		return "euphoria"
	case Normal:
		return "normal"
	case Stress:
		return "stress"
	case Crisis:
		return "crisis"
	default:
		return "unknown"
	}
}

// PhaseForScore maps an aggregate score to a phase using the statistical
// weighting bands (<=25 euphoria, <=60 normal, <=85 stress, else crisis).
func PhaseForScore(score float64) Phase {
	switch {
	case score <= 25:
		return Euphoria
	case score <= 60:
		return Normal
	case score <= 85:
		return Stress
	default:
		return Crisis
	}
}

// PhaseForMeanScore maps a plain average of indicator scores to a phase
// using the ensemble bands (0-30 euphoria, 30-50 normal, 50-70 stress,
// 70+ crisis).
func PhaseForMeanScore(mean float64) Phase {
	switch {
	case mean < 30:
		return Euphoria
	case mean < 50:
		return Normal
	case mean < 70:
		return Stress
	default:
		return Crisis
	}
}
