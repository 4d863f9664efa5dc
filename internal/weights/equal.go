package weights

// EqualWeightStrategy assigns 1/N to every present indicator. The unbiased
// baseline.
type EqualWeightStrategy struct{}

func NewEqualWeightStrategy() *EqualWeightStrategy {
	return &EqualWeightStrategy{}
}

func (s *EqualWeightStrategy) Name() string { return "Equal Weight" }

func (s *EqualWeightStrategy) CalculateWeights(scores map[string]float64) (map[string]float64, error) {
	return equalWeights(scores), nil
}

func (s *EqualWeightStrategy) Describe() Info {
	return Info{
		Name:        s.Name(),
		Description: "Assigns identical weights (1/N) to all indicators. Serves as an unbiased baseline that makes no assumptions about relative predictive power.",
		Category:    "Static",
		Complexity:  "Simple",
	}
}
