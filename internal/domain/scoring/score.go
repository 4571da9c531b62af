package scoring

const (
	// PointsExact is awarded for predicting the exact scoreline.
	PointsExact = 3
	// PointsOutcome is awarded for the right outcome with the wrong scoreline.
	PointsOutcome = 1
	// MaxPointsPerPrediction is the accuracy-percentage denominator per pick.
	MaxPointsPerPrediction = PointsExact
)

// Result is the scored view of one prediction against its match's full-time
// result.
type Result struct {
	Scored         bool
	Exact          bool
	OutcomeCorrect bool
	Points         int
}

// Score evaluates a predicted score pair against the final one. A nil final
// component means the match has not concluded: the prediction is unscored and
// worth zero points, which is a valid state rather than an error. An exact
// scoreline awards the exact tier only, never exact plus outcome.
func Score(predHome, predAway int, finalHome, finalAway *int) Result {
	if finalHome == nil || finalAway == nil {
		return Result{}
	}

	exact := predHome == *finalHome && predAway == *finalAway
	outcomeCorrect := Classify(predHome, predAway) == Classify(*finalHome, *finalAway)

	points := 0
	switch {
	case exact:
		points = PointsExact
	case outcomeCorrect:
		points = PointsOutcome
	}

	return Result{
		Scored:         true,
		Exact:          exact,
		OutcomeCorrect: outcomeCorrect,
		Points:         points,
	}
}
