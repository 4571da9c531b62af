package scoring

// Outcome classifies a scoreline from the home side's perspective.
type Outcome string

const (
	OutcomeHome Outcome = "HOME"
	OutcomeAway Outcome = "AWAY"
	OutcomeDraw Outcome = "DRAW"
)

// Classify maps a score pair to its outcome class. Total over all integer
// pairs; no error cases.
func Classify(home, away int) Outcome {
	switch {
	case home > away:
		return OutcomeHome
	case home < away:
		return OutcomeAway
	default:
		return OutcomeDraw
	}
}
