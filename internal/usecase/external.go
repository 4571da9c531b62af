package usecase

// ExternalMatchResult is one fixture's state as reported by the results
// provider. Goals stay nil until the provider marks the fixture finished.
type ExternalMatchResult struct {
	FixtureID int64
	Status    string
	HomeGoals *int
	AwayGoals *int
}

// Finished reports whether the provider considers the fixture settled with a
// usable full-time score.
func (r ExternalMatchResult) Finished() bool {
	return r.Status == "FINISHED" && r.HomeGoals != nil && r.AwayGoals != nil
}
