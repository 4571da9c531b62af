package scoring

import (
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		home, away int
		want       Outcome
	}{
		{2, 1, OutcomeHome},
		{0, 1, OutcomeAway},
		{0, 0, OutcomeDraw},
		{3, 3, OutcomeDraw},
		{10, 0, OutcomeHome},
	}

	for _, tc := range cases {
		if got := Classify(tc.home, tc.away); got != tc.want {
			t.Fatalf("Classify(%d,%d): got=%s want=%s", tc.home, tc.away, got, tc.want)
		}
	}
}

func TestClassify_DrawIffEqual(t *testing.T) {
	t.Parallel()

	for home := 0; home <= 6; home++ {
		for away := 0; away <= 6; away++ {
			got := Classify(home, away)
			if (got == OutcomeDraw) != (home == away) {
				t.Fatalf("Classify(%d,%d)=%s violates draw iff equal", home, away, got)
			}
		}
	}
}

func TestScore_UnconcludedMatch(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                 string
		finalHome, finalAway *int
	}{
		{"both missing", nil, nil},
		{"home missing", nil, intPtr(1)},
		{"away missing", intPtr(1), nil},
	}

	for _, tc := range cases {
		got := Score(2, 1, tc.finalHome, tc.finalAway)
		if got.Scored || got.Exact || got.OutcomeCorrect || got.Points != 0 {
			t.Fatalf("%s: expected zero result, got=%+v", tc.name, got)
		}
	}
}

func TestScore_ExactTakesPriority(t *testing.T) {
	t.Parallel()

	got := Score(2, 1, intPtr(2), intPtr(1))
	if !got.Scored || !got.Exact || !got.OutcomeCorrect {
		t.Fatalf("unexpected flags: %+v", got)
	}
	if got.Points != PointsExact {
		t.Fatalf("exact prediction points: got=%d want=%d", got.Points, PointsExact)
	}
}

func TestScore_OutcomeOnly(t *testing.T) {
	t.Parallel()

	got := Score(2, 1, intPtr(3), intPtr(0))
	if !got.Scored || got.Exact || !got.OutcomeCorrect {
		t.Fatalf("unexpected flags: %+v", got)
	}
	if got.Points != PointsOutcome {
		t.Fatalf("outcome-only points: got=%d want=%d", got.Points, PointsOutcome)
	}
}

func TestScore_WrongOutcome(t *testing.T) {
	t.Parallel()

	got := Score(1, 0, intPtr(0), intPtr(1))
	if !got.Scored || got.Exact || got.OutcomeCorrect || got.Points != 0 {
		t.Fatalf("wrong outcome must score zero, got=%+v", got)
	}
}

func TestGateOpen_BoundaryAtKickoff(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

	if !GateOpen(kickoff, kickoff.Add(-time.Second)) {
		t.Fatal("one second before kickoff must be open")
	}
	if GateOpen(kickoff, kickoff) {
		t.Fatal("exactly at kickoff must be closed")
	}
	if GateOpen(kickoff, kickoff.Add(time.Second)) {
		t.Fatal("after kickoff must be closed")
	}
}
