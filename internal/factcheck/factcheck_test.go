package factcheck

import (
	"testing"

	"github.com/vidcheck/vidcheck/internal/transcript"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		label string
		want  Status
	}{
		{"TRUE", Verified},
		{"Verified", Verified},
		{"false", False},
		{"MISINFORMATION", False},
		{"", Unverified},
		{"maybe", Unverified},
		{"SKIP", Unverified},
		{"  true  ", Verified},
	}

	for _, tt := range tests {
		if got := Classify(tt.label); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestStatusString(t *testing.T) {
	if Verified.String() != "verified" || False.String() != "false" || Unverified.String() != "unverified" {
		t.Errorf("unexpected status names: %s %s %s", Verified, False, Unverified)
	}
}

func TestCollect_SkipsSegmentsWithoutFactCheck(t *testing.T) {
	segments := []transcript.Segment{
		{Start: 0, Duration: 5, Text: "a", FactCheck: &transcript.FactCheck{Status: "true"}},
		{Start: 40, Duration: 3, Text: "b"},
	}

	tally := Collect(segments).Tally()

	if tally.Verified != 1 || tally.False != 0 || tally.Unverified != 0 {
		t.Errorf("expected 1/0/0, got %+v", tally)
	}
}

func TestCollect_GroupsByStatusInOrder(t *testing.T) {
	segments := []transcript.Segment{
		{Start: 10, Text: "one", FactCheck: &transcript.FactCheck{Status: "FALSE", Explanation: "wrong"}},
		{Start: 20, Text: "two", FactCheck: &transcript.FactCheck{Status: "SKIP"}},
		{Start: 30, Text: "three", FactCheck: &transcript.FactCheck{Status: "misinformation"}},
		{Start: 75, Text: "four", FactCheck: &transcript.FactCheck{Status: "verified", Claim: "explicit", References: []string{"https://example.org"}}},
	}

	r := Collect(segments)

	if r.Total() != 4 {
		t.Fatalf("expected 4 entries, got %d", r.Total())
	}
	if len(r.False) != 2 || r.False[0].Claim != "one" || r.False[1].Claim != "three" {
		t.Errorf("unexpected false entries: %+v", r.False)
	}
	if len(r.Unverified) != 1 || r.Unverified[0].Claim != "two" {
		t.Errorf("unexpected unverified entries: %+v", r.Unverified)
	}
	v := r.Verified[0]
	if v.Claim != "explicit" {
		t.Errorf("expected explicit claim, got %q", v.Claim)
	}
	if v.Timestamp != "1:15" || v.Seconds != 75 {
		t.Errorf("expected timestamp 1:15 at 75s, got %s at %v", v.Timestamp, v.Seconds)
	}
	if len(v.References) != 1 {
		t.Errorf("expected references to be carried, got %v", v.References)
	}
}

func TestCollect_ClaimFallsBackToSegmentText(t *testing.T) {
	r := Collect([]transcript.Segment{
		{Start: 1, Text: "the earth is flat", FactCheck: &transcript.FactCheck{Status: "false"}},
	})

	if r.False[0].Claim != "the earth is flat" {
		t.Errorf("expected segment text as claim, got %q", r.False[0].Claim)
	}
}
