package factcheck

import (
	"strings"

	"github.com/vidcheck/vidcheck/internal/timecode"
	"github.com/vidcheck/vidcheck/internal/transcript"
)

type Status int

const (
	Unverified Status = iota
	Verified
	False
)

func (s Status) String() string {
	switch s {
	case Verified:
		return "verified"
	case False:
		return "false"
	default:
		return "unverified"
	}
}

// Classify maps a backend status label onto one of the three statuses.
// Unknown and empty labels are Unverified.
func Classify(label string) Status {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "true", "verified":
		return Verified
	case "false", "misinformation":
		return False
	default:
		return Unverified
	}
}

type Entry struct {
	Claim       string
	Explanation string
	References  []string
	Timestamp   string
	Seconds     float64
	Status      Status
}

type Tally struct {
	Verified   int
	False      int
	Unverified int
}

type Report struct {
	Verified   []Entry
	False      []Entry
	Unverified []Entry
}

func (r Report) Tally() Tally {
	return Tally{
		Verified:   len(r.Verified),
		False:      len(r.False),
		Unverified: len(r.Unverified),
	}
}

func (r Report) Total() int {
	return len(r.Verified) + len(r.False) + len(r.Unverified)
}

func NewEntry(seg transcript.Segment) Entry {
	e := Entry{
		Claim:     seg.ClaimText(),
		Timestamp: timecode.Format(seg.Start),
		Seconds:   seg.Start,
	}
	if seg.FactCheck != nil {
		e.Explanation = seg.FactCheck.Explanation
		e.References = seg.FactCheck.References
		e.Status = Classify(seg.FactCheck.Status)
	}
	return e
}

// Collect buckets every fact-checked segment by status, in transcript order.
// Segments without a fact-check are not counted.
func Collect(segments []transcript.Segment) Report {
	var r Report
	for _, seg := range segments {
		if seg.FactCheck == nil {
			continue
		}
		e := NewEntry(seg)
		switch e.Status {
		case Verified:
			r.Verified = append(r.Verified, e)
		case False:
			r.False = append(r.False, e)
		default:
			r.Unverified = append(r.Unverified, e)
		}
	}
	return r
}
