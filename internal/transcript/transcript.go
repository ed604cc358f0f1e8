package transcript

import (
	"math"
	"sort"

	"github.com/vidcheck/vidcheck/internal/timecode"
)

// BucketWidth is the width in seconds of one transcript display window.
const BucketWidth = 30

type Segment struct {
	Start     float64    `json:"start"`
	Duration  float64    `json:"duration"`
	Text      string     `json:"text"`
	FactCheck *FactCheck `json:"fact_check,omitempty"`
}

type FactCheck struct {
	Status         string   `json:"status"`
	Claim          string   `json:"claim,omitempty"`
	Explanation    string   `json:"explanation,omitempty"`
	References     []string `json:"references"`
	Timestamp      string   `json:"timestamp,omitempty"`
	TimestampRange string   `json:"timestamp_range,omitempty"`
}

func (s Segment) End() float64 {
	return s.Start + s.Duration
}

// ClaimText is the claim a fact-check refers to, falling back to the
// segment text when the backend left the claim empty.
func (s Segment) ClaimText() string {
	if s.FactCheck != nil && s.FactCheck.Claim != "" {
		return s.FactCheck.Claim
	}
	return s.Text
}

type Bucket struct {
	Index    int
	Start    int
	End      int
	Segments []Segment
}

func BucketIndex(start float64) int {
	return int(math.Floor(start / BucketWidth))
}

// Group splits segments into 30 second windows keyed by each segment's start
// time. Buckets come back in ascending order; segments keep their input order
// within a bucket.
func Group(segments []Segment) []Bucket {
	if len(segments) == 0 {
		return nil
	}

	byIndex := make(map[int]*Bucket)
	var order []int
	for _, seg := range segments {
		idx := BucketIndex(seg.Start)
		b, ok := byIndex[idx]
		if !ok {
			b = &Bucket{
				Index: idx,
				Start: idx * BucketWidth,
				End:   (idx + 1) * BucketWidth,
			}
			byIndex[idx] = b
			order = append(order, idx)
		}
		b.Segments = append(b.Segments, seg)
	}

	sort.Ints(order)
	buckets := make([]Bucket, 0, len(order))
	for _, idx := range order {
		buckets = append(buckets, *byIndex[idx])
	}
	return buckets
}

// Annotate attaches fact-check results to the segments they were made about,
// matching on the segment's "MM:SS" start or its "MM:SS-MM:SS" span. Segments
// that already carry a fact-check are left alone. The input is not modified.
func Annotate(segments []Segment, results []FactCheck) []Segment {
	if len(segments) == 0 {
		return segments
	}

	out := make([]Segment, len(segments))
	copy(out, segments)
	if len(results) == 0 {
		return out
	}

	byTimestamp := make(map[string]FactCheck, len(results)*2)
	for _, r := range results {
		if r.TimestampRange != "" {
			byTimestamp[r.TimestampRange] = r
		}
		if r.Timestamp != "" {
			byTimestamp[r.Timestamp] = r
		}
	}

	for i := range out {
		if out[i].FactCheck != nil {
			continue
		}
		start := timecode.FormatPadded(out[i].Start)
		span := timecode.Range(out[i].Start, out[i].End())
		if fc, ok := byTimestamp[start]; ok {
			out[i].FactCheck = &fc
		} else if fc, ok := byTimestamp[span]; ok {
			out[i].FactCheck = &fc
		}
	}
	return out
}
