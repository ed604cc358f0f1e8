// Package report turns a decoded analysis into the view model the page and
// shared snapshots are rendered from.
package report

import (
	"fmt"
	"strings"

	"github.com/vidcheck/vidcheck/internal/backend"
	"github.com/vidcheck/vidcheck/internal/factcheck"
	"github.com/vidcheck/vidcheck/internal/timecode"
	"github.com/vidcheck/vidcheck/internal/transcript"
)

// SectionFailure is shown in place of a section that could not be decoded.
type SectionFailure struct {
	Section backend.Section
	Message string
}

// Timestamp is a seek target. Label is what the backend sent; Seekable is
// false when the label does not parse.
type Timestamp struct {
	Label    string
	Seconds  int
	Seekable bool
}

func newTimestamp(label string) Timestamp {
	label = strings.TrimSpace(label)
	ts := Timestamp{Label: label}
	if seconds, err := timecode.Parse(label); err == nil {
		ts.Seconds = seconds
		ts.Seekable = true
	}
	return ts
}

type SummarySection struct {
	Title     string
	Body      string
	Timestamp Timestamp
}

type SummaryView struct {
	Overview  string
	Sections  []SummarySection
	Topics    []string
	Takeaways []string
	Audience  string
}

type SegmentView struct {
	StartLabel   string
	Seconds      float64
	End          float64
	Text         string
	Status       factcheck.Status
	HasFactCheck bool
	Claim        string
	Explanation  string
	References   []string
}

type BucketView struct {
	Label    string
	Start    int
	End      int
	Segments []SegmentView
}

type KeyPointView struct {
	Timestamp  Timestamp
	Point      string
	Details    string
	Importance string
}

type KeyPointsView struct {
	Points    []KeyPointView
	Themes    []string
	Arguments []backend.Argument
}

type FactCheckView struct {
	factcheck.Report
	Counts factcheck.Tally
}

// Report is everything a rendered analysis shows. Nil section views mean the
// backend sent nothing for that section.
type Report struct {
	Title     string
	Channel   string
	Thumbnail string

	Summary    *SummaryView
	Transcript []BucketView
	KeyPoints  *KeyPointsView
	FactCheck  FactCheckView

	Failures []SectionFailure
}

// Failure returns the failure message for a section, or "".
func (r Report) Failure(section string) string {
	for _, f := range r.Failures {
		if string(f.Section) == section {
			return f.Message
		}
	}
	return ""
}

var sectionTitles = map[backend.Section]string{
	backend.SectionVideoInfo:  "video info",
	backend.SectionSummary:    "summary",
	backend.SectionTranscript: "transcript",
	backend.SectionKeyPoints:  "key points",
	backend.SectionFactCheck:  "fact check",
}

// failureOrder keeps Failures stable for rendering.
var failureOrder = []backend.Section{
	backend.SectionVideoInfo,
	backend.SectionSummary,
	backend.SectionTranscript,
	backend.SectionKeyPoints,
	backend.SectionFactCheck,
}

// Build converts a result into its view model. A nil result yields an empty
// report.
func Build(result *backend.Result) Report {
	var r Report
	if result == nil {
		return r
	}

	if result.VideoInfo != nil {
		r.Title = result.VideoInfo.Title
		r.Channel = result.VideoInfo.Channel
		r.Thumbnail = result.VideoInfo.Thumbnail
	}
	if result.Summary != nil {
		r.Summary = buildSummary(result.Summary)
	}
	if len(result.Transcript) > 0 {
		r.Transcript = buildTranscript(result.Transcript)
	}
	if result.KeyPoints != nil {
		r.KeyPoints = buildKeyPoints(result.KeyPoints)
	}

	fc := factcheck.Collect(result.Transcript)
	r.FactCheck = FactCheckView{Report: fc, Counts: fc.Tally()}

	for _, s := range failureOrder {
		if err := result.SectionError(s); err != nil {
			r.Failures = append(r.Failures, SectionFailure{
				Section: s,
				Message: fmt.Sprintf("Error displaying %s: %v", sectionTitles[s], err),
			})
		}
	}
	return r
}

func buildSummary(s *backend.Summary) *SummaryView {
	d := s.DetailedSummary
	return &SummaryView{
		Overview: s.BriefOverview,
		Sections: []SummarySection{
			{Title: "Introduction", Body: d.Introduction, Timestamp: newTimestamp(d.IntroductionTimestamp)},
			{Title: "Main Content", Body: d.MainContent, Timestamp: newTimestamp(d.MainContentTimestamp)},
			{Title: "Conclusion", Body: d.Conclusion, Timestamp: newTimestamp(d.ConclusionTimestamp)},
		},
		Topics:    s.TopicsCovered,
		Takeaways: s.KeyTakeaways,
		Audience:  s.TargetAudience,
	}
}

func buildTranscript(segments []transcript.Segment) []BucketView {
	buckets := transcript.Group(segments)
	views := make([]BucketView, 0, len(buckets))
	for _, b := range buckets {
		v := BucketView{
			Label:    timecode.Format(float64(b.Start)) + " - " + timecode.Format(float64(b.End)),
			Start:    b.Start,
			End:      b.End,
			Segments: make([]SegmentView, 0, len(b.Segments)),
		}
		for _, seg := range b.Segments {
			v.Segments = append(v.Segments, buildSegment(seg))
		}
		views = append(views, v)
	}
	return views
}

func buildSegment(seg transcript.Segment) SegmentView {
	v := SegmentView{
		StartLabel: timecode.Format(seg.Start),
		Seconds:    seg.Start,
		End:        seg.End(),
		Text:       seg.Text,
		Status:     factcheck.Unverified,
	}
	if seg.FactCheck != nil {
		e := factcheck.NewEntry(seg)
		v.HasFactCheck = true
		v.Status = e.Status
		v.Claim = e.Claim
		v.Explanation = e.Explanation
		v.References = e.References
	}
	return v
}

func buildKeyPoints(kp *backend.KeyPoints) *KeyPointsView {
	v := &KeyPointsView{
		Points:    make([]KeyPointView, 0, len(kp.MainPoints)),
		Themes:    kp.Themes,
		Arguments: kp.Arguments,
	}
	for _, p := range kp.MainPoints {
		v.Points = append(v.Points, KeyPointView{
			Timestamp:  newTimestamp(p.Timestamp),
			Point:      p.Point,
			Details:    p.Details,
			Importance: p.Importance,
		})
	}
	return v
}

// Paragraphs splits answer text on blank lines for plain-text display.
func Paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
