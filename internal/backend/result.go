package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vidcheck/vidcheck/internal/transcript"
)

type Section string

const (
	SectionVideoInfo  Section = "video_info"
	SectionSummary    Section = "summary"
	SectionTranscript Section = "transcript"
	SectionKeyPoints  Section = "key_points"
	SectionFactCheck  Section = "fact_check"
)

type VideoInfo struct {
	Title       string `json:"title"`
	Channel     string `json:"channel,omitempty"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

type DetailedSummary struct {
	Introduction          string `json:"introduction"`
	IntroductionTimestamp string `json:"introduction_timestamp,omitempty"`
	MainContent           string `json:"main_content"`
	MainContentTimestamp  string `json:"main_content_timestamp,omitempty"`
	Conclusion            string `json:"conclusion"`
	ConclusionTimestamp   string `json:"conclusion_timestamp,omitempty"`
}

type Summary struct {
	BriefOverview   string          `json:"brief_overview"`
	DetailedSummary DetailedSummary `json:"detailed_summary"`
	TopicsCovered   []string        `json:"topics_covered"`
	TargetAudience  string          `json:"target_audience"`
	KeyTakeaways    []string        `json:"key_takeaways"`
}

type KeyPoint struct {
	Timestamp  string `json:"timestamp"`
	Point      string `json:"point"`
	Details    string `json:"details,omitempty"`
	Importance string `json:"importance,omitempty"`
}

type Argument struct {
	Claim            string   `json:"claim"`
	SupportingPoints []string `json:"supporting_points"`
}

type KeyPoints struct {
	MainPoints []KeyPoint `json:"main_points"`
	Themes     []string   `json:"themes"`
	Arguments  []Argument `json:"arguments"`
}

type FactCheckResults struct {
	Results []transcript.FactCheck `json:"results"`
}

// Result is one decoded analysis. Sections the backend omitted are nil;
// sections that failed to decode are nil and listed in SectionErrors.
type Result struct {
	VideoInfo  *VideoInfo           `json:"video_info,omitempty"`
	Summary    *Summary             `json:"summary,omitempty"`
	Transcript []transcript.Segment `json:"transcript,omitempty"`
	KeyPoints  *KeyPoints           `json:"key_points,omitempty"`
	FactCheck  *FactCheckResults    `json:"fact_check,omitempty"`

	SectionErrors map[Section]error `json:"-"`
}

func (r *Result) SectionError(s Section) error {
	if r == nil || r.SectionErrors == nil {
		return nil
	}
	return r.SectionErrors[s]
}

func (r *Result) setSectionError(s Section, err error) {
	if r.SectionErrors == nil {
		r.SectionErrors = make(map[Section]error)
	}
	r.SectionErrors[s] = err
}

type rawResult struct {
	VideoInfo  json.RawMessage `json:"video_info"`
	Summary    json.RawMessage `json:"summary"`
	Transcript json.RawMessage `json:"transcript"`
	KeyPoints  json.RawMessage `json:"key_points"`
	FactCheck  json.RawMessage `json:"fact_check"`
}

// DecodeResult decodes an analyze response body. Only a body that is not a
// JSON object is an error; a bad section is recorded and skipped.
func DecodeResult(body []byte) (*Result, error) {
	var raw rawResult
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}

	result := &Result{}

	if present(raw.VideoInfo) {
		var info VideoInfo
		if err := json.Unmarshal(raw.VideoInfo, &info); err != nil {
			result.setSectionError(SectionVideoInfo, err)
		} else {
			result.VideoInfo = &info
		}
	}

	if present(raw.Summary) {
		summary, err := decodeSummary(raw.Summary)
		if err != nil {
			result.setSectionError(SectionSummary, err)
		} else {
			result.Summary = summary
		}
	}

	if present(raw.KeyPoints) {
		var kp KeyPoints
		if err := decodeObjectOrString(raw.KeyPoints, &kp); err != nil {
			result.setSectionError(SectionKeyPoints, err)
		} else {
			result.KeyPoints = &kp
		}
	}

	if present(raw.FactCheck) {
		var fc FactCheckResults
		if err := decodeObjectOrString(raw.FactCheck, &fc); err != nil {
			result.setSectionError(SectionFactCheck, err)
		} else {
			result.FactCheck = &fc
		}
	}

	if present(raw.Transcript) {
		var segments []transcript.Segment
		if err := json.Unmarshal(raw.Transcript, &segments); err != nil {
			result.setSectionError(SectionTranscript, err)
		} else {
			if result.FactCheck != nil {
				segments = transcript.Annotate(segments, result.FactCheck.Results)
			}
			result.Transcript = segments
		}
	}

	return result, nil
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func decodeSummary(raw json.RawMessage) (*Summary, error) {
	var s Summary
	if err := decodeObjectOrString(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// decodeObjectOrString accepts either a JSON object or a string holding one,
// the latter optionally wrapped in markdown code fences.
func decodeObjectOrString(raw json.RawMessage, v any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		trimmed = []byte(stripMarkdownFences(text))
	}
	return json.Unmarshal(trimmed, v)
}

func stripMarkdownFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		firstNewline := strings.Index(trimmed, "\n")
		if firstNewline == -1 {
			return trimmed
		}
		trimmed = trimmed[firstNewline+1:]

		if idx := strings.LastIndex(trimmed, "```"); idx != -1 {
			trimmed = trimmed[:idx]
		}

		return strings.TrimSpace(trimmed)
	}
	return trimmed
}
