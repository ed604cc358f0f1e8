package report

import (
	"math"
	"net/url"
	"strconv"

	"github.com/vidcheck/vidcheck/internal/youtube"
)

// sectionView is what the shared section templates execute against. On the
// live page timestamps seek the embedded player; in a snapshot they open the
// video on YouTube at that offset.
type sectionView struct {
	Report   Report
	Theme    Theme
	Tab      string
	Snapshot bool
	videoID  string
}

func (v sectionView) SeekHref(label string, seconds int, tab string) string {
	if v.Snapshot {
		return watchAt(v.videoID, seconds)
	}
	q := url.Values{}
	q.Set("t", label)
	q.Set("tab", tab)
	return "/seek?" + q.Encode() + "#player"
}

func (v sectionView) PlayHref(start, end float64) string {
	if v.Snapshot {
		return watchAt(v.videoID, int(math.Floor(start)))
	}
	q := url.Values{}
	q.Set("start", strconv.FormatFloat(start, 'f', -1, 64))
	q.Set("end", strconv.FormatFloat(end, 'f', -1, 64))
	q.Set("tab", "transcript")
	return "/play?" + q.Encode() + "#player"
}

func (v sectionView) Hidden(tab string) bool {
	return !v.Snapshot && v.Tab != tab
}

func watchAt(videoID string, seconds int) string {
	if videoID == "" {
		return "#"
	}
	if seconds <= 0 {
		return youtube.WatchURL(videoID)
	}
	return youtube.WatchURL(videoID) + "&t=" + strconv.Itoa(seconds) + "s"
}

const sectionTemplates = `
{{define "failure"}}
<div class="{{.Theme.Panel}}">
    <p class="failure">{{.Message}}</p>
    <p class="failure-hint">Please try analyzing the video again.</p>
</div>
{{end}}

{{define "timestamp"}}{{if .TS.Seekable}}<a class="timestamp {{.View.Theme.Button}}" href="{{.View.SeekHref .TS.Label .TS.Seconds .Tab}}">{{.TS.Label}}</a>{{end}}{{end}}

{{define "summary"}}
{{$v := .}}
{{with .Report.Failure "summary"}}{{template "failure" (failure $v.Theme .)}}{{else}}
{{with .Report.Summary}}
<div class="{{$v.Theme.Panel}}">
    <h3 class="{{$v.Theme.Heading}}">Overview</h3>
    <p class="{{$v.Theme.Body}}">{{.Overview}}</p>
</div>
<div class="{{$v.Theme.Panel}}">
    <h3 class="{{$v.Theme.Heading}}">Detailed Summary</h3>
    {{range .Sections}}
    <div class="summary-section">
        <h4 class="{{$v.Theme.Subheading}}">{{.Title}} {{template "timestamp" (stamp $v .Timestamp "summary")}}</h4>
        <p class="{{$v.Theme.Body}}">{{.Body}}</p>
    </div>
    {{end}}
</div>
<div class="{{$v.Theme.Panel}}">
    <h3 class="{{$v.Theme.Heading}}">Topics Covered</h3>
    <ul class="list">{{range .Topics}}<li class="{{$v.Theme.Body}}">{{.}}</li>{{end}}</ul>
</div>
<div class="{{$v.Theme.Panel}}">
    <h3 class="{{$v.Theme.Heading}}">Key Takeaways</h3>
    <ul class="list">{{range .Takeaways}}<li class="{{$v.Theme.Body}}">{{.}}</li>{{end}}</ul>
</div>
<div class="{{$v.Theme.Panel}}">
    <h3 class="{{$v.Theme.Heading}}">Target Audience</h3>
    <p class="{{$v.Theme.Body}}">{{.Audience}}</p>
</div>
{{else}}
<p class="{{$v.Theme.Body}}">No summary available.</p>
{{end}}
{{end}}
{{end}}

{{define "transcript"}}
{{$v := .}}
{{with .Report.Failure "transcript"}}{{template "failure" (failure $v.Theme .)}}{{else}}
{{if .Report.Transcript}}
<div class="buckets">
    {{range .Report.Transcript}}
    <div class="{{$v.Theme.Panel}} bucket" data-start="{{.Start}}">
        <div class="bucket-label {{$v.Theme.Heading}}">{{.Label}}</div>
        {{range .Segments}}
        {{$style := $v.Theme.For .Status}}
        <div class="segment-wrap">
            <a class="segment{{if .HasFactCheck}} {{$style.Classes}}{{end}}" href="{{$v.PlayHref .Seconds .End}}">
                <span class="segment-time {{$v.Theme.Subheading}}">{{.StartLabel}}</span>
                <span class="segment-text {{if .HasFactCheck}}{{$style.Text}}{{else}}{{$v.Theme.Body}}{{end}}">{{if .HasFactCheck}}<span class="status-icon">{{$style.Icon}}</span> {{end}}{{.Text}}</span>
            </a>
            {{if .HasFactCheck}}
            <details class="{{$style.Text}}">
                <summary>{{$style.Label}}</summary>
                <p>{{.Claim}}</p>
                {{if .Explanation}}<p>{{.Explanation}}</p>{{end}}
                {{if .References}}<div class="references"><p>Sources:</p>{{range .References}}<a href="{{.}}" target="_blank" rel="noopener noreferrer">{{.}}</a>{{end}}</div>{{end}}
            </details>
            {{end}}
        </div>
        {{end}}
    </div>
    {{end}}
</div>
{{else}}
<p class="{{$v.Theme.Body}}">No transcript available.</p>
{{end}}
{{end}}
{{end}}

{{define "key-points"}}
{{$v := .}}
{{with .Report.Failure "key_points"}}{{template "failure" (failure $v.Theme .)}}{{else}}
{{with .Report.KeyPoints}}
<div class="{{$v.Theme.Panel}}">
    <h3 class="{{$v.Theme.Heading}}">Main Points</h3>
    {{range .Points}}
    <div class="key-point">
        <h4 class="{{$v.Theme.Subheading}}">{{template "timestamp" (stamp $v .Timestamp "key-points")}} {{.Point}}{{if .Importance}} <span class="meta">({{.Importance}})</span>{{end}}</h4>
        {{if .Details}}<p class="{{$v.Theme.Body}}">{{.Details}}</p>{{end}}
    </div>
    {{end}}
</div>
{{if .Themes}}
<div class="{{$v.Theme.Panel}}">
    <h3 class="{{$v.Theme.Heading}}">Themes</h3>
    <ul class="list">{{range .Themes}}<li class="{{$v.Theme.Body}}">{{.}}</li>{{end}}</ul>
</div>
{{end}}
{{if .Arguments}}
<div class="{{$v.Theme.Panel}}">
    <h3 class="{{$v.Theme.Heading}}">Arguments</h3>
    {{range .Arguments}}
    <div class="argument">
        <h4 class="{{$v.Theme.Subheading}}">{{.Claim}}</h4>
        <ul class="list">{{range .SupportingPoints}}<li class="{{$v.Theme.Body}}">{{.}}</li>{{end}}</ul>
    </div>
    {{end}}
</div>
{{end}}
{{else}}
<p class="{{$v.Theme.Body}}">No key points available.</p>
{{end}}
{{end}}
{{end}}

{{define "claims"}}
{{$v := .View}}
{{$style := $v.Theme.For .Status}}
<div class="{{$v.Theme.Panel}}">
    <h3 class="{{$v.Theme.Heading}} {{$style.Text}}">{{$style.Icon}} {{.Title}}</h3>
    {{range .Entries}}
    <div class="claim {{$style.Classes}}">
        <p class="{{$style.Text}}">{{.Claim}} <a class="timestamp {{$v.Theme.Button}}" href="{{$v.PlayHref .Seconds .Seconds}}">{{.Timestamp}}</a></p>
        {{if .Explanation}}<p class="{{$v.Theme.Body}}">{{.Explanation}}</p>{{end}}
        {{if .References}}<div class="references">{{range .References}}<a href="{{.}}" target="_blank" rel="noopener noreferrer">{{.}}</a>{{end}}</div>{{end}}
    </div>
    {{else}}
    <p class="{{$v.Theme.Body}}">None.</p>
    {{end}}
</div>
{{end}}

{{define "fact-check"}}
{{$v := .}}
{{with .Report.Failure "fact_check"}}{{template "failure" (failure $v.Theme .)}}{{end}}
{{with .Report.FactCheck}}
<div class="tally">
    <div class="{{$v.Theme.Panel}} tally-verified"><strong>{{.Counts.Verified}}</strong>Verified</div>
    <div class="{{$v.Theme.Panel}} tally-false"><strong>{{.Counts.False}}</strong>False</div>
    <div class="{{$v.Theme.Panel}} tally-unverified"><strong>{{.Counts.Unverified}}</strong>Unverified</div>
</div>
{{if .Total}}
{{template "claims" (claims $v "verified" .Verified)}}
{{template "claims" (claims $v "false" .False)}}
{{template "claims" (claims $v "unverified" .Unverified)}}
{{else}}
<p class="{{$v.Theme.Body}}">No fact-checked claims.</p>
{{end}}
{{end}}
{{end}}
`
