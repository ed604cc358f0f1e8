package report

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/vidcheck/vidcheck/internal/factcheck"
)

type Tab struct {
	ID    string
	Label string
}

// Tabs lists the page tabs in display order.
var Tabs = []Tab{
	{ID: "summary", Label: "Summary"},
	{ID: "transcript", Label: "Transcript"},
	{ID: "key-points", Label: "Key Points"},
	{ID: "fact-check", Label: "Fact Check"},
	{ID: "qa", Label: "Q&A"},
}

// DefaultTab is shown when the requested tab is missing or unknown.
const DefaultTab = "summary"

func NormalizeTab(tab string) string {
	for _, t := range Tabs {
		if t.ID == tab {
			return tab
		}
	}
	return DefaultTab
}

type QAEntry struct {
	Question string
	Answer   string
	AskedAt  time.Time
}

type PageData struct {
	Nonce          string
	Tab            string
	VideoURL       string
	VideoID        string
	EmbedURL       string
	Flash          string
	Analyzed       bool
	Report         Report
	QA             []QAEntry
	ShareEnabled   bool
	HistoryEnabled bool
}

type HistoryItem struct {
	ID        int64
	VideoID   string
	VideoURL  string
	Title     string
	Thumbnail string
	CreatedAt time.Time
}

type HistoryData struct {
	Nonce   string
	Enabled bool
	Items   []HistoryItem
}

type SnapshotData struct {
	VideoID     string
	VideoURL    string
	Report      Report
	GeneratedAt time.Time
}

type pageView struct {
	PageData
	Theme    Theme
	Tabs     []Tab
	Sections sectionView
}

type historyView struct {
	HistoryData
	Theme Theme
}

type snapshotView struct {
	SnapshotData
	Theme    Theme
	Sections sectionView
}

type failureArgs struct {
	Theme   Theme
	Message string
}

type stampArgs struct {
	View sectionView
	TS   Timestamp
	Tab  string
}

type claimsArgs struct {
	View    sectionView
	Title   string
	Status  factcheck.Status
	Entries []factcheck.Entry
}

var claimTitles = map[factcheck.Status]string{
	factcheck.Verified:   "Verified Claims",
	factcheck.False:      "False Claims",
	factcheck.Unverified: "Unverified Claims",
}

var templateFuncs = template.FuncMap{
	"failure": func(theme Theme, message string) failureArgs {
		return failureArgs{Theme: theme, Message: message}
	},
	"stamp": func(v sectionView, ts Timestamp, tab string) stampArgs {
		return stampArgs{View: v, TS: ts, Tab: tab}
	},
	"claims": func(v sectionView, status string, entries []factcheck.Entry) claimsArgs {
		s := factcheck.Classify(status)
		return claimsArgs{View: v, Title: claimTitles[s], Status: s, Entries: entries}
	},
	"paragraphs": Paragraphs,
	"date": func(t time.Time) string {
		return t.Format("Jan 2, 2006 15:04")
	},
}

func mustParse(name, body string) *template.Template {
	return template.Must(template.New(name).Funcs(templateFuncs).Parse(body + sectionTemplates))
}

var (
	pageTemplate     = mustParse("page", pageHTML)
	historyTemplate  = mustParse("history", historyHTML)
	snapshotTemplate = mustParse("snapshot", snapshotHTML)
)

// Renderer draws pages with one theme.
type Renderer struct {
	theme Theme
}

func NewRenderer(theme Theme) *Renderer {
	return &Renderer{theme: theme}
}

func (r *Renderer) Theme() Theme {
	return r.theme
}

func (r *Renderer) Page(w io.Writer, data PageData) error {
	data.Tab = NormalizeTab(data.Tab)
	view := pageView{
		PageData: data,
		Theme:    r.theme,
		Tabs:     Tabs,
		Sections: sectionView{Report: data.Report, Theme: r.theme, Tab: data.Tab, videoID: data.VideoID},
	}
	if err := pageTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

func (r *Renderer) History(w io.Writer, data HistoryData) error {
	if err := historyTemplate.Execute(w, historyView{HistoryData: data, Theme: r.theme}); err != nil {
		return fmt.Errorf("render history: %w", err)
	}
	return nil
}

// Snapshot renders a standalone report that needs nothing from this server to
// display: styles are inlined and timestamps link to YouTube.
func (r *Renderer) Snapshot(w io.Writer, data SnapshotData) error {
	view := snapshotView{
		SnapshotData: data,
		Theme:        r.theme,
		Sections:     sectionView{Report: data.Report, Theme: r.theme, Snapshot: true, videoID: data.VideoID},
	}
	if err := snapshotTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("render snapshot: %w", err)
	}
	return nil
}
