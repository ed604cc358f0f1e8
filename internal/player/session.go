package player

import (
	"math"
	"sync"
	"time"

	"github.com/vidcheck/vidcheck/internal/backend"
	"github.com/vidcheck/vidcheck/internal/timecode"
	"github.com/vidcheck/vidcheck/internal/youtube"
)

// FlashTTL is how long an error banner stays visible.
const FlashTTL = 5 * time.Second

type Exchange struct {
	Question string
	Answer   string
	AskedAt  time.Time
}

type Flash struct {
	Message   string
	ExpiresAt time.Time
}

// Session is one browser's player and its current analysis. All methods are
// safe for concurrent use.
type Session struct {
	ID string

	mu          sync.Mutex
	videoURL    string
	videoID     string
	offset      int
	autoplay    bool
	analyzedURL string
	result      *backend.Result
	qa          []Exchange
	flash       *Flash
	generation  uint64
	lastSeen    time.Time
}

// State is a point-in-time copy of a session for rendering.
type State struct {
	ID          string
	VideoURL    string
	VideoID     string
	Offset      int
	Autoplay    bool
	AnalyzedURL string
	Result      *backend.Result
	QA          []Exchange
}

func (st State) HasPlayer() bool {
	return st.VideoID != ""
}

func (st State) EmbedURL() string {
	if st.VideoID == "" {
		return ""
	}
	return youtube.EmbedURL(st.VideoID, st.Offset, st.Autoplay)
}

func newSession(id string, now time.Time) *Session {
	return &Session{ID: id, lastSeen: now}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	qa := make([]Exchange, len(s.qa))
	copy(qa, s.qa)
	return State{
		ID:          s.ID,
		VideoURL:    s.videoURL,
		VideoID:     s.videoID,
		Offset:      s.offset,
		Autoplay:    s.autoplay,
		AnalyzedURL: s.analyzedURL,
		Result:      s.result,
		QA:          qa,
	}
}

// Load creates or replaces the player for the video in videoURL. A URL
// without a recognisable video id tears the player down.
func (s *Session) Load(videoURL string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(videoURL)
}

func (s *Session) loadLocked(videoURL string) bool {
	s.videoURL = videoURL
	id, ok := youtube.ExtractVideoID(videoURL)
	if !ok {
		s.videoID = ""
		s.offset = 0
		s.autoplay = false
		return false
	}
	s.videoID = id
	s.offset = 0
	s.autoplay = false
	return true
}

// EnsureVideo switches the player to videoID unless it is already loaded.
func (s *Session) EnsureVideo(videoID string) {
	if videoID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.videoID == videoID {
		return
	}
	s.videoID = videoID
	s.offset = 0
	s.autoplay = false
}

// SeekTo moves playback to seconds. Without a player it does nothing.
func (s *Session) SeekTo(seconds int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.videoID == "" || seconds < 0 {
		return false
	}
	s.offset = seconds
	return true
}

// SeekTimestamp seeks to a "MM:SS" or "MM:SS-MM:SS" timestamp; unparsable
// text is ignored.
func (s *Session) SeekTimestamp(text string) (int, bool) {
	seconds, err := timecode.Parse(text)
	if err != nil {
		return 0, false
	}
	if !s.SeekTo(seconds) {
		return 0, false
	}
	return seconds, true
}

// PlaySegment seeks to the start of a transcript segment and starts playback.
func (s *Session) PlaySegment(start, end float64) bool {
	if math.IsNaN(start) || math.IsInf(start, 0) || start < 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.videoID == "" {
		return false
	}
	s.offset = int(math.Floor(start))
	s.autoplay = true
	return true
}

// BeginAnalysis marks the start of a new analysis and returns its generation.
// Only the latest generation may complete.
func (s *Session) BeginAnalysis(videoURL string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.videoURL = videoURL
	return s.generation
}

// CompleteAnalysis installs result if gen is still the latest analysis. The
// previous result and question history are replaced, not merged.
func (s *Session) CompleteAnalysis(gen uint64, videoURL string, result *backend.Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.result = result
	s.analyzedURL = videoURL
	s.qa = nil
	s.loadLocked(videoURL)
	return true
}

// Restore installs a previously stored analysis, superseding any analysis
// still in flight.
func (s *Session) Restore(videoURL string, result *backend.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.result = result
	s.analyzedURL = videoURL
	s.qa = nil
	s.loadLocked(videoURL)
}

// AddExchange records a question and answer, newest first.
func (s *Session) AddExchange(question, answer string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.qa = append([]Exchange{{Question: question, Answer: answer, AskedAt: at}}, s.qa...)
}

func (s *Session) SetFlash(message string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash = &Flash{Message: message, ExpiresAt: now.Add(FlashTTL)}
}

// TakeFlash returns the pending banner once, provided it has not expired.
func (s *Session) TakeFlash(now time.Time) *Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.flash
	s.flash = nil
	if f == nil || now.After(f.ExpiresAt) {
		return nil
	}
	return f
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
