// Package history persists completed analyses so they can be reopened
// without calling the analysis backend again.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vidcheck/vidcheck/internal/backend"
	"github.com/vidcheck/vidcheck/internal/database"
)

const DefaultRecentLimit = 20

var ErrNotFound = errors.New("analysis not found")

type Record struct {
	ID        int64
	VideoID   string
	VideoURL  string
	Title     string
	Result    *backend.Result
	CreatedAt time.Time
}

// Entry is a history listing row; it carries no section data.
type Entry struct {
	ID        int64
	VideoID   string
	VideoURL  string
	Title     string
	Thumbnail string
	CreatedAt time.Time
}

type Store struct {
	db database.DBTX
}

func NewStore(db database.DBTX) *Store {
	return &Store{db: db}
}

// Save inserts rec and fills in its ID and CreatedAt.
func (s *Store) Save(ctx context.Context, rec *Record) error {
	cols, err := encodeSections(rec.Result)
	if err != nil {
		return err
	}

	err = s.db.QueryRow(ctx,
		`INSERT INTO video_analysis (video_id, video_url, title, video_info, summary, key_points, fact_check, transcript)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		rec.VideoID, rec.VideoURL, rec.Title,
		cols.videoInfo, cols.summary, cols.keyPoints, cols.factCheck, cols.transcript,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

const selectRecord = `SELECT id, video_id, video_url, title, video_info, summary, key_points, fact_check, transcript, created_at
	 FROM video_analysis`

func (s *Store) Get(ctx context.Context, id int64) (*Record, error) {
	return s.scanRecord(s.db.QueryRow(ctx, selectRecord+` WHERE id = $1`, id))
}

// Latest returns the most recent analysis of videoID.
func (s *Store) Latest(ctx context.Context, videoID string) (*Record, error) {
	return s.scanRecord(s.db.QueryRow(ctx,
		selectRecord+` WHERE video_id = $1 ORDER BY created_at DESC LIMIT 1`, videoID))
}

func (s *Store) scanRecord(row pgx.Row) (*Record, error) {
	var (
		rec  Record
		cols sectionColumns
	)
	err := row.Scan(&rec.ID, &rec.VideoID, &rec.VideoURL, &rec.Title,
		&cols.videoInfo, &cols.summary, &cols.keyPoints, &cols.factCheck, &cols.transcript,
		&rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query analysis: %w", err)
	}

	result, err := cols.decode()
	if err != nil {
		return nil, fmt.Errorf("decode analysis %d: %w", rec.ID, err)
	}
	rec.Result = result
	return &rec, nil
}

// Recent lists the newest analyses first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	rows, err := s.db.Query(ctx,
		`SELECT id, video_id, video_url, title, COALESCE(video_info->>'thumbnail', ''), created_at
		 FROM video_analysis
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.VideoID, &e.VideoURL, &e.Title, &e.Thumbnail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

type sectionColumns struct {
	videoInfo  []byte
	summary    []byte
	keyPoints  []byte
	factCheck  []byte
	transcript []byte
}

// encodeSections marshals each present section; absent ones stay NULL.
func encodeSections(r *backend.Result) (sectionColumns, error) {
	var cols sectionColumns
	if r == nil {
		return cols, nil
	}
	var err error
	if r.VideoInfo != nil {
		if cols.videoInfo, err = json.Marshal(r.VideoInfo); err != nil {
			return cols, fmt.Errorf("encode video info: %w", err)
		}
	}
	if r.Summary != nil {
		if cols.summary, err = json.Marshal(r.Summary); err != nil {
			return cols, fmt.Errorf("encode summary: %w", err)
		}
	}
	if r.KeyPoints != nil {
		if cols.keyPoints, err = json.Marshal(r.KeyPoints); err != nil {
			return cols, fmt.Errorf("encode key points: %w", err)
		}
	}
	if r.FactCheck != nil {
		if cols.factCheck, err = json.Marshal(r.FactCheck); err != nil {
			return cols, fmt.Errorf("encode fact check: %w", err)
		}
	}
	if r.Transcript != nil {
		if cols.transcript, err = json.Marshal(r.Transcript); err != nil {
			return cols, fmt.Errorf("encode transcript: %w", err)
		}
	}
	return cols, nil
}

func (c sectionColumns) decode() (*backend.Result, error) {
	r := &backend.Result{}
	if len(c.videoInfo) > 0 {
		if err := json.Unmarshal(c.videoInfo, &r.VideoInfo); err != nil {
			return nil, fmt.Errorf("video info: %w", err)
		}
	}
	if len(c.summary) > 0 {
		if err := json.Unmarshal(c.summary, &r.Summary); err != nil {
			return nil, fmt.Errorf("summary: %w", err)
		}
	}
	if len(c.keyPoints) > 0 {
		if err := json.Unmarshal(c.keyPoints, &r.KeyPoints); err != nil {
			return nil, fmt.Errorf("key points: %w", err)
		}
	}
	if len(c.factCheck) > 0 {
		if err := json.Unmarshal(c.factCheck, &r.FactCheck); err != nil {
			return nil, fmt.Errorf("fact check: %w", err)
		}
	}
	if len(c.transcript) > 0 {
		if err := json.Unmarshal(c.transcript, &r.Transcript); err != nil {
			return nil, fmt.Errorf("transcript: %w", err)
		}
	}
	return r, nil
}
