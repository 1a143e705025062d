package crawler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/anatolykoptev/go_youtube/internal/transcript"
)

// Store persists extracted transcripts in SQLite so repeat crawls of the
// same videos skip yt-dlp and Whisper entirely. Transcripts never change
// once extracted, so entries have no TTL.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the transcript database at path.
// An empty path defaults to ~/.go_youtube/transcripts.db.
func OpenStore(path string) (*Store, error) {
	if path == "" {
		dir := filepath.Join(os.Getenv("HOME"), ".go_youtube")
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("store: mkdir %s: %w", dir, err)
		}
		path = filepath.Join(dir, "transcripts.db")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS transcripts (
		video_id   TEXT PRIMARY KEY,
		language   TEXT NOT NULL,
		source     TEXT NOT NULL,
		text       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Get returns the stored transcript for a video, or false if absent.
func (s *Store) Get(ctx context.Context, videoID string) (*transcript.Transcript, bool) {
	if s == nil {
		return nil, false
	}
	var tr transcript.Transcript
	err := s.db.QueryRowContext(ctx,
		`SELECT video_id, language, source, text FROM transcripts WHERE video_id = ?`,
		videoID,
	).Scan(&tr.VideoID, &tr.Language, &tr.Source, &tr.Text)
	if err != nil {
		return nil, false
	}
	return &tr, true
}

// Put stores a transcript, replacing any previous entry for the video.
func (s *Store) Put(ctx context.Context, tr *transcript.Transcript) error {
	if s == nil || tr == nil {
		return nil
	}
	if tr.VideoID == "" {
		return errors.New("store: transcript missing video_id")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO transcripts (video_id, language, source, text, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		tr.VideoID, tr.Language, tr.Source, tr.Text, now,
	)
	if err != nil {
		return fmt.Errorf("store: insert: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}
