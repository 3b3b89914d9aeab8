package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fortuna/courtside/internal/store"
)

// ThreadRepository handles posted narrative thread data access
type ThreadRepository struct {
	db *store.Database
}

// NewThreadRepository creates a new thread repository
func NewThreadRepository(db *store.Database) *ThreadRepository {
	return &ThreadRepository{db: db}
}

// Insert records a posted thread
func (r *ThreadRepository) Insert(ctx context.Context, thread *store.PostedThread) error {
	segments, err := json.Marshal(thread.Segments)
	if err != nil {
		return fmt.Errorf("marshaling segments: %w", err)
	}
	postIDs, err := json.Marshal(thread.PostIDs)
	if err != nil {
		return fmt.Errorf("marshaling post ids: %w", err)
	}

	query := `
		INSERT INTO posted_threads (game_id, game_date, header, segments, post_ids)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (game_id) DO NOTHING
		RETURNING id, created_at
	`

	err = r.db.DB().QueryRowContext(ctx, query,
		thread.GameID, thread.GameDate, thread.Header, segments, postIDs,
	).Scan(&thread.ID, &thread.CreatedAt)

	if err == sql.ErrNoRows {
		// Conflict on game_id, the thread was already recorded
		return nil
	}
	if err != nil {
		return fmt.Errorf("inserting thread: %w", err)
	}

	return nil
}

// Exists reports whether a thread for the game has already been posted
func (r *ThreadRepository) Exists(ctx context.Context, gameID string) (bool, error) {
	var exists bool
	err := r.db.DB().QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM posted_threads WHERE game_id = $1)", gameID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking thread: %w", err)
	}
	return exists, nil
}

// GetByGameID finds a posted thread by game ID
func (r *ThreadRepository) GetByGameID(ctx context.Context, gameID string) (*store.PostedThread, error) {
	query := `
		SELECT id, game_id, game_date, header, segments, post_ids, created_at
		FROM posted_threads
		WHERE game_id = $1
	`

	thread, err := r.scanThread(r.db.DB().QueryRowContext(ctx, query, gameID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("thread not found: %s", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying thread: %w", err)
	}

	return thread, nil
}

// GetByDate returns all threads for games on a specific date
func (r *ThreadRepository) GetByDate(ctx context.Context, date time.Time) ([]*store.PostedThread, error) {
	startOfDay := date.Truncate(24 * time.Hour)
	endOfDay := startOfDay.Add(24 * time.Hour)

	query := `
		SELECT id, game_id, game_date, header, segments, post_ids, created_at
		FROM posted_threads
		WHERE game_date >= $1 AND game_date < $2
		ORDER BY created_at
	`

	rows, err := r.db.DB().QueryContext(ctx, query, startOfDay, endOfDay)
	if err != nil {
		return nil, fmt.Errorf("querying threads: %w", err)
	}
	defer rows.Close()

	return r.scanThreads(rows)
}

// GetRecent returns the most recently posted threads
func (r *ThreadRepository) GetRecent(ctx context.Context, limit int) ([]*store.PostedThread, error) {
	query := `
		SELECT id, game_id, game_date, header, segments, post_ids, created_at
		FROM posted_threads
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.DB().QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent threads: %w", err)
	}
	defer rows.Close()

	return r.scanThreads(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanThread scans a single thread row, unmarshaling the JSON columns
func (r *ThreadRepository) scanThread(row rowScanner) (*store.PostedThread, error) {
	thread := &store.PostedThread{}
	var segments, postIDs []byte

	err := row.Scan(
		&thread.ID, &thread.GameID, &thread.GameDate, &thread.Header,
		&segments, &postIDs, &thread.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(segments, &thread.Segments); err != nil {
		return nil, fmt.Errorf("unmarshaling segments: %w", err)
	}
	if err := json.Unmarshal(postIDs, &thread.PostIDs); err != nil {
		return nil, fmt.Errorf("unmarshaling post ids: %w", err)
	}

	return thread, nil
}

// scanThreads scans multiple thread rows
func (r *ThreadRepository) scanThreads(rows *sql.Rows) ([]*store.PostedThread, error) {
	var threads []*store.PostedThread
	for rows.Next() {
		thread, err := r.scanThread(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning thread: %w", err)
		}
		threads = append(threads, thread)
	}

	return threads, rows.Err()
}
