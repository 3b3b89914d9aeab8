// Package service coordinates the narrative pipeline: fetch finished
// games, derive their narratives, render charts, post threads and
// record what was posted.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fortuna/courtside/internal/cache"
	"github.com/fortuna/courtside/internal/chart"
	"github.com/fortuna/courtside/internal/ingest"
	"github.com/fortuna/courtside/internal/narrative"
	"github.com/fortuna/courtside/internal/poster"
	"github.com/fortuna/courtside/internal/publisher"
	"github.com/fortuna/courtside/internal/store"
	"github.com/fortuna/courtside/internal/store/repository"
)

// Notifier receives threads as they are posted. The websocket hub
// implements this.
type Notifier interface {
	NotifyThread(thread *store.PostedThread)
}

// NarrativeService handles narrative-related business logic
type NarrativeService struct {
	provider  ingest.Provider
	cache     *cache.RedisCache
	threads   *repository.ThreadRepository
	poster    poster.Poster
	publisher *publisher.RedisPublisher
	notifier  Notifier
}

// NewNarrativeService creates a new narrative service
func NewNarrativeService(db *store.Database, redisCache *cache.RedisCache, provider ingest.Provider, p poster.Poster, pub *publisher.RedisPublisher) *NarrativeService {
	return &NarrativeService{
		provider:  provider,
		cache:     redisCache,
		threads:   repository.NewThreadRepository(db),
		poster:    p,
		publisher: pub,
	}
}

// SetNotifier attaches a notifier for newly posted threads
func (s *NarrativeService) SetNotifier(n Notifier) {
	s.notifier = n
}

// GetThread retrieves the posted thread for a game
func (s *NarrativeService) GetThread(ctx context.Context, gameID string) (*store.PostedThread, error) {
	return s.threads.GetByGameID(ctx, gameID)
}

// GetThreadsByDate retrieves posted threads for games on a date
func (s *NarrativeService) GetThreadsByDate(ctx context.Context, date time.Time) ([]*store.PostedThread, error) {
	return s.threads.GetByDate(ctx, date)
}

// GetRecentThreads retrieves the most recently posted threads
func (s *NarrativeService) GetRecentThreads(ctx context.Context, limit int) ([]*store.PostedThread, error) {
	return s.threads.GetRecent(ctx, limit)
}

// ProcessDate derives and posts narratives for every finished game on
// the date. A failed game is logged and skipped, never aborting the
// rest of the slate. Returns the number of newly posted threads.
func (s *NarrativeService) ProcessDate(ctx context.Context, date time.Time) (int, error) {
	games, err := s.provider.FinishedGames(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("listing games for %s: %w", date.Format("2006-01-02"), err)
	}

	if len(games) == 0 {
		log.Printf("  No finished games on %s", date.Format("2006-01-02"))
		return 0, nil
	}

	posted := 0
	for _, game := range games {
		ok, err := s.ProcessGame(ctx, game)
		if err != nil {
			log.Printf("  ⚠️  Game %s failed: %v", game.GameID, err)
			continue
		}
		if ok {
			posted++
		}
	}

	return posted, nil
}

// ProcessGame derives and posts the narrative thread for one game.
// Returns false when the game was already posted or had no usable data.
func (s *NarrativeService) ProcessGame(ctx context.Context, game store.Game) (bool, error) {
	exists, err := s.threads.Exists(ctx, game.GameID)
	if err != nil {
		log.Printf("  ⚠️  Thread lookup for %s failed: %v", game.GameID, err)
	} else if exists {
		return false, nil
	}

	data, err := s.provider.FetchGameData(ctx, game)
	if err != nil {
		return false, fmt.Errorf("fetching game data: %w", err)
	}

	n, err := narrative.Build(*data)
	if err != nil {
		if errors.Is(err, narrative.ErrNoData) {
			log.Printf("  ⊘ Skipping %s: no usable data", game.GameID)
			return false, nil
		}
		return false, fmt.Errorf("deriving narrative: %w", err)
	}

	header := narrative.Header(game)
	if seen, err := s.cache.WasPosted(ctx, header); err != nil {
		log.Printf("  ⚠️  Posted check for %s failed: %v", game.GameID, err)
	} else if seen {
		return false, nil
	}

	postIDs, err := s.postThread(ctx, n)
	if err != nil {
		return false, fmt.Errorf("posting thread: %w", err)
	}

	if _, err := s.cache.MarkPosted(ctx, header); err != nil {
		log.Printf("  ⚠️  Failed to mark %s as posted: %v", game.GameID, err)
	}

	thread := &store.PostedThread{
		GameID:   game.GameID,
		GameDate: game.GameDate,
		Header:   header,
		Segments: n.Segments,
		PostIDs:  postIDs,
	}
	if err := s.threads.Insert(ctx, thread); err != nil {
		log.Printf("  ⚠️  Failed to record thread for %s: %v", game.GameID, err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishNarrative(ctx, game.GameID, thread); err != nil {
			log.Printf("  ⚠️  Failed to publish narrative for %s: %v", game.GameID, err)
		}
	}

	if s.notifier != nil {
		s.notifier.NotifyThread(thread)
	}

	log.Printf("  ✓ Posted %s (%d segments)", header, len(n.Segments))
	return true, nil
}

// postThread renders the charts and posts the segments as a reply
// chain. The score plot rides on the first segment, the shot chart on
// the second. Chart failures degrade to text-only posts.
func (s *NarrativeService) postThread(ctx context.Context, n *narrative.GameNarrative) ([]string, error) {
	mediaBySegment := map[int][]byte{}

	if len(n.Timeline) > 0 {
		img, err := chart.RenderScorePlot(n.Game, n.Timeline, n.PeriodPauses)
		if err != nil {
			log.Printf("  ⚠️  Score plot for %s failed: %v", n.Game.GameID, err)
		} else {
			mediaBySegment[0] = img
		}
	}

	if len(n.Shots) > 0 && len(n.Segments) > 1 {
		img, err := chart.RenderShotChart(n.Game, n.Shots)
		if err != nil {
			log.Printf("  ⚠️  Shot chart for %s failed: %v", n.Game.GameID, err)
		} else {
			mediaBySegment[1] = img
		}
	}

	var postIDs []string
	replyTo := ""
	for i, segment := range n.Segments {
		var mediaIDs []string
		if img, ok := mediaBySegment[i]; ok {
			mediaID, err := s.poster.UploadMedia(ctx, img)
			if err != nil {
				log.Printf("  ⚠️  Media upload failed: %v", err)
			} else {
				mediaIDs = append(mediaIDs, mediaID)
			}
		}

		postID, err := s.poster.Post(ctx, segment, mediaIDs, replyTo)
		if err != nil {
			return postIDs, fmt.Errorf("segment %d: %w", i+1, err)
		}
		postIDs = append(postIDs, postID)
		replyTo = postID
	}

	return postIDs, nil
}
