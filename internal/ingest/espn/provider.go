package espn

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fortuna/courtside/internal/narrative"
	"github.com/fortuna/courtside/internal/store"
)

// Provider fetches game data from the ESPN summary API. ESPN serves no
// shot coordinates, so narratives built from it carry no shot chart.
type Provider struct {
	client *Client
}

// NewProvider creates an ESPN provider; baseURL overrides the API base
// (tests), empty means the real API.
func NewProvider(baseURL string) *Provider {
	return &Provider{client: New(baseURL)}
}

// Name identifies the provider in logs.
func (p *Provider) Name() string { return "espn" }

// FinishedGames lists the completed games on the given date.
func (p *Provider) FinishedGames(ctx context.Context, date time.Time) ([]store.Game, error) {
	scoreboard, err := p.client.FetchScoreboard(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("fetching scoreboard: %w", err)
	}
	return ParseScoreboardGames(scoreboard, date), nil
}

// FetchGameData assembles the normalized bundle for one game.
func (p *Provider) FetchGameData(ctx context.Context, game store.Game) (*narrative.GameData, error) {
	summary, err := p.client.FetchGameSummary(ctx, game.GameID)
	if err != nil {
		return nil, fmt.Errorf("fetching summary for %s: %w", game.GameID, err)
	}

	data := &narrative.GameData{
		Game:      game,
		SourceURL: fmt.Sprintf("https://www.espn.com/nba/game/_/gameId/%s", game.GameID),
	}

	data.PlayByPlay = ParsePlays(summary)
	if len(data.PlayByPlay) == 0 {
		log.Printf("[espn] Warning: no play-by-play for %s", game.GameID)
	}

	boxes := ParseBoxScores(summary)
	data.AwayBox = boxes[game.AwayAbbr]
	data.HomeBox = boxes[game.HomeAbbr]
	if data.AwayBox == nil || data.HomeBox == nil {
		log.Printf("[espn] Warning: incomplete box scores for %s", game.GameID)
	}

	return data, nil
}
