package bref

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fortuna/courtside/internal/narrative"
	"github.com/fortuna/courtside/internal/store"
)

// Provider fetches game data from Basketball-Reference.
type Provider struct {
	client *Client
}

// NewProvider creates a Basketball-Reference provider. cache may be nil.
func NewProvider(cache PageCache) *Provider {
	return &Provider{client: NewClient(cache)}
}

// NewProviderWithClient wires a custom client (tests).
func NewProviderWithClient(client *Client) *Provider {
	return &Provider{client: client}
}

// Name identifies the provider in logs.
func (p *Provider) Name() string { return "basketball-reference" }

// Close releases client resources.
func (p *Provider) Close() { p.client.Close() }

// FinishedGames lists the completed games on the given date.
func (p *Provider) FinishedGames(ctx context.Context, date time.Time) ([]store.Game, error) {
	path := fmt.Sprintf("/boxscores/?month=%d&day=%d&year=%d", date.Month(), date.Day(), date.Year())
	doc, err := p.client.FetchPage(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching scoreboard: %w", err)
	}
	return ParseScoreboard(doc, date), nil
}

// FetchGameData assembles the normalized bundle for one game. A failed
// or empty sub-fetch leaves its field unset so the narrative can degrade
// instead of aborting.
func (p *Provider) FetchGameData(ctx context.Context, game store.Game) (*narrative.GameData, error) {
	data := &narrative.GameData{
		Game:      game,
		SourceURL: BaseURL + "/boxscores/pbp/" + game.GameID + ".html",
	}

	if doc, err := p.client.FetchPage(ctx, "/boxscores/pbp/"+game.GameID+".html"); err != nil {
		log.Printf("[bref] Warning: play-by-play for %s: %v", game.GameID, err)
	} else {
		data.PlayByPlay = ParsePlayByPlay(doc)
	}

	if doc, err := p.client.FetchPage(ctx, "/boxscores/"+game.GameID+".html"); err != nil {
		log.Printf("[bref] Warning: box scores for %s: %v", game.GameID, err)
	} else {
		if box, err := ParseBoxScore(doc, game.AwayAbbr); err != nil {
			log.Printf("[bref] Warning: away box score for %s: %v", game.GameID, err)
		} else {
			data.AwayBox = box
		}
		if box, err := ParseBoxScore(doc, game.HomeAbbr); err != nil {
			log.Printf("[bref] Warning: home box score for %s: %v", game.GameID, err)
		} else {
			data.HomeBox = box
		}
	}

	if doc, err := p.client.FetchPage(ctx, "/boxscores/shot-chart/"+game.GameID+".html"); err != nil {
		log.Printf("[bref] Warning: shot chart for %s: %v", game.GameID, err)
	} else {
		data.Shots = ParseShotChart(doc, game.AwayAbbr, game.HomeAbbr)
	}

	if doc, err := p.client.FetchPage(ctx, "/friv/injuries.html"); err != nil {
		log.Printf("[bref] Warning: injury report: %v", err)
	} else {
		data.Injuries = filterInjuries(ParseInjuries(doc), game)
	}

	return data, nil
}

// filterInjuries keeps only the matchup's teams, reported on or before
// the game date.
func filterInjuries(injuries []store.InjuryEntry, game store.Game) []store.InjuryEntry {
	var kept []store.InjuryEntry
	for _, injury := range injuries {
		if injury.Team != game.AwayAbbr && injury.Team != game.HomeAbbr {
			continue
		}
		if !injury.Date.IsZero() && injury.Date.After(game.GameDate) {
			continue
		}
		kept = append(kept, injury)
	}
	return kept
}
