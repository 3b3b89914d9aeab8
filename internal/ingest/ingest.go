// Package ingest defines the provider boundary: every upstream source
// normalizes its rows into the store/narrative shapes before the engine
// ever sees them, so provider differences never leak into the derivation.
package ingest

import (
	"context"
	"time"

	"github.com/fortuna/courtside/internal/narrative"
	"github.com/fortuna/courtside/internal/store"
)

// Provider fetches finished games and their event data from one upstream
// source.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string

	// FinishedGames lists the completed games on the given date.
	FinishedGames(ctx context.Context, date time.Time) ([]store.Game, error)

	// FetchGameData assembles the full normalized bundle for one game.
	// Individual missing pieces (box score, shots, injuries) come back
	// as nil fields, not errors.
	FetchGameData(ctx context.Context, game store.Game) (*narrative.GameData, error)
}
