package narrative

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func eventsFromScores(pairs [][2]int) []TimedEvent {
	timeline := make([]TimedEvent, len(pairs))
	for i, pair := range pairs {
		timeline[i] = TimedEvent{
			ElapsedMinutes: float64(i),
			AwayScore:      pair[0],
			HomeScore:      pair[1],
		}
	}
	return timeline
}

func TestAnalyzeLeadTieCount(t *testing.T) {
	// The repeated (2,2) pair counts once and the opening 0:0 never does.
	timeline := eventsFromScores([][2]int{{0, 0}, {2, 0}, {2, 2}, {2, 2}, {4, 2}})
	stats := AnalyzeLead(timeline)
	assert.Equal(t, 1, stats.Ties)
}

func TestAnalyzeLeadChanges(t *testing.T) {
	tests := []struct {
		name   string
		leads  []int
		expect int
	}{
		// Zeros drop out, so the non-zero signs +,-,-,+,- flip three times.
		{"ties are skipped, not carried", []int{0, 3, -1, -1, 2, -4}, 3},
		{"one side wire to wire", []int{0, 2, 4, 0, 6}, 0},
		{"alternating", []int{1, -1, 1, -1}, 3},
		{"all tied", []int{0, 0, 0}, 0},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs := make([][2]int, len(tt.leads))
			for i, lead := range tt.leads {
				if lead >= 0 {
					pairs[i] = [2]int{lead, 0}
				} else {
					pairs[i] = [2]int{0, -lead}
				}
			}
			stats := AnalyzeLead(eventsFromScores(pairs))
			assert.Equal(t, tt.expect, stats.LeadChanges)
		})
	}
}

func TestAnalyzeLeadLargestLead(t *testing.T) {
	timeline := eventsFromScores([][2]int{{0, 0}, {3, 0}, {3, 8}, {10, 8}})
	stats := AnalyzeLead(timeline)
	assert.Equal(t, 5, stats.LargestLead)
}

func TestAnalyzeLeadTimeLeading(t *testing.T) {
	timeline := []TimedEvent{
		{ElapsedMinutes: 0, AwayScore: 0, HomeScore: 0},
		{ElapsedMinutes: 10, AwayScore: 5, HomeScore: 2}, // away ahead for 10m
		{ElapsedMinutes: 16, AwayScore: 5, HomeScore: 5}, // level for 6m
		{ElapsedMinutes: 48, AwayScore: 5, HomeScore: 9}, // home ahead for 32m
	}
	stats := AnalyzeLead(timeline)
	assert.Equal(t, 10*time.Minute, stats.AwayLeading)
	assert.Equal(t, 32*time.Minute, stats.HomeLeading)
}

func TestAnalyzeLeadDurationConservation(t *testing.T) {
	// Away leading + home leading + tied time must cover the whole game.
	timeline := []TimedEvent{
		{ElapsedMinutes: 0, AwayScore: 0, HomeScore: 0},
		{ElapsedMinutes: 3.25, AwayScore: 2, HomeScore: 0},
		{ElapsedMinutes: 7.5, AwayScore: 2, HomeScore: 2},
		{ElapsedMinutes: 19.1, AwayScore: 2, HomeScore: 7},
		{ElapsedMinutes: 19.1, AwayScore: 4, HomeScore: 7},
		{ElapsedMinutes: 33.0, AwayScore: 9, HomeScore: 7},
		{ElapsedMinutes: 48.0, AwayScore: 9, HomeScore: 9},
	}
	stats := AnalyzeLead(timeline)

	var tiedMinutes float64
	for i := 1; i < len(timeline); i++ {
		if timeline[i].AwayScore == timeline[i].HomeScore {
			tiedMinutes += timeline[i].ElapsedMinutes - timeline[i-1].ElapsedMinutes
		}
	}
	total := stats.AwayLeading.Minutes() + stats.HomeLeading.Minutes() + tiedMinutes
	assert.InDelta(t, 48.0, total, 1e-6)
}

func TestAnalyzeLeadEmptyTimeline(t *testing.T) {
	stats := AnalyzeLead(nil)
	assert.Zero(t, stats.Ties)
	assert.Zero(t, stats.LeadChanges)
	assert.Zero(t, stats.LargestLead)
	assert.Zero(t, stats.AwayLeading)
	assert.Zero(t, stats.HomeLeading)
}

func TestFormatLeading(t *testing.T) {
	assert.Equal(t, "24:05", formatLeading(24*time.Minute+5*time.Second))
	assert.Equal(t, "0:00", formatLeading(0))
	// Whole-game overtime leads keep raw minutes, no hour wrapping.
	assert.Equal(t, "63:00", formatLeading(63*time.Minute))
}
