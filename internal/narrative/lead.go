package narrative

import (
	"time"
)

// LeadStats are the scalar lead statistics derived from the timed series.
type LeadStats struct {
	Ties        int           `json:"ties"`
	LeadChanges int           `json:"lead_changes"`
	LargestLead int           `json:"largest_lead"`
	AwayLeading time.Duration `json:"away_leading"`
	HomeLeading time.Duration `json:"home_leading"`
}

// AnalyzeLead derives the five lead statistics from a normalized timeline.
// An empty timeline yields the zero value.
func AnalyzeLead(timeline []TimedEvent) LeadStats {
	var stats LeadStats

	// Ties: each distinct score pair counts once, and the opening 0:0
	// state is excluded.
	seen := make(map[[2]int]bool, len(timeline))
	for _, ev := range timeline {
		pair := [2]int{ev.AwayScore, ev.HomeScore}
		if seen[pair] {
			continue
		}
		seen[pair] = true
		if ev.AwayScore == ev.HomeScore && ev.AwayScore > 0 {
			stats.Ties++
		}
	}

	// Lead changes: a tied score carries no leader, so zeros are skipped
	// rather than carried forward; a change is a sign flip between
	// consecutive non-zero leads.
	haveLeader := false
	homeAhead := false
	for _, ev := range timeline {
		lead := ev.AwayScore - ev.HomeScore
		if lead == 0 {
			continue
		}
		if haveLeader && (lead < 0) != homeAhead {
			stats.LeadChanges++
		}
		haveLeader = true
		homeAhead = lead < 0
	}

	for _, ev := range timeline {
		lead := ev.AwayScore - ev.HomeScore
		if lead < 0 {
			lead = -lead
		}
		if lead > stats.LargestLead {
			stats.LargestLead = lead
		}
	}

	// Time leading: each inter-event duration belongs to whichever side
	// is ahead at the interval's end event. Level intervals belong to
	// neither side.
	var awayMinutes, homeMinutes float64
	for i := 1; i < len(timeline); i++ {
		duration := timeline[i].ElapsedMinutes - timeline[i-1].ElapsedMinutes
		switch {
		case timeline[i].AwayScore > timeline[i].HomeScore:
			awayMinutes += duration
		case timeline[i].AwayScore < timeline[i].HomeScore:
			homeMinutes += duration
		}
	}
	stats.AwayLeading = minutesToDuration(awayMinutes)
	stats.HomeLeading = minutesToDuration(homeMinutes)

	return stats
}

func minutesToDuration(minutes float64) time.Duration {
	return time.Duration(minutes * float64(time.Minute))
}

// formatLeading renders a leading duration as "M:SS" with minutes not
// wrapped at the hour.
func formatLeading(d time.Duration) string {
	totalSeconds := int(d.Round(time.Second).Seconds())
	return formatMinSec(totalSeconds)
}
