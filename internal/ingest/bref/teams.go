package bref

import "strings"

// teamAbbr maps full franchise names (upper-cased) to the abbreviations
// Basketball-Reference uses in its URLs and tables.
var teamAbbr = map[string]string{
	"ATLANTA HAWKS":          "ATL",
	"BOSTON CELTICS":         "BOS",
	"BROOKLYN NETS":          "BRK",
	"CHARLOTTE HORNETS":      "CHO",
	"CHICAGO BULLS":          "CHI",
	"CLEVELAND CAVALIERS":    "CLE",
	"DALLAS MAVERICKS":       "DAL",
	"DENVER NUGGETS":         "DEN",
	"DETROIT PISTONS":        "DET",
	"GOLDEN STATE WARRIORS":  "GSW",
	"HOUSTON ROCKETS":        "HOU",
	"INDIANA PACERS":         "IND",
	"LOS ANGELES CLIPPERS":   "LAC",
	"LOS ANGELES LAKERS":     "LAL",
	"MEMPHIS GRIZZLIES":      "MEM",
	"MIAMI HEAT":             "MIA",
	"MILWAUKEE BUCKS":        "MIL",
	"MINNESOTA TIMBERWOLVES": "MIN",
	"NEW ORLEANS PELICANS":   "NOP",
	"NEW YORK KNICKS":        "NYK",
	"OKLAHOMA CITY THUNDER":  "OKC",
	"ORLANDO MAGIC":          "ORL",
	"PHILADELPHIA 76ERS":     "PHI",
	"PHOENIX SUNS":           "PHO",
	"PORTLAND TRAIL BLAZERS": "POR",
	"SACRAMENTO KINGS":       "SAC",
	"SAN ANTONIO SPURS":      "SAS",
	"TORONTO RAPTORS":        "TOR",
	"UTAH JAZZ":              "UTA",
	"WASHINGTON WIZARDS":     "WAS",
}

// AbbrFor resolves a full team name to its Basketball-Reference
// abbreviation; unknown names come back empty.
func AbbrFor(teamName string) string {
	return teamAbbr[strings.ToUpper(strings.TrimSpace(teamName))]
}
