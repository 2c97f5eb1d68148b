package review

import "strings"

// Team ids as they appear in Riot match data.
const (
	BlueTeamID = 100
	RedTeamID  = 200
)

// Participant is one entry in the match's canonical roster.
// ParticipantID may be zero; NewIndex assigns roster order (1-based) in that case.
type Participant struct {
	PUUID         string `json:"puuid" yaml:"puuid"`
	ParticipantID int    `json:"participantId,omitempty" yaml:"participantId,omitempty"`
	SummonerName  string `json:"summonerName" yaml:"summonerName"`
	ChampionName  string `json:"championName" yaml:"championName"`
	TeamID        int    `json:"teamId" yaml:"teamId"`
}

// Actor is a participant reference recovered from report text. A resolved
// actor carries the roster PUUID and canonical names; an unresolved one keeps
// the free-text names and whatever team info the color token provided
// (TeamID 0 / TeamColor "" when the token was not a known color).
type Actor struct {
	PUUID        string `json:"puuid,omitempty"`
	SummonerName string `json:"summonerName,omitempty"`
	ChampionName string `json:"championName,omitempty"`
	TeamID       int    `json:"teamId,omitempty"`
	TeamColor    string `json:"teamColor,omitempty"`
}

// Resolved reports whether the actor was matched against the roster.
func (a Actor) Resolved() bool { return a.PUUID != "" }

// Index maps normalized "<color>::<name>" keys back to roster entries.
// Built once per parse, read-only afterwards.
type Index struct {
	byName     map[string]Participant
	byChampion map[string]Participant

	// Collisions counts normalized keys that mapped to more than one
	// teammate. First writer wins; this exists so callers can assert the
	// condition never happens on real rosters.
	Collisions int
}

// NewIndex builds lookup tables from the roster. Entries with empty names are
// skipped rather than indexed under an empty key.
func NewIndex(roster []Participant) *Index {
	ix := &Index{
		byName:     make(map[string]Participant, len(roster)),
		byChampion: make(map[string]Participant, len(roster)),
	}

	for i, p := range roster {
		if p.ParticipantID == 0 {
			p.ParticipantID = i + 1
		}
		color := teamColor(p.TeamID)
		if key := color + "::" + normalize(p.SummonerName); p.SummonerName != "" {
			if _, taken := ix.byName[key]; taken {
				ix.Collisions++
			} else {
				ix.byName[key] = p
			}
		}
		if key := color + "::" + normalize(p.ChampionName); p.ChampionName != "" {
			if _, taken := ix.byChampion[key]; taken {
				ix.Collisions++
			} else {
				ix.byChampion[key] = p
			}
		}
	}

	return ix
}

// Lookup finds a roster entry by summoner name, falling back to champion name.
func (ix *Index) Lookup(color, name, champion string) (Participant, bool) {
	prefix := strings.ToLower(color) + "::"
	if name != "" {
		if p, ok := ix.byName[prefix+normalize(name)]; ok {
			return p, true
		}
	}
	if champion != "" {
		if p, ok := ix.byChampion[prefix+normalize(champion)]; ok {
			return p, true
		}
	}
	return Participant{}, false
}

// Resolve turns a free-text (color, name, champion) reference into an Actor.
// Unmatched references keep the raw names; the team id comes from the color
// token when it is a known color and stays zero otherwise.
func (ix *Index) Resolve(color, name, champion string) Actor {
	tc := parseTeamColor(color)
	if p, ok := ix.Lookup(tc, name, champion); ok {
		return Actor{
			PUUID:        p.PUUID,
			SummonerName: p.SummonerName,
			ChampionName: p.ChampionName,
			TeamID:       p.TeamID,
			TeamColor:    teamColor(p.TeamID),
		}
	}
	return Actor{
		SummonerName: strings.TrimSpace(name),
		ChampionName: strings.TrimSpace(champion),
		TeamID:       colorTeamID(tc),
		TeamColor:    tc,
	}
}

// normalize lowercases and strips everything outside [a-z0-9] so lookups are
// case- and punctuation-insensitive.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func teamColor(teamID int) string {
	if teamID == RedTeamID {
		return "red"
	}
	return "blue"
}

// parseTeamColor maps a text color token to "blue"/"red", or "" when the
// token is neither.
func parseTeamColor(token string) string {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "blue":
		return "blue"
	case "red":
		return "red"
	}
	return ""
}

func colorTeamID(color string) int {
	switch color {
	case "blue":
		return BlueTeamID
	case "red":
		return RedTeamID
	}
	return 0
}
