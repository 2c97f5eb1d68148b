package review

import "rewind/internal/logging"

// Coord is a map position.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ParticipantState is one player's state at a whole-minute mark.
type ParticipantState struct {
	PUUID         string `json:"puuid"`
	ParticipantID int    `json:"participantId"`
	TeamID        int    `json:"teamId"`
	Level         int    `json:"level"`
	CS            int    `json:"cs"`
	Gold          int    `json:"gold"`
	Position      Coord  `json:"position"`
	Items         []int  `json:"items"`
}

// MinuteSnapshot holds every resolved player's state for one minute, keyed by
// puuid.
type MinuteSnapshot struct {
	Minute       int                         `json:"minute"`
	Participants map[string]ParticipantState `json:"participants"`
}

// foldSnapshots runs the snapshot accumulator over classified minute-region
// lines: a minute header flushes the previous accumulator and opens a new
// one, rows fill the current one. Rows arriving before any header have no
// minute to belong to and are dropped, as are rows naming nobody on the
// roster — a state entry without a stable identity is useless to the state
// map.
func foldSnapshots(ix *Index, lines []reportLine) []MinuteSnapshot {
	logger := logging.Logger()

	var snapshots []MinuteSnapshot
	var current *MinuteSnapshot

	for _, l := range lines {
		switch line := l.(type) {
		case minuteHeader:
			if current != nil {
				snapshots = append(snapshots, *current)
			}
			current = &MinuteSnapshot{
				Minute:       line.Minute,
				Participants: make(map[string]ParticipantState),
			}
		case snapshotRow:
			if current == nil {
				continue
			}
			p, ok := ix.Lookup(parseTeamColor(line.Team), line.Name, line.Champion)
			if !ok {
				logger.Warnf("minute %02d: dropping snapshot row for unknown player %q (%s)",
					current.Minute, line.Name, line.Champion)
				continue
			}
			current.Participants[p.PUUID] = ParticipantState{
				PUUID:         p.PUUID,
				ParticipantID: p.ParticipantID,
				TeamID:        p.TeamID,
				Level:         line.Level,
				CS:            line.CS,
				Gold:          line.Gold,
				Position:      Coord{X: line.X, Y: line.Y},
				Items:         line.Items,
			}
		}
	}

	if current != nil {
		snapshots = append(snapshots, *current)
	}
	return snapshots
}
