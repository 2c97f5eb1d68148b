package review

import (
	"regexp"
	"strconv"
	"strings"
)

// EventCategory tags a parsed timeline event.
type EventCategory string

const (
	CategoryKill      EventCategory = "kill"
	CategoryObjective EventCategory = "objective"
	CategoryTurret    EventCategory = "turret"
	CategoryInhibitor EventCategory = "inhibitor"
	CategoryNexus     EventCategory = "nexus"
	CategoryUnknown   EventCategory = "unknown"
)

// Position is an actor plus its map coordinates at the event's timestamp.
type Position struct {
	Actor
	X int `json:"x"`
	Y int `json:"y"`
}

// Event is one parsed timeline entry. Descriptions are preserved verbatim
// even when the line shape is unrecognized, so the UI can always render
// something.
type Event struct {
	ID               string        `json:"id"`
	RawTimestamp     string        `json:"rawTimestamp"`
	TimestampSeconds int           `json:"timestampSeconds"`
	Description      string        `json:"description"`
	Category         EventCategory `json:"category"`
	Killer           *Actor        `json:"killer,omitempty"`
	Victim           *Actor        `json:"victim,omitempty"`
	Assists          []Actor       `json:"assists"`
	ObjectiveActor   *Actor        `json:"objectiveActor,omitempty"`
	ObjectiveName    string        `json:"objectiveName,omitempty"`
	Positions        []Position    `json:"positions"`
}

var (
	// The killer/victim team tokens are deliberately not pinned to
	// Blue|Red: a garbage token still yields an event, with the actor left
	// unresolved rather than assigned a guessed team.
	killRe = regexp.MustCompile(
		`(?i)^\s*(\S+)\s+(.+?)\s+\(([^)]+)\)\s+killed\s+(\S+)\s+(.+?)\s+\(([^)]+)\)\s*(?:\(assists:\s*(.+)\))?\s*$`)

	securedRe = regexp.MustCompile(
		`(?i)^\s*(blue|red)\s+team\s+secured\s+(.+?)(?:\s*\(by\s+(blue|red)\s+(.+?)\s+\(([^)]+)\)\))?\s*$`)

	destroyedRe = regexp.MustCompile(
		`(?i)^\s*(blue|red)\s+team\s+destroyed\s+(.+?)(?:\s*\(by\s+(blue|red)\s+(.+?)\s+\(([^)]+)\)\))?\s*$`)

	actorChunkRe = regexp.MustCompile(`(?i)(blue|red)\s+(.+?)\s+\(([^)]+)\)`)

	capsTokenRe = regexp.MustCompile(`^[A-Z0-9_ -]+$`)
)

// Structure keywords outrank the generic objective bucket; nexus outranks
// inhibitor outranks turret.
var (
	nexusKeywords     = []string{"nexus"}
	inhibitorKeywords = []string{"inhibitor"}
	turretKeywords    = []string{"turret", "tower"}
	objectiveKeywords = []string{"dragon", "voidgrubs", "voidgrub", "atakhan", "herald", "baron", "soul"}
)

// extractEvent parses a single timeline detail string. It never fails: a
// detail matching no known shape comes back as CategoryUnknown with only the
// timestamp and description populated.
func extractEvent(ix *Index, stamp, detail string) Event {
	ev := Event{
		RawTimestamp:     stamp,
		TimestampSeconds: mmssToSeconds(stamp),
		Description:      strings.TrimSpace(detail),
		Assists:          []Actor{},
	}

	if m := killRe.FindStringSubmatch(detail); m != nil {
		killer := ix.Resolve(m[1], m[2], m[3])
		victim := ix.Resolve(m[4], m[5], m[6])
		ev.Category = CategoryKill
		ev.Killer = &killer
		ev.Victim = &victim
		ev.Assists = parseAssistList(ix, m[7])
		return ev
	}

	if m := securedRe.FindStringSubmatch(detail); m != nil {
		fillObjective(ix, &ev, m)
		return ev
	}

	if m := destroyedRe.FindStringSubmatch(detail); m != nil {
		fillObjective(ix, &ev, m)
		return ev
	}

	if trimmed := strings.TrimSpace(detail); capsTokenRe.MatchString(trimmed) {
		ev.ObjectiveName = strings.ReplaceAll(trimmed, "_", " ")
		ev.Category = categorizeObjective(ev.ObjectiveName)
		return ev
	}

	ev.Category = CategoryUnknown
	return ev
}

// fillObjective handles both the secured and destroyed shapes; they differ
// only in verb. m[2] is the objective/structure name, m[3..5] the optional
// "(by ...)" actor clause.
func fillObjective(ix *Index, ev *Event, m []string) {
	ev.ObjectiveName = strings.TrimSpace(m[2])
	ev.Category = categorizeObjective(ev.ObjectiveName)
	if m[3] != "" && m[4] != "" {
		actor := ix.Resolve(m[3], m[4], m[5])
		ev.ObjectiveActor = &actor
	}
}

// parseAssistList scans a "(assists: ...)" payload for actor chunks. Order is
// preserved and nothing is deduplicated; the report is trusted on both
// counts. Always returns a non-nil slice.
func parseAssistList(ix *Index, raw string) []Actor {
	actors := []Actor{}
	for _, m := range actorChunkRe.FindAllStringSubmatch(raw, -1) {
		actors = append(actors, ix.Resolve(m[1], m[2], m[3]))
	}
	return actors
}

func categorizeObjective(name string) EventCategory {
	lower := strings.ToLower(name)
	switch {
	case containsAny(lower, nexusKeywords):
		return CategoryNexus
	case containsAny(lower, inhibitorKeywords):
		return CategoryInhibitor
	case containsAny(lower, turretKeywords):
		return CategoryTurret
	case containsAny(lower, objectiveKeywords):
		return CategoryObjective
	}
	return CategoryObjective
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// mmssToSeconds converts "MM:SS" to seconds, zero on any malformed input.
func mmssToSeconds(stamp string) int {
	mm, ss, ok := strings.Cut(stamp, ":")
	if !ok {
		return 0
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil {
		return 0
	}
	seconds, err := strconv.Atoi(ss)
	if err != nil {
		return 0
	}
	return minutes*60 + seconds
}
