// Package review parses the coach-report text format into a typed event
// stream and per-minute state timeline.
//
// The report is best-effort telemetry, not a transactional record, so every
// entry point follows the same policy: missing sections, unrecognized lines
// and unresolvable names degrade to fewer or less precise results, never to
// an error. All functions are pure and safe to call concurrently; each parse
// builds its own identity index from the roster it is given.
package review

import "fmt"

// Report bundles every output a single parse produces.
type Report struct {
	Events    []Event           `json:"events"`
	Snapshots []MinuteSnapshot  `json:"snapshots"`
	Frames    []Frame           `json:"frames"`
	Roles     map[string]string `json:"roles"`

	// Collisions mirrors Index.Collisions for the roster used; nonzero
	// means two teammates normalized to the same lookup key and the later
	// one is shadowed.
	Collisions int `json:"collisions,omitempty"`
}

// ParseReport runs the full pipeline over one report document.
func ParseReport(text string, roster []Participant) *Report {
	ix := NewIndex(roster)
	events := parseTimelineWith(ix, text)
	snapshots := parseSnapshotsWith(ix, text)
	return &Report{
		Events:     events,
		Snapshots:  snapshots,
		Frames:     AssembleFrames(events, snapshots),
		Roles:      parseRolesWith(ix, text),
		Collisions: ix.Collisions,
	}
}

// ParseTimeline extracts the ordered event list from the report's Timeline
// section. Empty text or a missing section yields an empty, non-nil slice.
// Events come out in source order; the generator writes them chronologically
// and the parser trusts that rather than sorting.
func ParseTimeline(text string, roster []Participant) []Event {
	return parseTimelineWith(NewIndex(roster), text)
}

// ParseSnapshots extracts the per-minute participant states from the
// minute-by-minute section.
func ParseSnapshots(text string, roster []Participant) []MinuteSnapshot {
	return parseSnapshotsWith(NewIndex(roster), text)
}

// ParseRoles extracts the puuid → role map from the final-stats section.
func ParseRoles(text string, roster []Participant) map[string]string {
	return parseRolesWith(NewIndex(roster), text)
}

func parseTimelineWith(ix *Index, text string) []Event {
	events := []Event{}
	body, ok := section(text, timelineMarker, minuteMarker)
	if !ok {
		return events
	}

	// Small fold: an event line becomes the current event; a positions line
	// belongs to it. Positions lines arriving before any event have no
	// owner and are dropped.
	var current *Event
	for _, l := range classifyTimeline(body) {
		switch line := l.(type) {
		case eventLine:
			ev := extractEvent(ix, line.Stamp, line.Detail)
			ev.ID = fmt.Sprintf("coach-event-%d", len(events))
			ev.Positions = []Position{}
			events = append(events, ev)
			current = &events[len(events)-1]
		case positionsLine:
			if current == nil {
				continue
			}
			// An empty scan result leaves the default untouched rather
			// than clobbering it with nothing.
			if positions := parsePositions(ix, line.Rest); len(positions) > 0 {
				current.Positions = positions
			}
		}
	}
	return events
}

func parseSnapshotsWith(ix *Index, text string) []MinuteSnapshot {
	body, ok := section(text, minuteMarker)
	if !ok {
		return []MinuteSnapshot{}
	}
	snapshots := foldSnapshots(ix, classifyMinutes(body))
	if snapshots == nil {
		return []MinuteSnapshot{}
	}
	return snapshots
}

func parseRolesWith(ix *Index, text string) map[string]string {
	body, ok := section(text, statsMarker, timelineMarker)
	if !ok {
		return map[string]string{}
	}
	return foldRoles(ix, classifyStats(body))
}
