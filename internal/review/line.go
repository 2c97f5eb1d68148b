package review

import (
	"regexp"
	"strconv"
	"strings"
)

// Section markers emitted by the coach report generator, in document order.
const (
	statsMarker    = "Players — Final Stats:"
	timelineMarker = "Timeline:"
	minuteMarker   = "Minute-by-minute — All Champions:"

	noEventsSentinel = "(no events)"
	positionsPrefix  = "positions:"
)

var (
	eventLineRe    = regexp.MustCompile(`^(\d{2}:\d{2})\s+—\s+(.*)$`)
	minuteHeaderRe = regexp.MustCompile(`^(\d{2}):00$`)

	// "- Blue Szpont (Vladimir) — Lvl 9, CS 112, Gold 5210 (+320), Items [Doran's Ring(1056)] @(4212,9120)"
	snapshotRowRe = regexp.MustCompile(
		`^-\s+(\S+)\s+(.+?)\s+\((.+?)\)\s+—\s+Lvl\s+(\d+),\s*CS\s+(\d+),\s*Gold\s+(\d+)\s*\(([+-]?\d+)\),\s*Items\s+\[(.*?)\]\s*@\((-?\d+),\s*(-?\d+)\)\s*$`)

	// "- Blue Szpont (Vladimir) [TOP] 4/2/9 ..." — trailing stats ignored.
	roleLineRe = regexp.MustCompile(`^-\s+(\S+)\s+(.+?)\s+\((.+?)\)\s+\[([^\]]+)\]`)

	itemIDRe = regexp.MustCompile(`\((\d+)\)\s*$`)
)

// reportLine is one classified line of report text. Unrecognized lines never
// become reportLines; the classifier drops them.
type reportLine interface{ reportLine() }

type eventLine struct {
	Stamp  string // "MM:SS"
	Detail string
}

type positionsLine struct {
	Rest string // text after the "positions:" token
}

type minuteHeader struct {
	Minute int
}

type snapshotRow struct {
	Team     string
	Name     string
	Champion string
	Level    int
	CS       int
	Gold     int
	Items    []int
	X, Y     int
}

type roleLine struct {
	Team     string
	Name     string
	Champion string
	Role     string
}

func (eventLine) reportLine()     {}
func (positionsLine) reportLine() {}
func (minuteHeader) reportLine()  {}
func (snapshotRow) reportLine()   {}
func (roleLine) reportLine()      {}

// section extracts the text between marker and the first terminator found
// after it (or end of text). A missing marker yields "", false — short or
// incomplete matches legitimately omit sections.
func section(text, marker string, terminators ...string) (string, bool) {
	start := strings.Index(text, marker)
	if start < 0 {
		return "", false
	}
	body := text[start+len(marker):]
	for _, term := range terminators {
		if end := strings.Index(body, term); end >= 0 {
			body = body[:end]
		}
	}
	return body, true
}

// classifyTimeline tags the timeline region's lines as event or positions
// lines. Blank lines, the "(no events)" sentinel and anything else are
// dropped.
func classifyTimeline(body string) []reportLine {
	var lines []reportLine
	for _, raw := range splitLines(body) {
		if raw == noEventsSentinel {
			continue
		}
		if rest, ok := cutPositions(raw); ok {
			lines = append(lines, positionsLine{Rest: rest})
			continue
		}
		if m := eventLineRe.FindStringSubmatch(raw); m != nil {
			lines = append(lines, eventLine{Stamp: m[1], Detail: m[2]})
		}
	}
	return lines
}

// classifyMinutes tags the minute-by-minute region's lines as minute headers
// or snapshot rows. Rows with malformed numeric fields fail the row pattern
// and are dropped with the rest of the unrecognized lines.
func classifyMinutes(body string) []reportLine {
	var lines []reportLine
	for _, raw := range splitLines(body) {
		if m := minuteHeaderRe.FindStringSubmatch(raw); m != nil {
			minute, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			lines = append(lines, minuteHeader{Minute: minute})
			continue
		}
		if m := snapshotRowRe.FindStringSubmatch(raw); m != nil {
			row, ok := buildSnapshotRow(m)
			if !ok {
				continue
			}
			lines = append(lines, row)
		}
	}
	return lines
}

// classifyStats tags the final-stats region's role-assignment lines.
func classifyStats(body string) []reportLine {
	var lines []reportLine
	for _, raw := range splitLines(body) {
		if !strings.HasPrefix(raw, "-") {
			continue
		}
		if m := roleLineRe.FindStringSubmatch(raw); m != nil {
			lines = append(lines, roleLine{Team: m[1], Name: m[2], Champion: m[3], Role: m[4]})
		}
	}
	return lines
}

func buildSnapshotRow(m []string) (snapshotRow, bool) {
	level, err := strconv.Atoi(m[4])
	if err != nil {
		return snapshotRow{}, false
	}
	cs, err := strconv.Atoi(m[5])
	if err != nil {
		return snapshotRow{}, false
	}
	gold, err := strconv.Atoi(m[6])
	if err != nil {
		return snapshotRow{}, false
	}
	// m[7] is the per-minute gold delta; the report repeats information the
	// cumulative value already carries, so it is matched and discarded.
	x, err := strconv.Atoi(m[9])
	if err != nil {
		return snapshotRow{}, false
	}
	y, err := strconv.Atoi(m[10])
	if err != nil {
		return snapshotRow{}, false
	}
	return snapshotRow{
		Team:     m[1],
		Name:     m[2],
		Champion: m[3],
		Level:    level,
		CS:       cs,
		Gold:     gold,
		Items:    parseItemList(m[8]),
		X:        x,
		Y:        y,
	}, true
}

// parseItemList parses "Name(id), Name(id), ..." keeping only the numeric
// ids, in order. Chunks without a trailing (id) are skipped. An empty
// bracket yields an empty, non-nil slice.
func parseItemList(raw string) []int {
	items := []int{}
	for _, chunk := range strings.Split(raw, ",") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		m := itemIDRe.FindStringSubmatch(chunk)
		if m == nil {
			continue
		}
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		items = append(items, id)
	}
	return items
}

func cutPositions(trimmed string) (string, bool) {
	if len(trimmed) < len(positionsPrefix) {
		return "", false
	}
	if !strings.EqualFold(trimmed[:len(positionsPrefix)], positionsPrefix) {
		return "", false
	}
	return strings.TrimSpace(trimmed[len(positionsPrefix):]), true
}

func splitLines(body string) []string {
	raw := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}
