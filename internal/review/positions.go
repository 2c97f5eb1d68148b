package review

import (
	"regexp"
	"strconv"
)

// "Blue bigtid3ies (Sion) @(1421,12917) | Red ..." — entries are scanned
// individually, so one malformed entry never poisons the rest.
var positionChunkRe = regexp.MustCompile(`(?i)(blue|red)\s+(.+?)\s+\(([^)|]+)\)\s*@\((-?\d+),\s*(-?\d+)\)`)

// parsePositions scans a positions payload for actor-at-coordinate chunks,
// resolving each actor through the index. Text order is preserved.
func parsePositions(ix *Index, rest string) []Position {
	var positions []Position
	for _, m := range positionChunkRe.FindAllStringSubmatch(rest, -1) {
		x, err := strconv.Atoi(m[4])
		if err != nil {
			continue
		}
		y, err := strconv.Atoi(m[5])
		if err != nil {
			continue
		}
		positions = append(positions, Position{
			Actor: ix.Resolve(m[1], m[2], m[3]),
			X:     x,
			Y:     y,
		})
	}
	return positions
}
