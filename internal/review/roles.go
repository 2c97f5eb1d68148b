package review

import "strings"

// foldRoles maps final-stats role lines to puuid → role. Lines naming
// players outside the roster carry no identity and are skipped; roles are
// reported uppercased (TOP, JUNGLE, MIDDLE, BOTTOM, UTILITY).
func foldRoles(ix *Index, lines []reportLine) map[string]string {
	roles := make(map[string]string)
	for _, l := range lines {
		line, ok := l.(roleLine)
		if !ok {
			continue
		}
		p, found := ix.Lookup(parseTeamColor(line.Team), line.Name, line.Champion)
		if !found {
			continue
		}
		roles[p.PUUID] = strings.ToUpper(strings.TrimSpace(line.Role))
	}
	return roles
}
