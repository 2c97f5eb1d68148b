package review

import "testing"

func TestExtractEventKill(t *testing.T) {
	ix := NewIndex(testRoster())

	ev := extractEvent(ix, "02:48", "Red Sympponyy (Janna) killed Blue Jinzo (Hecarim)")
	if ev.Category != CategoryKill {
		t.Fatalf("category = %s, want kill", ev.Category)
	}
	if ev.TimestampSeconds != 168 {
		t.Errorf("timestamp = %d, want 168", ev.TimestampSeconds)
	}
	if ev.Killer == nil || ev.Killer.PUUID != "p1" {
		t.Errorf("killer = %+v, want p1", ev.Killer)
	}
	if ev.Victim == nil || ev.Victim.PUUID != "p2" {
		t.Errorf("victim = %+v, want p2", ev.Victim)
	}
	if len(ev.Assists) != 0 {
		t.Errorf("assists = %v, want empty", ev.Assists)
	}
	if ev.Assists == nil {
		t.Error("assists must be an empty slice, not nil")
	}
}

func TestExtractEventKillAssists(t *testing.T) {
	ix := NewIndex(testRoster())

	ev := extractEvent(ix, "10:02",
		"Blue Jinzo (Hecarim) killed Red Sympponyy (Janna) (assists: Blue Foo (Ahri) Blue bigtid3ies (Sion))")
	if ev.Category != CategoryKill {
		t.Fatalf("category = %s, want kill", ev.Category)
	}
	if len(ev.Assists) != 2 {
		t.Fatalf("assists = %d, want 2", len(ev.Assists))
	}
	// Text order is preserved.
	if ev.Assists[0].PUUID != "p3" || ev.Assists[1].PUUID != "p4" {
		t.Errorf("assist order = [%s %s], want [p3 p4]", ev.Assists[0].PUUID, ev.Assists[1].PUUID)
	}
}

func TestExtractEventKillUnknownTeamToken(t *testing.T) {
	ix := NewIndex(testRoster())

	ev := extractEvent(ix, "01:00", "None None (None) killed Red Sympponyy (Janna)")
	if ev.Category != CategoryKill {
		t.Fatalf("category = %s, want kill", ev.Category)
	}
	if ev.Killer == nil || ev.Killer.Resolved() {
		t.Fatalf("killer should stay unresolved: %+v", ev.Killer)
	}
	if ev.Killer.TeamID != 0 {
		t.Errorf("killer team id = %d, must not be guessed", ev.Killer.TeamID)
	}
	if ev.Victim == nil || ev.Victim.PUUID != "p1" {
		t.Errorf("victim = %+v, want p1", ev.Victim)
	}
}

func TestExtractEventObjective(t *testing.T) {
	ix := NewIndex(testRoster())

	ev := extractEvent(ix, "14:11", "Blue team secured Dragon (by Blue Foo (Ahri))")
	if ev.Category != CategoryObjective {
		t.Fatalf("category = %s, want objective", ev.Category)
	}
	if ev.ObjectiveName != "Dragon" {
		t.Errorf("objective name = %q, want Dragon", ev.ObjectiveName)
	}
	if ev.ObjectiveActor == nil || ev.ObjectiveActor.PUUID != "p3" {
		t.Errorf("objective actor = %+v, want p3", ev.ObjectiveActor)
	}

	ev = extractEvent(ix, "20:00", "Red team secured Baron Nashor")
	if ev.Category != CategoryObjective || ev.ObjectiveActor != nil {
		t.Errorf("bare secured: category=%s actor=%+v", ev.Category, ev.ObjectiveActor)
	}
}

func TestExtractEventStructures(t *testing.T) {
	ix := NewIndex(testRoster())

	tests := []struct {
		detail string
		want   EventCategory
	}{
		{"Red team destroyed Outer Turret", CategoryTurret},
		{"Red team destroyed Mid Tower", CategoryTurret},
		{"Blue team destroyed Top Inhibitor", CategoryInhibitor},
		// Two keywords: inhibitor outranks turret.
		{"Blue team destroyed Inhibitor Turret", CategoryInhibitor},
		{"Blue team destroyed Nexus", CategoryNexus},
		{"Blue team destroyed Nexus Turret", CategoryNexus},
		{"Red team destroyed something odd", CategoryObjective},
	}

	for _, tc := range tests {
		ev := extractEvent(ix, "22:30", tc.detail)
		if ev.Category != tc.want {
			t.Errorf("%q: category = %s, want %s", tc.detail, ev.Category, tc.want)
		}
	}
}

func TestExtractEventCapsToken(t *testing.T) {
	ix := NewIndex(testRoster())

	ev := extractEvent(ix, "25:00", "DRAGON_SOUL")
	if ev.Category != CategoryObjective {
		t.Fatalf("category = %s, want objective", ev.Category)
	}
	if ev.ObjectiveName != "DRAGON SOUL" {
		t.Errorf("objective name = %q, underscores should become spaces", ev.ObjectiveName)
	}
	if ev.ObjectiveActor != nil {
		t.Errorf("caps token has no actor, got %+v", ev.ObjectiveActor)
	}

	ev = extractEvent(ix, "30:12", "NEXUS DESTROYED")
	if ev.Category != CategoryNexus {
		t.Errorf("category = %s, want nexus", ev.Category)
	}
}

func TestExtractEventUnknown(t *testing.T) {
	ix := NewIndex(testRoster())

	ev := extractEvent(ix, "05:05", "something the generator made up")
	if ev.Category != CategoryUnknown {
		t.Fatalf("category = %s, want unknown", ev.Category)
	}
	if ev.Description != "something the generator made up" {
		t.Errorf("description must be preserved verbatim, got %q", ev.Description)
	}
	if ev.Killer != nil || ev.Victim != nil || ev.ObjectiveActor != nil {
		t.Error("unknown events carry no actors")
	}
}

func TestCategorizeObjectiveKeywords(t *testing.T) {
	tests := []struct {
		name string
		want EventCategory
	}{
		{"Dragon", CategoryObjective},
		{"Voidgrubs", CategoryObjective},
		{"Rift Herald", CategoryObjective},
		{"Atakhan", CategoryObjective},
		{"Ocean Soul", CategoryObjective},
		{"Outer Turret", CategoryTurret},
		{"Bot Tower", CategoryTurret},
		{"Mid Inhibitor", CategoryInhibitor},
		{"Nexus", CategoryNexus},
		{"Nexus Turret", CategoryNexus},
		{"Unknown Thing", CategoryObjective},
	}
	for _, tc := range tests {
		if got := categorizeObjective(tc.name); got != tc.want {
			t.Errorf("categorizeObjective(%q) = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestMMSSToSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"02:48", 168},
		{"00:00", 0},
		{"45:59", 2759},
		{"garbage", 0},
		{"12", 0},
		{"aa:bb", 0},
	}
	for _, tc := range tests {
		if got := mmssToSeconds(tc.in); got != tc.want {
			t.Errorf("mmssToSeconds(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
