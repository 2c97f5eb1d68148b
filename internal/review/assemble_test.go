package review

import "testing"

func TestAssembleFramesMergesEventsIntoSnapshots(t *testing.T) {
	snapshots := []MinuteSnapshot{
		{Minute: 2, Participants: map[string]ParticipantState{"p1": {PUUID: "p1", Level: 3}}},
		{Minute: 5, Participants: map[string]ParticipantState{"p1": {PUUID: "p1", Level: 6}}},
	}
	events := []Event{
		{ID: "coach-event-0", TimestampSeconds: 168, Category: CategoryKill},  // minute 2
		{ID: "coach-event-1", TimestampSeconds: 175, Category: CategoryKill},  // minute 2
		{ID: "coach-event-2", TimestampSeconds: 601, Category: CategoryNexus}, // minute 10, no snapshot
	}

	frames := AssembleFrames(events, snapshots)

	if len(frames) != 3 {
		t.Fatalf("frames = %d, want 3", len(frames))
	}

	assertSorted(t, frames)

	if frames[0].Timestamp != 120 || len(frames[0].Events) != 2 {
		t.Errorf("minute-2 frame = ts %d with %d events", frames[0].Timestamp, len(frames[0].Events))
	}
	if frames[0].Participants["p1"].Level != 3 {
		t.Error("minute-2 frame lost its snapshot")
	}

	if frames[1].Timestamp != 300 || len(frames[1].Events) != 0 {
		t.Errorf("minute-5 frame = ts %d with %d events", frames[1].Timestamp, len(frames[1].Events))
	}
	if frames[1].Events == nil {
		t.Error("snapshot frames carry an empty, non-nil event slice")
	}

	if frames[2].Timestamp != 600 || len(frames[2].Events) != 1 {
		t.Errorf("event-only frame = ts %d with %d events", frames[2].Timestamp, len(frames[2].Events))
	}
	if frames[2].Participants != nil {
		t.Error("event-only frames have no participant map")
	}
}

func TestAssembleFramesEmptyInputs(t *testing.T) {
	frames := AssembleFrames(nil, nil)
	if len(frames) != 1 {
		t.Fatalf("frames = %d, want exactly one zero frame", len(frames))
	}
	if frames[0].Timestamp != 0 || len(frames[0].Events) != 0 {
		t.Fatalf("zero frame = %+v", frames[0])
	}
}

func TestAssembleFramesNoDuplicateTimestamps(t *testing.T) {
	events := []Event{
		{TimestampSeconds: 59},
		{TimestampSeconds: 60},
		{TimestampSeconds: 61},
		{TimestampSeconds: 119},
	}
	frames := AssembleFrames(events, []MinuteSnapshot{{Minute: 1, Participants: map[string]ParticipantState{}}})

	assertSorted(t, frames)
	if len(frames) != 2 {
		t.Fatalf("frames = %d, want 2 (minutes 0 and 1)", len(frames))
	}
	if len(frames[0].Events) != 1 || len(frames[1].Events) != 3 {
		t.Errorf("event split = %d/%d, want 1/3", len(frames[0].Events), len(frames[1].Events))
	}
}

func assertSorted(t *testing.T, frames []Frame) {
	t.Helper()
	seen := map[int]bool{}
	for i, f := range frames {
		if i > 0 && frames[i-1].Timestamp >= f.Timestamp {
			t.Fatalf("frames not strictly ascending at %d: %d then %d", i, frames[i-1].Timestamp, f.Timestamp)
		}
		if seen[f.Timestamp] {
			t.Fatalf("duplicate frame timestamp %d", f.Timestamp)
		}
		seen[f.Timestamp] = true
	}
}
