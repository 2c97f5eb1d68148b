package review

import "sort"

// Frame is one playback step: every event that happened inside its minute,
// plus the per-minute participant states when the report carried a snapshot
// for that minute. Event-only frames have a nil Participants map.
type Frame struct {
	Timestamp    int                         `json:"timestamp"`
	Events       []Event                     `json:"events"`
	Participants map[string]ParticipantState `json:"participants,omitempty"`
}

// AssembleFrames merges events and per-minute snapshots into a single
// timeline sorted ascending by timestamp. Frame timestamps sit on minute
// boundaries; an event joins the frame owning its minute, so no two frames
// ever share a timestamp. Empty inputs still produce one zero frame so the
// scrubber always has something to stand on.
func AssembleFrames(events []Event, snapshots []MinuteSnapshot) []Frame {
	byMinute := make(map[int]*Frame, len(snapshots))

	for _, snap := range snapshots {
		byMinute[snap.Minute] = &Frame{
			Timestamp:    snap.Minute * 60,
			Events:       []Event{},
			Participants: snap.Participants,
		}
	}

	for _, ev := range events {
		minute := ev.TimestampSeconds / 60
		frame, ok := byMinute[minute]
		if !ok {
			frame = &Frame{Timestamp: minute * 60, Events: []Event{}}
			byMinute[minute] = frame
		}
		frame.Events = append(frame.Events, ev)
	}

	if len(byMinute) == 0 {
		return []Frame{{Timestamp: 0, Events: []Event{}}}
	}

	frames := make([]Frame, 0, len(byMinute))
	for _, f := range byMinute {
		frames = append(frames, *f)
	}
	sort.Slice(frames, func(i, j int) bool { return frames[i].Timestamp < frames[j].Timestamp })
	return frames
}
