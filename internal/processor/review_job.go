package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rewind/internal/coach"
	"rewind/internal/db"
	"rewind/internal/logging"
	"rewind/internal/review"
)

// JobPayload represents the incoming job from the Redis queue.
type JobPayload struct {
	MatchID string `json:"match_id"`
}

// ReviewProcessor turns a queued match id into stored timeline frames:
// roster from Postgres, report text from the coach API, parse, write.
type ReviewProcessor struct {
	ctx    context.Context
	roster *db.RosterReader
	writer *db.ReviewWriter
	coach  *coach.Client
	log    logging.Interface
}

// NewReviewProcessor creates a review processor.
func NewReviewProcessor(ctx context.Context, roster *db.RosterReader, writer *db.ReviewWriter, coachClient *coach.Client) *ReviewProcessor {
	return &ReviewProcessor{
		ctx:    ctx,
		roster: roster,
		writer: writer,
		coach:  coachClient,
		log:    logging.Component("processor"),
	}
}

// Handle processes a single review job from the queue.
func (p *ReviewProcessor) Handle(payload []byte) error {
	start := time.Now()

	var job JobPayload
	if err := json.Unmarshal(payload, &job); err != nil {
		return fmt.Errorf("unmarshal job payload: %w", err)
	}
	if job.MatchID == "" {
		return fmt.Errorf("job payload has no match_id")
	}

	exists, err := p.roster.MatchExists(p.ctx, job.MatchID)
	if err != nil {
		return fmt.Errorf("check match exists: %w", err)
	}
	if !exists {
		// Not retryable: the match was never ingested.
		p.log.Warnf("match %s not found, skipping", job.MatchID)
		return nil
	}

	roster, err := p.roster.GetRoster(p.ctx, job.MatchID)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	text, err := p.coach.FetchReport(p.ctx, job.MatchID)
	if err != nil {
		return fmt.Errorf("fetch report: %w", err)
	}
	if text == "" {
		p.log.Infof("no report available for %s, storing empty timeline", job.MatchID)
	}

	rep := review.ParseReport(text, roster)
	if rep.Collisions > 0 {
		p.log.Warnf("match %s: %d roster name collisions, some lookups shadowed", job.MatchID, rep.Collisions)
	}

	p.log.Infof("parsed report for %s: %d events, %d snapshots, %d frames, %d roles",
		job.MatchID, len(rep.Events), len(rep.Snapshots), len(rep.Frames), len(rep.Roles))

	if err := p.writer.WriteReport(p.ctx, job.MatchID, rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	p.log.Infof("review job completed for %s in %v", job.MatchID, time.Since(start))
	return nil
}
