package db

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rewind/internal/review"
)

// ReviewWriter persists parsed review output to the database.
type ReviewWriter struct {
	pool *pgxpool.Pool
}

// NewReviewWriter creates a new review writer.
func NewReviewWriter(pool *pgxpool.Pool) *ReviewWriter {
	return &ReviewWriter{pool: pool}
}

// WriteReport stores a parsed report within a single transaction. An
// advisory lock keyed on the match id serializes concurrent reprocessing of
// the same match; existing review rows are purged first so the write is
// idempotent.
func (w *ReviewWriter) WriteReport(ctx context.Context, matchID string, rep *review.Report) error {
	tx, err := w.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, matchLockKey(matchID)); err != nil {
		return fmt.Errorf("acquire match lock: %w", err)
	}

	if err := purgeReview(ctx, tx, matchID); err != nil {
		return fmt.Errorf("purge review rows: %w", err)
	}

	frameIDs, err := insertFrames(ctx, tx, matchID, rep.Frames)
	if err != nil {
		return fmt.Errorf("insert frames: %w", err)
	}

	if err := insertEvents(ctx, tx, matchID, frameIDs, rep.Frames); err != nil {
		return fmt.Errorf("insert events: %w", err)
	}

	if err := insertParticipantStates(ctx, tx, matchID, rep.Snapshots); err != nil {
		return fmt.Errorf("insert participant states: %w", err)
	}

	if err := insertRoles(ctx, tx, matchID, rep.Roles); err != nil {
		return fmt.Errorf("insert roles: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// purgeReview deletes existing review rows for the match in reverse FK
// order.
func purgeReview(ctx context.Context, tx pgx.Tx, matchID string) error {
	for _, stmt := range []string{
		`DELETE FROM review_event_positions WHERE event_id IN
			(SELECT id FROM review_events WHERE match_id = $1)`,
		`DELETE FROM review_event_assists WHERE event_id IN
			(SELECT id FROM review_events WHERE match_id = $1)`,
		`DELETE FROM review_events WHERE match_id = $1`,
		`DELETE FROM review_participant_states WHERE match_id = $1`,
		`DELETE FROM review_roles WHERE match_id = $1`,
		`DELETE FROM review_frames WHERE match_id = $1`,
	} {
		if _, err := tx.Exec(ctx, stmt, matchID); err != nil {
			return err
		}
	}
	return nil
}

func insertFrames(ctx context.Context, tx pgx.Tx, matchID string, frames []review.Frame) (map[int]uuid.UUID, error) {
	frameIDs := make(map[int]uuid.UUID, len(frames))
	for _, frame := range frames {
		id := uuid.New()
		if _, err := tx.Exec(ctx, `
			INSERT INTO review_frames (id, match_id, timestamp_seconds, has_snapshot)
			VALUES ($1, $2, $3, $4)
		`, id, matchID, frame.Timestamp, frame.Participants != nil); err != nil {
			return nil, err
		}
		frameIDs[frame.Timestamp] = id
	}
	return frameIDs, nil
}

func insertEvents(ctx context.Context, tx pgx.Tx, matchID string, frameIDs map[int]uuid.UUID, frames []review.Frame) error {
	for _, frame := range frames {
		frameID := frameIDs[frame.Timestamp]
		for _, ev := range frame.Events {
			eventID := uuid.New()
			if _, err := tx.Exec(ctx, `
				INSERT INTO review_events
					(id, match_id, frame_id, event_key, raw_timestamp, timestamp_seconds,
					 description, category, killer_puuid, victim_puuid,
					 objective_puuid, objective_name)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			`, eventID, matchID, frameID, ev.ID, ev.RawTimestamp, ev.TimestampSeconds,
				ev.Description, string(ev.Category), actorPUUID(ev.Killer), actorPUUID(ev.Victim),
				actorPUUID(ev.ObjectiveActor), nullable(ev.ObjectiveName)); err != nil {
				return err
			}

			for ord, assist := range ev.Assists {
				if _, err := tx.Exec(ctx, `
					INSERT INTO review_event_assists
						(event_id, ord, puuid, summoner_name, champion_name, team_id)
					VALUES ($1, $2, $3, $4, $5, $6)
				`, eventID, ord, nullable(assist.PUUID), assist.SummonerName,
					assist.ChampionName, assist.TeamID); err != nil {
					return err
				}
			}

			for ord, pos := range ev.Positions {
				if _, err := tx.Exec(ctx, `
					INSERT INTO review_event_positions
						(event_id, ord, puuid, summoner_name, champion_name, team_id, x, y)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				`, eventID, ord, nullable(pos.PUUID), pos.SummonerName,
					pos.ChampionName, pos.TeamID, pos.X, pos.Y); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func insertParticipantStates(ctx context.Context, tx pgx.Tx, matchID string, snapshots []review.MinuteSnapshot) error {
	for _, snap := range snapshots {
		for _, state := range snap.Participants {
			items := make([]int32, len(state.Items))
			for i, item := range state.Items {
				items[i] = int32(item)
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO review_participant_states
					(id, match_id, minute, puuid, participant_id, team_id,
					 level, cs, gold, x, y, items)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			`, uuid.New(), matchID, snap.Minute, state.PUUID, state.ParticipantID,
				state.TeamID, state.Level, state.CS, state.Gold,
				state.Position.X, state.Position.Y, items); err != nil {
				return err
			}
		}
	}
	return nil
}

func insertRoles(ctx context.Context, tx pgx.Tx, matchID string, roles map[string]string) error {
	for puuid, role := range roles {
		if _, err := tx.Exec(ctx, `
			INSERT INTO review_roles (match_id, puuid, role)
			VALUES ($1, $2, $3)
		`, matchID, puuid, role); err != nil {
			return err
		}
	}
	return nil
}

func actorPUUID(a *review.Actor) *string {
	if a == nil || a.PUUID == "" {
		return nil
	}
	puuid := a.PUUID
	return &puuid
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// matchLockKey folds a match id into the advisory-lock keyspace.
func matchLockKey(matchID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(matchID))
	return int64(h.Sum64())
}
