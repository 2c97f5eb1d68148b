package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"rewind/internal/review"
)

// RosterReader provides read-only access to the canonical participant
// roster tables.
type RosterReader struct {
	pool *pgxpool.Pool
}

// NewRosterReader creates a new roster reader.
func NewRosterReader(pool *pgxpool.Pool) *RosterReader {
	return &RosterReader{pool: pool}
}

// MatchExists reports whether the match has been ingested.
func (r *RosterReader) MatchExists(ctx context.Context, matchID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM matches WHERE match_id = $1)
	`, matchID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check match exists: %w", err)
	}
	return exists, nil
}

// GetRoster loads the participant roster for a match in participant order.
// A standard match has ten rows, but nothing here depends on that.
func (r *RosterReader) GetRoster(ctx context.Context, matchID string) ([]review.Participant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT puuid, participant_id, summoner_name, champion_name, team_id
		FROM match_participants
		WHERE match_id = $1
		ORDER BY participant_id
	`, matchID)
	if err != nil {
		return nil, fmt.Errorf("query roster: %w", err)
	}
	defer rows.Close()

	var roster []review.Participant
	for rows.Next() {
		var p review.Participant
		if err := rows.Scan(&p.PUUID, &p.ParticipantID, &p.SummonerName, &p.ChampionName, &p.TeamID); err != nil {
			return nil, fmt.Errorf("scan roster row: %w", err)
		}
		roster = append(roster, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roster rows: %w", err)
	}
	return roster, nil
}
