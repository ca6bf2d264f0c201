package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-pairs/internal/core"
)

// Round outcomes as stored in the rounds table.
const (
	OutcomeWon  = "won"
	OutcomeLost = "lost"
)

// RoundRecord is one finished round.
type RoundRecord struct {
	ID           int64
	RoundID      string
	GameID       string
	Profile      string
	Level        int // 0 for classic mode
	Outcome      string
	Moves        int
	Pairs        int
	DurationSecs int
	CreatedAt    time.Time
}

// LevelStats aggregates the rounds played on one level.
type LevelStats struct {
	Level      int
	Played     int
	Won        int
	Lost       int
	BestMoves  int // Fewest moves in a won round, 0 if never won
	AvgMoves   float64
	LastPlayed time.Time
}

// SaveRound records a finished round for the given game.
// Saving the same round id twice keeps the first record and returns 0.
func (s *Store) SaveRound(gameID string, r core.RoundResult) (int64, error) {
	outcome := OutcomeLost
	if r.Won {
		outcome = OutcomeWon
	}

	result, err := s.db.Exec(
		`INSERT INTO rounds (round_id, game_id, profile, level, outcome, moves, pairs, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(round_id) DO NOTHING`,
		r.RoundID, gameID, r.Profile, r.Level, outcome, r.Moves, r.Pairs, int(r.Duration/time.Second),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return 0, nil
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRounds returns the most recent rounds of a game, newest first.
// An empty profile matches every profile.
func (s *Store) RecentRounds(gameID, profile string, limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, round_id, game_id, profile, level, outcome, moves, pairs, duration_secs, created_at
		 FROM rounds
		 WHERE game_id = ? AND (? = '' OR profile = ?)
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, profile, profile, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		var r RoundRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.RoundID,
			&r.GameID,
			&r.Profile,
			&r.Level,
			&r.Outcome,
			&r.Moves,
			&r.Pairs,
			&r.DurationSecs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// BestMoves returns the fewest moves of any won round per level.
// Levels never won are absent. An empty profile matches every profile.
func (s *Store) BestMoves(gameID, profile string) (map[int]int, error) {
	rows, err := s.db.Query(
		`SELECT level, MIN(moves)
		 FROM rounds
		 WHERE game_id = ? AND outcome = ? AND (? = '' OR profile = ?)
		 GROUP BY level`,
		gameID, OutcomeWon, profile, profile,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best moves: %w", err)
	}
	defer rows.Close()

	best := make(map[int]int)
	for rows.Next() {
		var level, moves int
		if err := rows.Scan(&level, &moves); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		best[level] = moves
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return best, nil
}

// LevelStats returns per-level aggregates for a game, ordered by level.
// An empty profile matches every profile.
func (s *Store) LevelStats(gameID, profile string) ([]LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level,
		        COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MIN(CASE WHEN outcome = ? THEN moves END), 0),
		        COALESCE(AVG(moves), 0),
		        MAX(created_at)
		 FROM rounds
		 WHERE game_id = ? AND (? = '' OR profile = ?)
		 GROUP BY level
		 ORDER BY level`,
		OutcomeWon, OutcomeWon, gameID, profile, profile,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	var stats []LevelStats
	for rows.Next() {
		var st LevelStats
		var best sql.NullInt64
		var lastPlayed any
		if err := rows.Scan(&st.Level, &st.Played, &st.Won, &best, &st.AvgMoves, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		if best.Valid {
			st.BestMoves = int(best.Int64)
		}
		st.Lost = st.Played - st.Won
		st.LastPlayed = parseTime(lastPlayed)
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearRounds deletes all rounds for the given game.
func (s *Store) ClearRounds(gameID string) error {
	_, err := s.db.Exec("DELETE FROM rounds WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}
