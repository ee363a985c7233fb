package data

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dropsim/dropctl/pkg/scoring"
)

const (
	insertScoreSQL = `INSERT INTO score (
			entity_type,
			entity_id,
			total,
			confidence,
			grade,
			scored_at
		)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(entity_type, entity_id, scored_at) DO NOTHING
	`

	selectScoreHistorySQL = `SELECT total, confidence, grade, scored_at
		FROM score
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY scored_at
	`
)

// ScoreRecord is one historical score snapshot for an entity.
type ScoreRecord struct {
	Total      float64 `json:"total" yaml:"total"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Grade      string  `json:"grade" yaml:"grade"`
	ScoredAt   string  `json:"scored_at" yaml:"scored_at"`
}

// SaveScore appends a score snapshot for the entity. Snapshots build the
// history behind trend views.
func SaveScore(db *sql.DB, entityType, entityID string, r scoring.ScoreResult) error {
	if db == nil {
		return errDBNotInitialized
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := db.Exec(insertScoreSQL, entityType, entityID,
		r.Total, r.Confidence, r.Grade, now); err != nil {
		return fmt.Errorf("failed to execute score insert statement: %w", err)
	}
	return nil
}

// GetScoreHistory returns the entity's score snapshots, oldest first.
func GetScoreHistory(db *sql.DB, entityType, entityID string) ([]*ScoreRecord, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	rows, err := db.Query(selectScoreHistorySQL, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute score select statement: %w", err)
	}
	defer rows.Close()

	list := make([]*ScoreRecord, 0)
	for rows.Next() {
		r := &ScoreRecord{}
		if err := rows.Scan(&r.Total, &r.Confidence, &r.Grade, &r.ScoredAt); err != nil {
			return nil, fmt.Errorf("failed to scan score row: %w", err)
		}
		list = append(list, r)
	}
	return list, rows.Err()
}
