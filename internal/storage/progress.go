package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// SetProgress records the campaign level a game was last played at.
func (s *Store) SetProgress(gameID, levelID string) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (game_id, level_id) VALUES (?, ?)
		 ON CONFLICT(game_id) DO UPDATE SET level_id = excluded.level_id, updated_at = CURRENT_TIMESTAMP`,
		gameID, levelID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// Progress returns the saved level of a game, or "" when none is saved.
func (s *Store) Progress(gameID string) (string, error) {
	var levelID string
	err := s.db.QueryRow("SELECT level_id FROM progress WHERE game_id = ?", gameID).Scan(&levelID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot query progress: %w", err)
	}
	return levelID, nil
}
