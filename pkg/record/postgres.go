package record

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
	"literature-server/pkg/db"
)

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

const gameColumns = `
games.uuid,
games.teams,
games.books,
games.winner,
games.log,
games.started,
games.ended`

// PostgresStore saves games to the games table
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a store backed by the database handle
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save implements Store
func (p *PostgresStore) Save(ctx context.Context, game *Game) error {
	const query = `
INSERT INTO games (uuid, teams, books, winner, log, started, ended)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	teams, err := json.Marshal(game.Teams)
	if err != nil {
		return err
	}

	books, err := json.Marshal(game.Books)
	if err != nil {
		return err
	}

	log, err := json.Marshal(game.Log)
	if err != nil {
		return err
	}

	_, err = p.db.ExecContext(ctx, query, game.UUID, string(teams), string(books), game.Winner, string(log), game.Started.UTC(), game.Ended.UTC())
	if err, ok := err.(*pq.Error); ok && err.Code == pqDuplicateKeyErrorCode {
		return ErrDuplicateRecord
	}

	return err
}

// Get returns a recorded game by UUID
// Returns sql.ErrNoRows if it does not exist
func (p *PostgresStore) Get(ctx context.Context, uuid string) (*Game, error) {
	const query = `
SELECT ` + gameColumns + `
FROM games
WHERE uuid = $1`

	return getGameByRow(p.db.QueryRowContext(ctx, query, uuid))
}

// Recent returns finished games, newest first
func (p *PostgresStore) Recent(ctx context.Context, start int64, limit int) ([]*Game, error) {
	const query = `
SELECT ` + gameColumns + `
FROM games
ORDER BY ended DESC
OFFSET $1
LIMIT $2`

	rows, err := p.db.QueryContext(ctx, query, start, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]*Game, 0, limit)
	for rows.Next() {
		game, err := getGameByRow(rows)
		if err != nil {
			return nil, err
		}

		games = append(games, game)
	}

	return games, rows.Err()
}

func getGameByRow(row db.Scanner) (*Game, error) {
	var game Game
	var teams, books, log []byte
	if err := row.Scan(&game.UUID, &teams, &books, &game.Winner, &log, &game.Started, &game.Ended); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(teams, &game.Teams); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(books, &game.Books); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(log, &game.Log); err != nil {
		return nil, err
	}

	return &game, nil
}
