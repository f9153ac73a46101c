// Package postgres provides the durable model store and decision corpus
// repositories backed by PostgreSQL via sqlx.
package postgres

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Open connects and verifies the database is reachable.
func Open(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return db, nil
}

// Schema creates the tables this package reads and writes. Idempotent; meant
// for bootstrap and tests, not migrations.
const Schema = `
CREATE TABLE IF NOT EXISTS model_weights (
	scope       TEXT        NOT NULL,
	offering_id TEXT        NOT NULL DEFAULT '',
	payload     JSONB       NOT NULL,
	version     INTEGER     NOT NULL,
	trained_at  TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (scope, offering_id)
);

CREATE TABLE IF NOT EXISTS decisions (
	decision_id TEXT        PRIMARY KEY,
	offering_id TEXT        NOT NULL,
	profile     JSONB       NOT NULL,
	status      TEXT        NOT NULL,
	decided_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS decisions_offering_idx ON decisions (offering_id);

CREATE TABLE IF NOT EXISTS offering_criteria (
	offering_id TEXT  PRIMARY KEY,
	criteria    JSONB NOT NULL
);
`
