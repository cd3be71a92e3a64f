package mysql

import (
	"context"
	"database/sql"
)

// Tx is the part of *sql.Tx the services drive directly.
type Tx interface {
	Querier
	Commit() error
	Rollback() error
}

type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (Tx, error)
}

// TxManager adapts *sql.DB to Beginner.
type TxManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) BeginTx(ctx context.Context, opts *sql.TxOptions) (Tx, error) {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return tx, nil
}
