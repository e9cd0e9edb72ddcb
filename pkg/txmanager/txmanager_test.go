package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx       *fakeTx
	opts     *sql.TxOptions
	begins   int
	beginErr error
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begins++
	b.opts = opts
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return b.tx, nil
}

func TestTransactionManager_CommitsOnSuccess(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(beginner)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, beginner.tx.committed)
	assert.False(t, beginner.tx.rolledBack)
	assert.Equal(t, sql.LevelSerializable, beginner.opts.Isolation)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(beginner)
	fnErr := errors.New("assignment insert failed")

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return fnErr
	})

	require.ErrorIs(t, err, fnErr)
	assert.True(t, beginner.tx.rolledBack)
	assert.False(t, beginner.tx.committed)
}

func TestTransactionManager_NestedCallsReuseTransaction(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(beginner)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(ctx context.Context) error {
			return nil
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 1, beginner.begins)
}

func TestTransactionManager_SerializationFailure(t *testing.T) {
	t.Run("from statement", func(t *testing.T) {
		beginner := &fakeBeginner{tx: &fakeTx{}}
		m := NewTransactionManager(beginner)

		err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
			return fmt.Errorf("select failed: %w", &pq.Error{Code: "40001"})
		})

		assert.ErrorIs(t, err, ErrSerializationFailure)
		assert.True(t, beginner.tx.rolledBack)
	})

	t.Run("from commit", func(t *testing.T) {
		beginner := &fakeBeginner{tx: &fakeTx{commitErr: &pq.Error{Code: "40P01"}}}
		m := NewTransactionManager(beginner)

		err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
			return nil
		})

		assert.ErrorIs(t, err, ErrSerializationFailure)
		assert.ErrorIs(t, err, ErrCommitTx)
	})

	t.Run("other errors untouched", func(t *testing.T) {
		beginner := &fakeBeginner{tx: &fakeTx{}}
		m := NewTransactionManager(beginner)

		err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
			return &pq.Error{Code: "23505"}
		})

		assert.NotErrorIs(t, err, ErrSerializationFailure)
	})
}

func TestTransactionManager_BeginError(t *testing.T) {
	beginner := &fakeBeginner{beginErr: errors.New("connection refused")}
	m := NewTransactionManager(beginner)

	called := false
	err := m.Do(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrBeginTx)
	assert.False(t, called)
}
