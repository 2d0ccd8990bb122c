package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeTx(t *testing.T) {
	ctx := context.Background()
	sqldb, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer sqldb.Close()

	qry := New(sqldb)
	makeTx := NewMakeTx(sqldb, qry)
	run := CreateRunParams{
		StartedAt:   1,
		FinishedAt:  2,
		Origin:      "GRU",
		Destination: "FCO",
		Searches:    18,
	}

	tx, discard, _, err := makeTx(ctx)
	require.NoError(t, err)
	_, err = tx.CreateRun(ctx, run)
	require.NoError(t, err)
	require.NoError(t, discard())

	_, err = qry.GetLatestRun(ctx)
	require.ErrorIs(t, err, sql.ErrNoRows)

	tx, discard, commit, err := makeTx(ctx)
	require.NoError(t, err)
	id, err := tx.CreateRun(ctx, run)
	require.NoError(t, err)
	require.NoError(t, commit())
	require.NoError(t, discard())

	latest, err := qry.GetLatestRun(ctx)
	require.NoError(t, err)
	require.Equal(t, id, latest.ID)
	require.Equal(t, "FCO", latest.Destination)
}
