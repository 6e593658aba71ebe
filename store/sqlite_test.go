package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Linskii/coffee-tracker/bo"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bo.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreStateRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	in := &bo.State{
		ParameterMetadata: []bo.ParameterSchema{{ID: "dose", Kind: bo.KindBoundedContinuous, Bounded: bo.BoundedConfig{Min: 10, Max: 20, Step: 0.5}}},
		Observations:      []bo.Observation{{Vector: []float64{0.3}, Rating: 0.7}},
	}
	require.NoError(t, s.PutState(ctx, "bean1_machine1", in))

	out, err := s.GetState(ctx, "bean1_machine1")
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in.ParameterMetadata, out.ParameterMetadata)
	assert.Equal(t, in.Observations, out.Observations)
}

func TestSQLiteStoreGetStateMissingIsNilNil(t *testing.T) {
	s := newTestSQLiteStore(t)
	out, err := s.GetState(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestSQLiteStorePutStateOverwrites(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()
	require.NoError(t, s.PutState(ctx, "k", &bo.State{Observations: []bo.Observation{{Rating: 0.1}}}))
	require.NoError(t, s.PutState(ctx, "k", &bo.State{Observations: []bo.Observation{{Rating: 0.9}}}))

	out, err := s.GetState(ctx, "k")
	require.NoError(t, err)
	require.Len(t, out.Observations, 1)
	assert.Equal(t, 0.9, out.Observations[0].Rating)
}

func TestSQLiteStoreDeleteState(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()
	require.NoError(t, s.PutState(ctx, "k", &bo.State{}))
	require.NoError(t, s.DeleteState(ctx, "k"))

	out, err := s.GetState(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestSQLiteStoreKeys(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()
	require.NoError(t, s.PutState(ctx, "a_m1", &bo.State{}))
	require.NoError(t, s.PutState(ctx, "b_m1", &bo.State{}))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a_m1", "b_m1"}, keys)
}

func TestSQLiteStoreConfigRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	cfg, err := s.GetConfig(ctx)
	require.NoError(t, err)
	assert.Nil(t, cfg)

	want := bo.DefaultConfig()
	require.NoError(t, s.PutConfig(ctx, &want))

	got, err := s.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	want.NumCandidates = 512
	require.NoError(t, s.PutConfig(ctx, &want))
	got2, err := s.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, 512, got2.NumCandidates)
}
