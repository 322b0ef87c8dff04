package prefs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobfilter-engine/internal/domain"
	"jobfilter-engine/internal/store"
)

type memKV struct {
	m       map[string]string
	getErr  error
	setErr  error
	setHits int
}

func newMemKV() *memKV { return &memKV{m: map[string]string{}} }

func (k *memKV) Get(_ context.Context, key string) (string, bool, error) {
	if k.getErr != nil {
		return "", false, k.getErr
	}
	v, ok := k.m[key]
	return v, ok, nil
}

func (k *memKV) Set(_ context.Context, key, value string) error {
	k.setHits++
	if k.setErr != nil {
		return k.setErr
	}
	k.m[key] = value
	return nil
}

func (k *memKV) Delete(_ context.Context, key string) error {
	delete(k.m, key)
	return nil
}

func TestOpen_EmptyWhenNothingPersisted(t *testing.T) {
	s := Open(context.Background(), newMemKV())

	p := s.Get()
	assert.Equal(t, []string{}, p.Interested)
	assert.Equal(t, []string{}, p.NotInterested)
	assert.False(t, s.HasAnyPreferences())
}

func TestOpen_MalformedJSONFallsBackToEmpty(t *testing.T) {
	kv := newMemKV()
	kv.m[store.KeyPreferences] = `{"interested": [`

	s := Open(context.Background(), kv)
	assert.Equal(t, domain.EmptyPreferences(), s.Get())
}

func TestOpen_ReadErrorFallsBackToEmpty(t *testing.T) {
	kv := newMemKV()
	kv.getErr = errors.New("disk gone")

	s := Open(context.Background(), kv)
	assert.Equal(t, domain.EmptyPreferences(), s.Get())
}

func TestOpen_NullListsBecomeEmpty(t *testing.T) {
	kv := newMemKV()
	kv.m[store.KeyPreferences] = `{"interested":["react"],"notInterested":null}`

	s := Open(context.Background(), kv)
	p := s.Get()
	assert.Equal(t, []string{"react"}, p.Interested)
	assert.Equal(t, []string{}, p.NotInterested)
}

func TestReplace_RoundTrip(t *testing.T) {
	cases := []domain.PreferenceSet{
		domain.EmptyPreferences(),
		{Interested: []string{"react", "remote"}, NotInterested: []string{}},
		{Interested: []string{}, NotInterested: []string{"php"}},
		{Interested: []string{"go", "go"}, NotInterested: []string{"Junior", "on-site only"}},
	}

	for _, want := range cases {
		kv := newMemKV()
		s := Open(context.Background(), kv)
		require.NoError(t, s.Replace(context.Background(), want))
		assert.Equal(t, want, s.Get())

		// and after a reload from the persisted value
		reopened := Open(context.Background(), kv)
		assert.Equal(t, want, reopened.Get())
	}
}

func TestReplace_PersistsOneJSONValue(t *testing.T) {
	kv := newMemKV()
	s := Open(context.Background(), kv)

	require.NoError(t, s.Replace(context.Background(), domain.PreferenceSet{
		Interested:    []string{"react"},
		NotInterested: []string{"php"},
	}))

	assert.JSONEq(t, `{"interested":["react"],"notInterested":["php"]}`, kv.m[store.KeyPreferences])
	assert.Equal(t, 1, kv.setHits)
}

func TestReplace_WriteFailureKeepsMemoryState(t *testing.T) {
	kv := newMemKV()
	kv.setErr = errors.New("read-only")
	s := Open(context.Background(), kv)

	err := s.AddInterest(context.Background(), "react")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist preferences")
	assert.Equal(t, []string{"react"}, s.Get().Interested)
}

func TestMutators(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, newMemKV())

	require.NoError(t, s.AddInterest(ctx, "react"))
	require.NoError(t, s.AddInterest(ctx, "remote"))
	require.NoError(t, s.AddInterest(ctx, "senior"))
	require.NoError(t, s.AddExclusion(ctx, "php"))
	require.NoError(t, s.AddExclusion(ctx, "junior"))
	assert.True(t, s.HasAnyPreferences())

	require.NoError(t, s.RemoveInterest(ctx, 1))
	require.NoError(t, s.RemoveExclusion(ctx, 0))

	p := s.Get()
	assert.Equal(t, []string{"react", "senior"}, p.Interested)
	assert.Equal(t, []string{"junior"}, p.NotInterested)
}

func TestRemove_OutOfRangeLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	s := Open(ctx, kv)
	require.NoError(t, s.AddInterest(ctx, "react"))
	writes := kv.setHits

	for _, idx := range []int{-1, 1, 99} {
		err := s.RemoveInterest(ctx, idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		err = s.RemoveExclusion(ctx, idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}

	assert.Equal(t, []string{"react"}, s.Get().Interested)
	assert.Equal(t, writes, kv.setHits)
}

func TestGet_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, newMemKV())
	require.NoError(t, s.AddInterest(ctx, "react"))

	p := s.Get()
	p.Interested[0] = "mutated"

	assert.Equal(t, []string{"react"}, s.Get().Interested)
}

func TestImportTagged(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, newMemKV())
	require.NoError(t, s.AddInterest(ctx, "existing"))

	n, err := s.ImportTagged(ctx, "Interested: react\nNot Interested: php\nremote", false)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"existing", "react", "remote"}, s.Get().Interested)
	assert.Equal(t, []string{"php"}, s.Get().NotInterested)

	_, err = s.ImportTagged(ctx, "not interested: java", true)
	require.NoError(t, err)
	assert.Equal(t, []string{}, s.Get().Interested)
	assert.Equal(t, []string{"java"}, s.Get().NotInterested)
}

func TestStore_WithSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := store.Open(filepath.Join(t.TempDir(), "jobfilter.db"))
	require.NoError(t, err)
	defer db.Close()

	s := Open(ctx, db)
	require.NoError(t, s.AddInterest(ctx, "react"))
	require.NoError(t, s.AddExclusion(ctx, "php"))

	reopened := Open(ctx, db)
	assert.Equal(t, domain.PreferenceSet{
		Interested:    []string{"react"},
		NotInterested: []string{"php"},
	}, reopened.Get())
}
