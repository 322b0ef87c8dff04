package secrets

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"jobfilter-engine/internal/store"
)

func newPlain(t *testing.T) PlainHolder {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "jobfilter.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return PlainHolder{KV: db}
}

func exerciseHolder(t *testing.T, h CredentialHolder) {
	ctx := context.Background()

	assert.False(t, h.Has(ctx))
	_, ok := h.Get(ctx)
	assert.False(t, ok)

	require.NoError(t, h.Set(ctx, "sk-first"))
	require.NoError(t, h.Set(ctx, "sk-second"))
	assert.True(t, h.Has(ctx))
	v, ok := h.Get(ctx)
	assert.True(t, ok)
	assert.Equal(t, "sk-second", v)

	require.NoError(t, h.Delete(ctx))
	assert.False(t, h.Has(ctx))

	// deleting twice is not an error
	require.NoError(t, h.Delete(ctx))
}

func TestPlainHolder(t *testing.T) {
	exerciseHolder(t, newPlain(t))
}

func TestPlainHolder_StoresUnderOpenAIKey(t *testing.T) {
	h := newPlain(t)
	ctx := context.Background()
	require.NoError(t, h.Set(ctx, "sk-x"))

	v, ok, err := h.KV.Get(ctx, "openai_api_key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "sk-x", v)
}

func TestPlainHolder_BlankIsAbsent(t *testing.T) {
	h := newPlain(t)
	ctx := context.Background()
	require.NoError(t, h.Set(ctx, "   "))
	assert.False(t, h.Has(ctx))
}

type brokenKV struct{}

func (brokenKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk I/O error")
}
func (brokenKV) Set(context.Context, string, string) error { return errors.New("disk I/O error") }
func (brokenKV) Delete(context.Context, string) error      { return errors.New("disk I/O error") }

func TestPlainHolder_ReadFailureIsLoggedAndAbsent(t *testing.T) {
	hook := logtest.NewGlobal()
	t.Cleanup(hook.Reset)

	h := PlainHolder{KV: brokenKV{}}
	_, ok := h.Get(context.Background())
	assert.False(t, ok)
	assert.False(t, h.Has(context.Background()))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, log.WarnLevel, entry.Level)
	assert.Contains(t, entry.Message, "[secrets] read failed: disk I/O error")
}

func TestKeyringHolder(t *testing.T) {
	keyring.MockInit()
	exerciseHolder(t, KeyringHolder{Service: KeyringService, Account: KeyringAccount})
}

func TestNew(t *testing.T) {
	h, err := New("", nil)
	require.NoError(t, err)
	assert.IsType(t, PlainHolder{}, h)

	h, err = New("Keyring", nil)
	require.NoError(t, err)
	assert.IsType(t, KeyringHolder{}, h)

	_, err = New("vault", nil)
	assert.Error(t, err)
}

func TestLive_SwapMovesToNewBackend(t *testing.T) {
	keyring.MockInit()
	ctx := context.Background()
	plain := newPlain(t)
	require.NoError(t, plain.Set(ctx, "sk-plain"))

	l := NewLive(plain)
	v, ok := l.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "sk-plain", v)

	l.Swap(KeyringHolder{Service: KeyringService, Account: KeyringAccount})
	assert.False(t, l.Has(ctx))
	require.NoError(t, l.Set(ctx, "sk-keyring"))
	v, ok = l.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "sk-keyring", v)

	// the plain store is untouched
	v, _ = plain.Get(ctx)
	assert.Equal(t, "sk-plain", v)
	require.NoError(t, l.Delete(ctx))
}
