package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
	"github.com/zalando/go-keyring"

	"jobfilter-engine/internal/store"
)

const (
	// "Service" groups the app's secrets in the OS keychain.
	KeyringService = "jobfilter"
	KeyringAccount = store.KeyOpenAIKey

	BackendPlain   = "plain"
	BackendKeyring = "keyring"
)

// CredentialHolder is the only way callers reach the model API key, so the
// storage behind it can change without touching them.
type CredentialHolder interface {
	Has(ctx context.Context) bool
	// Get returns ok=false when no key is configured.
	Get(ctx context.Context) (key string, ok bool)
	Set(ctx context.Context, key string) error
	Delete(ctx context.Context) error
}

// New picks the backend named in config.
func New(backend string, kv store.KV) (CredentialHolder, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendPlain:
		return PlainHolder{KV: kv}, nil
	case BackendKeyring:
		return KeyringHolder{Service: KeyringService, Account: KeyringAccount}, nil
	default:
		return nil, fmt.Errorf("unknown secrets backend %q", backend)
	}
}

// Live forwards to a holder that can be swapped while the server runs, so a
// config reload can move the key to another backend.
type Live struct {
	cur atomic.Value // stores liveBox
}

type liveBox struct{ h CredentialHolder }

func NewLive(h CredentialHolder) *Live {
	l := &Live{}
	l.Swap(h)
	return l
}

// Swap replaces the backing holder. Keys already stored in the old backend
// are not copied.
func (l *Live) Swap(h CredentialHolder) {
	l.cur.Store(liveBox{h: h})
}

func (l *Live) holder() CredentialHolder {
	return l.cur.Load().(liveBox).h
}

func (l *Live) Has(ctx context.Context) bool { return l.holder().Has(ctx) }

func (l *Live) Get(ctx context.Context) (string, bool) { return l.holder().Get(ctx) }

func (l *Live) Set(ctx context.Context, key string) error { return l.holder().Set(ctx, key) }

func (l *Live) Delete(ctx context.Context) error { return l.holder().Delete(ctx) }

// PlainHolder keeps the key as plain text in the local KV store. Acceptable
// for a single-user local tool; use the keyring backend to harden it.
type PlainHolder struct {
	KV store.KV
}

func (h PlainHolder) Has(ctx context.Context) bool {
	_, ok := h.Get(ctx)
	return ok
}

func (h PlainHolder) Get(ctx context.Context) (string, bool) {
	v, ok, err := h.KV.Get(ctx, store.KeyOpenAIKey)
	if err != nil {
		log.Warnf("[secrets] read failed: %v", err)
		return "", false
	}
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

func (h PlainHolder) Set(ctx context.Context, key string) error {
	return h.KV.Set(ctx, store.KeyOpenAIKey, key)
}

func (h PlainHolder) Delete(ctx context.Context) error {
	return h.KV.Delete(ctx, store.KeyOpenAIKey)
}

// KeyringHolder stores the key in the OS keychain.
type KeyringHolder struct {
	Service string
	Account string
}

func (h KeyringHolder) Has(ctx context.Context) bool {
	_, ok := h.Get(ctx)
	return ok
}

func (h KeyringHolder) Get(_ context.Context) (string, bool) {
	v, err := keyring.Get(h.Service, h.Account)
	if err != nil || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

func (h KeyringHolder) Set(_ context.Context, key string) error {
	if strings.TrimSpace(h.Account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Set(h.Service, h.Account, key)
}

func (h KeyringHolder) Delete(_ context.Context) error {
	err := keyring.Delete(h.Service, h.Account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
