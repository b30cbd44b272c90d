package draft

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ms1708/academy-portal/internal/domain"
	"github.com/ms1708/academy-portal/internal/storage"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(storage.KeyApplicationData, storage.NewMemoryStore(), zap.NewNop())

	saved := domain.ApplicationDraft{
		UserInfo: domain.UserInformation{FullName: "Thandi Dlovu", Email: "a@b.com"},
		AdditionalInfo: domain.AdditionalInformation{
			MiddleName:    "Grace",
			MaritalStatus: domain.MaritalStatusSingle,
		},
		CurrentStep: 3,
		Timestamp:   time.Now().UTC().Truncate(time.Second),
	}
	store.Save(saved)

	var loaded domain.ApplicationDraft
	require.True(t, store.Load(&loaded))
	assert.Equal(t, saved, loaded)
}

func TestLoadWhenEmpty(t *testing.T) {
	store := NewStore(storage.KeyApplicationData, storage.NewMemoryStore(), zap.NewNop())

	loaded := domain.ApplicationDraft{CurrentStep: 2}
	assert.False(t, store.Load(&loaded))
	assert.Equal(t, 2, loaded.CurrentStep, "out must stay untouched")
}

func TestLoadCorruptDraft(t *testing.T) {
	backing := storage.NewMemoryStore()
	require.NoError(t, backing.Set(context.Background(), storage.KeyOnboardingData, []byte("{not json")))
	store := NewStore(storage.KeyOnboardingData, backing, zap.NewNop())

	var loaded domain.OnboardingDraft
	assert.NotPanics(t, func() {
		assert.False(t, store.Load(&loaded))
	})
}

func TestClearRemovesDraft(t *testing.T) {
	store := NewStore(storage.KeyApplicationData, storage.NewMemoryStore(), zap.NewNop())
	store.Save(domain.ApplicationDraft{CurrentStep: 1})
	store.Clear()

	var loaded domain.ApplicationDraft
	assert.False(t, store.Load(&loaded))
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("io down") }
func (brokenStore) Set(context.Context, string, []byte) error   { return errors.New("io down") }
func (brokenStore) Delete(context.Context, string) error        { return errors.New("io down") }

func TestStorageFailuresAreSwallowed(t *testing.T) {
	store := NewStore(storage.KeyApplicationData, brokenStore{}, zap.NewNop())

	assert.NotPanics(t, func() {
		store.Save(domain.ApplicationDraft{CurrentStep: 1})
		var loaded domain.ApplicationDraft
		assert.False(t, store.Load(&loaded))
		store.Clear()
	})
}

func TestSaveUnencodableDraft(t *testing.T) {
	store := NewStore(storage.KeyApplicationData, storage.NewMemoryStore(), zap.NewNop())

	assert.NotPanics(t, func() {
		store.Save(map[string]interface{}{"bad": func() {}})
	})
}
