package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"

	"github.com/aretw0/infobot/pkg/adapters/memory"
	"github.com/aretw0/infobot/pkg/domain"
	"github.com/aretw0/infobot/pkg/persistence/middleware"
	"github.com/aretw0/infobot/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func sampleSession() *domain.Session {
	s := domain.NewSession("enc-session")
	s.FocusedEntity = "Alpha College"
	s.PendingMode = domain.ModeAwaitingLocation
	s.Append("my email is jane@example.com", "I'm sorry, I didn't understand that. Please ask again.")
	return s
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)
	secure := mw(underlying)
	ctx := context.Background()

	original := sampleSession()
	require.NoError(t, secure.Save(ctx, original.ID, original))

	stored, err := underlying.Load(ctx, original.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.Sealed)
	assert.Empty(t, stored.FocusedEntity, "focus must not leak into the envelope")
	assert.Empty(t, stored.Transcript, "transcript must not leak into the envelope")
	assert.Equal(t, original.ID, stored.ID)

	loaded, err := secure.Load(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha College", loaded.FocusedEntity)
	assert.Equal(t, domain.ModeAwaitingLocation, loaded.PendingMode)
	require.Len(t, loaded.Transcript, 1)
	assert.Empty(t, loaded.Sealed)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()
	oldKey, newKey := generateKey(t), generateKey(t)

	oldMW, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})
	require.NoError(t, err)
	require.NoError(t, oldMW(underlying).Save(ctx, "s", sampleSession()))

	rotated, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})
	require.NoError(t, err)
	loaded, err := rotated(underlying).Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "Alpha College", loaded.FocusedEntity)

	wrong, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: newKey})
	require.NoError(t, err)
	_, err = wrong(underlying).Load(ctx, "s")
	assert.Error(t, err)
}

func TestEncryptionMiddleware_RejectsPlainSession(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, underlying.Save(ctx, "plain", domain.NewSession("plain")))

	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)
	_, err = mw(underlying).Load(ctx, "plain")
	assert.ErrorIs(t, err, middleware.ErrNotSealed)
}

func TestEncryptionMiddleware_KeySize(t *testing.T) {
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short")})
	assert.Error(t, err)
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)
	ports.RunSessionStoreContract(t, mw(memory.NewStore()))
}
