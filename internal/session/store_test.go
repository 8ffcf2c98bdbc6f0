package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onboarding-chatbot/internal/chatbot"
	"onboarding-chatbot/internal/common/database"
	"onboarding-chatbot/internal/profile"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := database.NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	return NewRedisStore(client, "chatbot:session:", 2*time.Hour), mr
}

func sampleState() *chatbot.State {
	state := chatbot.NewState()
	state.ConversationState = chatbot.StateInterviewingUser
	state.CurrentQuestion = chatbot.StepBusinessType
	state.Profile.SetField(profile.FieldName, "Acme Bakery", profile.ConfidenceHigh, profile.SourceUserProvided)
	state.Patches = []profile.ConfirmationPatch{
		{Field: profile.FieldName, OldValue: "Acme", NewValue: "Acme Bakery", Confirmed: true},
	}
	return state
}

func TestRedisStore_SaveAndLoad(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", sampleState()))

	loaded, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)

	assert.Equal(t, chatbot.StateInterviewingUser, loaded.ConversationState)
	assert.Equal(t, chatbot.StepBusinessType, loaded.CurrentQuestion)
	assert.Equal(t, "Acme Bakery", loaded.Profile.Name)
	assert.Equal(t, profile.SourceUserProvided, loaded.Profile.Sources[profile.FieldName])
	require.Len(t, loaded.Patches, 1)
	assert.Equal(t, "Acme Bakery", loaded.Patches[0].NewValue)
}

func TestRedisStore_LoadMissingReturnsNotFound(t *testing.T) {
	store, _ := newTestStore(t)

	state, err := store.Load(context.Background(), "nope")

	assert.Nil(t, state)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_KeysUsePrefix(t *testing.T) {
	store, mr := newTestStore(t)

	require.NoError(t, store.Save(context.Background(), "sess-1", sampleState()))

	assert.True(t, mr.Exists("chatbot:session:sess-1"))
}

func TestRedisStore_SnapshotsExpire(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", sampleState()))

	ttl := mr.TTL("chatbot:session:sess-1")
	assert.Equal(t, 2*time.Hour, ttl)

	mr.FastForward(3 * time.Hour)

	_, err := store.Load(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Delete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", sampleState()))
	require.NoError(t, store.Delete(ctx, "sess-1"))

	_, err := store.Load(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent session is not an error.
	assert.NoError(t, store.Delete(ctx, "sess-1"))
}
