package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreMissSemantics(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "absent")
	assert.ErrorIs(t, err, ErrMiss)

	assert.NoError(t, store.Set(ctx, "k", []byte(`{"1":[2]}`)))
	raw, err := store.Get(ctx, "k")
	assert.NoError(t, err)
	assert.JSONEq(t, `{"1":[2]}`, string(raw))

	assert.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	// deleting an absent key is not an error
	assert.NoError(t, store.Delete(ctx, "k"))
}
