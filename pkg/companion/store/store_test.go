package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := NewCacheStore()

	_, found, err := st.Load(ctx, KeyAffectionProfile)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, st.Save(ctx, KeyAffectionProfile, []byte(`{"points":5}`)))

	doc, found, err := st.Load(ctx, KeyAffectionProfile)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"points":5}`, string(doc))

	require.NoError(t, st.Delete(ctx, KeyAffectionProfile))
	_, found, err = st.Load(ctx, KeyAffectionProfile)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheStoreCopiesValue(t *testing.T) {
	ctx := context.Background()
	st := NewCacheStore()

	original := []byte("first")
	require.NoError(t, st.Save(ctx, "k", original))
	original[0] = 'x'

	doc, _, err := st.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "first", string(doc))

	// Mutating the loaded copy must not leak back into the store.
	doc[0] = 'y'
	doc2, _, err := st.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "first", string(doc2))
}
