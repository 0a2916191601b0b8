package identifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsObjectID(t *testing.T) {
	assert.True(t, IsObjectID("507f1f77bcf86cd799439011"))
	assert.True(t, IsObjectID("507F1F77BCF86CD799439011"))
	assert.False(t, IsObjectID("Beverages"))
	assert.False(t, IsObjectID("507f1f77bcf86cd79943901"))   // 23 chars
	assert.False(t, IsObjectID("507f1f77bcf86cd7994390111")) // 25 chars
	assert.False(t, IsObjectID("507f1f77bcf86cd79943901z"))
	assert.False(t, IsObjectID(""))
}

func TestNew(t *testing.T) {
	a, b := New(), New()
	assert.Len(t, a, 24)
	assert.True(t, IsObjectID(a))
	assert.NotEqual(t, a, b)
}

func TestResolve(t *testing.T) {
	var calledWith string
	byID := func(_ context.Context, key string) (string, error) {
		calledWith = "id:" + key
		return "by-id", nil
	}
	byName := func(_ context.Context, key string) (string, error) {
		calledWith = "name:" + key
		return "by-name", nil
	}

	got, err := Resolve(context.Background(), "507F1F77BCF86CD799439011", byID, byName)
	require.NoError(t, err)
	assert.Equal(t, "by-id", got)
	assert.Equal(t, "id:507f1f77bcf86cd799439011", calledWith)

	got, err = Resolve(context.Background(), "Beverages", byID, byName)
	require.NoError(t, err)
	assert.Equal(t, "by-name", got)
	assert.Equal(t, "name:Beverages", calledWith)
}

func TestResolvePropagatesErrors(t *testing.T) {
	notFound := errors.New("not found")
	byID := func(context.Context, string) (int, error) { return 0, notFound }
	byName := func(context.Context, string) (int, error) { return 0, notFound }

	_, err := Resolve(context.Background(), "507f1f77bcf86cd799439011", byID, byName)
	assert.ErrorIs(t, err, notFound)
}
