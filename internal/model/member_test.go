package model_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konnethq/konnet/internal/model"
)

func TestUUIDArrayScan(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	t.Run("braced list", func(t *testing.T) {
		var arr model.UUIDArray
		err := arr.Scan("{" + a.String() + "," + b.String() + "}")
		require.NoError(t, err)
		assert.Equal(t, model.UUIDArray{a, b}, arr)
	})

	t.Run("byte slice input", func(t *testing.T) {
		var arr model.UUIDArray
		err := arr.Scan([]byte("{" + a.String() + "}"))
		require.NoError(t, err)
		assert.Equal(t, model.UUIDArray{a}, arr)
	})

	t.Run("empty array", func(t *testing.T) {
		var arr model.UUIDArray
		err := arr.Scan("{}")
		require.NoError(t, err)
		assert.Empty(t, arr)
	})

	t.Run("nil value", func(t *testing.T) {
		var arr model.UUIDArray
		err := arr.Scan(nil)
		require.NoError(t, err)
		assert.Empty(t, arr)
	})

	t.Run("bad element", func(t *testing.T) {
		var arr model.UUIDArray
		err := arr.Scan("{not-a-uuid}")
		assert.Error(t, err)
	})
}

func TestUUIDArrayValue(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	v, err := model.UUIDArray{a, b}.Value()
	require.NoError(t, err)
	assert.Equal(t, "{"+a.String()+","+b.String()+"}", v)

	v, err = model.UUIDArray{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)
}

func TestUUIDArrayRoundtrip(t *testing.T) {
	orig := model.UUIDArray{uuid.New(), uuid.New(), uuid.New()}

	v, err := orig.Value()
	require.NoError(t, err)

	var back model.UUIDArray
	require.NoError(t, back.Scan(v))
	assert.Equal(t, orig, back)
}

func TestUUIDArraySetOps(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	set := model.UUIDArray{a}
	assert.True(t, set.Contains(a))
	assert.False(t, set.Contains(b))

	set = set.Add(b)
	assert.True(t, set.Contains(b))
	assert.Len(t, set, 2)

	// Adding an existing element is a no-op.
	set = set.Add(a)
	assert.Len(t, set, 2)

	set = set.Remove(a)
	assert.False(t, set.Contains(a))
	assert.True(t, set.Contains(b))

	// Removing an absent element is a no-op.
	set = set.Remove(a)
	assert.Len(t, set, 1)
}
