package sqldata_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqldata"
)

func TestNewUUID(t *testing.T) {
	a, b := sqldata.NewUUID(), sqldata.NewUUID()
	assert.NotEqual(t, a, b)
	assert.Equal(t, uuid.Version(4), a.Version())
}

func TestNewSortableUUID(t *testing.T) {
	a, b := sqldata.NewSortableUUID(), sqldata.NewSortableUUID()
	assert.Equal(t, uuid.Version(7), a.Version())
	// Version 7 identifiers order by creation time.
	assert.Less(t, a.String(), b.String())
}

func TestBinaryUUID(t *testing.T) {
	t.Run("Value", func(t *testing.T) {
		u := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
		b := sqldata.BinaryUUID(u)
		v, err := b.Value()
		require.NoError(t, err)
		assert.Len(t, v, 16)
	})

	t.Run("ZeroIsNull", func(t *testing.T) {
		var b sqldata.BinaryUUID
		v, err := b.Value()
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("ScanBinary", func(t *testing.T) {
		u := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
		var b sqldata.BinaryUUID
		require.NoError(t, b.Scan(u[:]))
		assert.Equal(t, u, b.UUID())
	})

	t.Run("ScanText", func(t *testing.T) {
		var b sqldata.BinaryUUID
		require.NoError(t, b.Scan("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
		assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", b.String())

		require.NoError(t, b.Scan([]byte("6ba7b810-9dad-11d1-80b4-00c04fd430c8")))
		assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", b.String())
	})

	t.Run("ScanNull", func(t *testing.T) {
		b, err := sqldata.ParseBinaryUUID("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
		require.NoError(t, err)
		require.NoError(t, b.Scan(nil))
		assert.True(t, b.IsZero())
	})

	t.Run("ParseError", func(t *testing.T) {
		_, err := sqldata.ParseBinaryUUID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, sqldata.IsParse(err))
	})

	t.Run("Text", func(t *testing.T) {
		b, err := sqldata.ParseBinaryUUID("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
		require.NoError(t, err)
		txt, err := b.MarshalText()
		require.NoError(t, err)
		var back sqldata.BinaryUUID
		require.NoError(t, back.UnmarshalText(txt))
		assert.Equal(t, b, back)
	})
}
