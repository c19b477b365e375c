package sqldata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqldata"
)

func TestEnumType(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		et, err := sqldata.NewEnumType("status", "active", "disabled")
		require.NoError(t, err)
		assert.Equal(t, "status", et.Name())
		assert.Equal(t, []string{"active", "disabled"}, et.Values())
		assert.True(t, et.Contains("active"))
		assert.False(t, et.Contains("deleted"))
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, err := sqldata.NewEnumType("", "a")
		assert.EqualError(t, err, "sqldata: enum type name cannot be empty")
	})

	t.Run("NoValues", func(t *testing.T) {
		_, err := sqldata.NewEnumType("status")
		assert.EqualError(t, err, `sqldata: enum "status" has no values`)
	})

	t.Run("DuplicateValue", func(t *testing.T) {
		_, err := sqldata.NewEnumType("status", "a", "b", "a")
		assert.EqualError(t, err, `sqldata: enum "status" has duplicate value "a"`)
	})

	t.Run("EmptyValue", func(t *testing.T) {
		_, err := sqldata.NewEnumType("status", "a", "")
		assert.EqualError(t, err, `sqldata: enum "status" has an empty value`)
	})
}

func TestEnum(t *testing.T) {
	status := sqldata.MustEnumType("status", "active", "disabled")

	t.Run("Value", func(t *testing.T) {
		e, err := status.Value("active")
		require.NoError(t, err)
		assert.Equal(t, "active", e.String())

		v, err := e.Value()
		require.NoError(t, err)
		assert.Equal(t, "active", v)
	})

	t.Run("Restricted", func(t *testing.T) {
		_, err := status.Value("deleted")
		require.Error(t, err)
		assert.True(t, sqldata.IsValidationError(err))
		assert.EqualError(t, err, `sqldata: validator failed for "status": value "deleted" is not one of [active, disabled]`)
	})

	t.Run("Scan", func(t *testing.T) {
		e := status.New()
		require.NoError(t, e.Scan("disabled"))
		assert.Equal(t, "disabled", e.String())

		err := e.Scan("deleted")
		require.Error(t, err)
		assert.True(t, sqldata.IsValidationError(err))

		require.NoError(t, e.Scan([]byte("active")))
		assert.Equal(t, "active", e.String())

		require.NoError(t, e.Scan(nil))
		assert.True(t, e.IsZero())
	})

	t.Run("UnboundValue", func(t *testing.T) {
		var e sqldata.Enum
		_, err := e.Value()
		require.Error(t, err)
		err = e.Scan("anything")
		require.Error(t, err)
	})

	t.Run("Type", func(t *testing.T) {
		e := status.MustValue("active")
		assert.Same(t, status, e.Type())
	})

	t.Run("MarshalText", func(t *testing.T) {
		e := status.MustValue("active")
		b, err := e.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, "active", string(b))
	})
}
