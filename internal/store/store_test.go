package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAssignsDenseOrdinals(t *testing.T) {
	s := New()

	assert.Equal(t, 0, s.Append("b", 2.1))
	assert.Equal(t, 1, s.Append("b", 2.2))
	assert.Equal(t, 2, s.Append("b", 2.3))
	assert.Equal(t, 0, s.Append("a", "one"))

	assert.Equal(t, 3, s.Count("b"))
	assert.Equal(t, []any{2.1, 2.2, 2.3}, s.Values("b"))
}

func TestUnseenNameReadsAsEmpty(t *testing.T) {
	s := New()

	assert.Equal(t, 0, s.Count("nope"))
	assert.Nil(t, s.Values("nope"))
	assert.Nil(t, s.Items("nope"))
	assert.Nil(t, s.UIDs("nope"))
}

func TestOverwriteResetsValuesAndUIDs(t *testing.T) {
	s := New()
	s.Append("a", 1)
	s.Append("a", 2)
	require.NoError(t, s.AssignUID("a", "first", 0))

	s.Overwrite("a", 42)

	assert.Equal(t, 1, s.Count("a"))
	assert.Equal(t, []any{42}, s.Values("a"))
	assert.False(t, s.HasUID("a", "first"))
}

func TestAssignUIDDefaultsToLastOrdinal(t *testing.T) {
	s := New()
	s.Append("y", 1)
	s.Append("y", 2)
	s.Append("y", 3)

	require.NoError(t, s.AssignUID("y", "special", LastOrdinal))

	value, err := s.GetByUID("y", "special")
	require.NoError(t, err)
	assert.Equal(t, 3, value)

	require.NoError(t, s.AssignUID("y", "second", 1))
	value, err = s.GetByUID("y", "second")
	require.NoError(t, err)
	assert.Equal(t, 2, value)
}

func TestAssignUIDRejectsDuplicates(t *testing.T) {
	s := New()
	s.Append("a", "one")
	s.Append("a", "two")
	require.NoError(t, s.AssignUID("a", "myUID", 1))

	// Rebinding fails even against the same ordinal.
	err := s.AssignUID("a", "myUID", 1)
	var dup *DuplicateUIDError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "a", dup.Name)
	assert.Equal(t, "myUID", dup.UID)

	err = s.AssignUID("a", "myUID", 0)
	require.ErrorAs(t, err, &dup)
}

func TestAssignUIDRejectsOutOfRangeOrdinal(t *testing.T) {
	s := New()
	s.Append("a", "one")

	require.Error(t, s.AssignUID("a", "uid", 5))
	require.Error(t, s.AssignUID("empty", "uid", LastOrdinal))
}

func TestGetByUIDUnknown(t *testing.T) {
	s := New()
	s.Append("a", "one")

	var unknown *UnknownUIDError
	_, err := s.GetByUID("a", "missing")
	require.ErrorAs(t, err, &unknown)

	_, err = s.GetByUID("never-written", "missing")
	require.ErrorAs(t, err, &unknown)
}

func TestItemsPairValuesWithUIDs(t *testing.T) {
	s := New()
	s.Append("c", "test1")
	s.Append("c", "test2")
	s.Append("c", "test3")
	require.NoError(t, s.AssignUID("c", "uid1", 0))
	require.NoError(t, s.AssignUID("c", "uid3", 2))

	items := s.Items("c")
	require.Len(t, items, 3)
	assert.Equal(t, Item{Ordinal: 0, UID: "uid1", Value: "test1"}, items[0])
	assert.Equal(t, Item{Ordinal: 1, UID: "", Value: "test2"}, items[1])
	assert.Equal(t, Item{Ordinal: 2, UID: "uid3", Value: "test3"}, items[2])

	assert.Equal(t, map[string]int{"uid1": 0, "uid3": 2}, s.UIDs("c"))
}

func TestValuesReturnsCopy(t *testing.T) {
	s := New()
	s.Append("a", 1)

	values := s.Values("a")
	values[0] = 99

	assert.Equal(t, []any{1}, s.Values("a"))
}
