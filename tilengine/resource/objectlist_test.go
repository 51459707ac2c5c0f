package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-tilengine/tilengine/errcode"
)

func TestObjectList(t *testing.T) {
	ol, err := NewObjectList()
	require.NoError(t, err)
	defer ol.Delete()

	require.NoError(t, ol.AddTileObject(1, 5, FlagFlipX, 10, 20))
	require.NoError(t, ol.Add(Object{ID: 2, GID: 6, X: 30, Y: 40, Name: "door"}))
	assert.Equal(t, 2, ol.Len())

	obj, err := ol.Object(0)
	require.NoError(t, err)
	assert.True(t, obj.Visible)
	assert.Equal(t, FlagFlipX, obj.Flags)

	_, err = ol.Object(2)
	assert.ErrorIs(t, err, errcode.ErrIdxPicture)

	var names []string
	for o, ok := ol.Next(); ok; o, ok = ol.Next() {
		names = append(names, o.Name)
	}
	assert.Equal(t, []string{"", "door"}, names)

	_, ok := ol.Next()
	assert.False(t, ok)
	ol.Rewind()
	_, ok = ol.Next()
	assert.True(t, ok)
}

func TestObjectListClone(t *testing.T) {
	ol, _ := NewObjectList()
	defer ol.Delete()
	require.NoError(t, ol.AddTileObject(1, 1, 0, 0, 0))

	clone, err := ol.Clone()
	require.NoError(t, err)
	defer clone.Delete()

	ol.Objects()[0].X = 50
	obj, _ := clone.Object(0)
	assert.Equal(t, 0, obj.X)
}

func TestObjectListDeleted(t *testing.T) {
	ol, _ := NewObjectList()
	require.NoError(t, ol.Delete())
	assert.ErrorIs(t, ol.Delete(), errcode.ErrRefList)
	assert.ErrorIs(t, ol.AddTileObject(1, 1, 0, 0, 0), errcode.ErrRefList)
}
