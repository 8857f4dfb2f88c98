package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
		custom  bool
	}{
		{in: "tops"},
		{in: "bottoms"},
		{in: "outerwear"},
		{in: "other"},
		{in: "custom-abc", custom: true},
		{in: "custom-", wantErr: true},
		{in: "shoes", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			c, err := ParseCategory(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCategory)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.in, c.String())
			assert.Equal(t, tc.custom, c.IsCustom())
		})
	}
}

func TestCategory_SectionID(t *testing.T) {
	c := CustomCategory("s1")
	id, ok := c.SectionID()
	assert.True(t, ok)
	assert.Equal(t, "s1", id)
	_, ok = c.Fixed()
	assert.False(t, ok)

	f, ok := FixedCategory(Outerwear).Fixed()
	assert.True(t, ok)
	assert.Equal(t, Outerwear, f)
}

func TestCategory_JSON(t *testing.T) {
	it := Item{ID: "1", Category: CustomCategory("x")}
	b, err := json.Marshal(it)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"category":"custom-x"`)
	// пустая исходная категория не сериализуется
	assert.NotContains(t, string(b), "originalCategory")

	var back Item
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, it.Category, back.Category)

	assert.Error(t, json.Unmarshal([]byte(`{"category":"hats"}`), &back))
}

func TestCategory_Scan(t *testing.T) {
	var c Category
	require.NoError(t, c.Scan("bottoms"))
	assert.Equal(t, FixedCategory(Bottoms), c)
	require.NoError(t, c.Scan([]byte("custom-9")))
	assert.Equal(t, CustomCategory("9"), c)
	require.NoError(t, c.Scan(nil))
	assert.True(t, c.IsZero())
	assert.Error(t, c.Scan(42))

	v, err := Category{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestItem_TrashRoundTrip(t *testing.T) {
	it := Item{ID: "a", ImageID: "img", Category: FixedCategory(Tops), Favorite: true}
	e := it.ToTrash(it.DateAdded)
	assert.True(t, e.Deleted)
	assert.NotNil(t, e.DeletedDate)
	assert.Equal(t, FixedCategory(Tops), e.RestoreCategory())

	back := e.Restore(FixedCategory(Other))
	assert.False(t, back.Deleted)
	assert.Nil(t, back.DeletedDate)
	assert.True(t, back.OriginalCategory.IsZero())
	assert.Equal(t, FixedCategory(Other), back.Category)
	assert.True(t, back.Favorite)
}
