package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday(" Friday ")
	assert.NoError(t, err)
	assert.Equal(t, Friday, d)
	assert.Equal(t, 4, d.Index())

	_, err = ParseWeekday("someday")
	assert.Error(t, err)
}

func TestWeeklyDayPlan_Dedup(t *testing.T) {
	p := WeeklyDayPlan{Day: Monday, Items: []string{"a", "b", "a", "c", "b"}}
	p.Dedup()
	assert.Equal(t, []string{"a", "b", "c"}, p.Items)
	assert.True(t, p.Contains("c"))
	assert.False(t, p.Contains("z"))
}
