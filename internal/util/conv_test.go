package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"New Employee Onboarding 2026": "new-employee-onboarding-2026",
		"  Leadership   Basics  ":      "leadership-basics",
		"Ops_Handbook":                 "ops-handbook",
		"销售培训":                         "",
		"Q4 Review!":                   "q4-review",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestNewEntityIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewEntityID()
		assert.NotEmpty(t, id)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestSameCalendarDate(t *testing.T) {
	a := time.Date(2024, 1, 10, 1, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 10, 23, 59, 0, 0, time.UTC)
	c := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameCalendarDate(a, b))
	assert.False(t, SameCalendarDate(a, c))
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), TruncateToDate(b))
}
