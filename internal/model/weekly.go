package model

import (
	"fmt"
	"strings"
)

// Weekday names a day of the weekly outfit rotation.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists the rotation in calendar order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday accepts a day name in any letter case.
func ParseWeekday(s string) (Weekday, error) {
	d := Weekday(strings.ToLower(strings.TrimSpace(s)))
	if d.Index() < 0 {
		return "", fmt.Errorf("invalid weekday: %q", s)
	}
	return d, nil
}

// Index returns the position of d in Weekdays, or -1.
func (d Weekday) Index() int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

// WeeklyDayPlan is the outfit planned for one weekday.
type WeeklyDayPlan struct {
	Day   Weekday  `gorm:"primaryKey" json:"day"`
	Type  string   `json:"type"`
	Items []string `gorm:"serializer:json;not null" json:"items"`
	Notes string   `json:"notes"`
}

func (WeeklyDayPlan) TableName() string { return "weekly_plan" }

// Contains reports whether itemID is already planned for the day.
func (p WeeklyDayPlan) Contains(itemID string) bool {
	for _, id := range p.Items {
		if id == itemID {
			return true
		}
	}
	return false
}

// Dedup drops repeated item ids keeping the first occurrence.
func (p *WeeklyDayPlan) Dedup() {
	seen := make(map[string]struct{}, len(p.Items))
	out := make([]string, 0, len(p.Items))
	for _, id := range p.Items {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	p.Items = out
}
