package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanningHorizonDays is the fixed window over which an active schedule is
// expanded for calendar display: 28 days / 4 weeks.
const PlanningHorizonDays = 28

// Lowercase weekday names accepted in rest-day configuration and used as
// section formats.
var weekdayNames = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

// NormalizeWeekday lowercases and trims a weekday name.
func NormalizeWeekday(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IsValidWeekday reports whether name (any case) is a weekday name.
func IsValidWeekday(name string) bool {
	return weekdayNames[NormalizeWeekday(name)]
}

// WeekdayName returns the lowercase weekday name for a date.
func WeekdayName(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

// Schedule is a user's active training schedule: one or more selected
// programs expanded over the planning horizon from StartDate. At most one
// active schedule exists per user; adding further programs extends the
// existing schedule instead of creating a parallel one.
type Schedule struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID   `bson:"userId" json:"userId"`
	ProgramIDs []primitive.ObjectID `bson:"programIds" json:"programIds"`
	StartDate  time.Time            `bson:"startDate" json:"startDate"`
	// RestDays holds lowercase weekday names designated as rest days for the
	// whole schedule. Per-generation configuration, not per-program.
	RestDays  []string  `bson:"restDays" json:"restDays"`
	IsActive  bool      `bson:"isActive" json:"isActive"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HasProgram reports whether the schedule references the given program.
func (s *Schedule) HasProgram(id primitive.ObjectID) bool {
	for _, pid := range s.ProgramIDs {
		if pid == id {
			return true
		}
	}
	return false
}

// IsRestDayName reports whether the lowercase weekday name is one of the
// schedule's designated rest days.
func (s *Schedule) IsRestDayName(dayName string) bool {
	for _, d := range s.RestDays {
		if d == dayName {
			return true
		}
	}
	return false
}

// CalendarEntry is one program's contribution to a calendar day.
type CalendarEntry struct {
	ProgramID     primitive.ObjectID `json:"program_id"`
	ProgramName   string             `json:"program_name"`
	SectionID     primitive.ObjectID `json:"section_id"`
	SectionType   string             `json:"section_type,omitempty"`
	ExerciseCount int                `json:"exercise_count"`
	Focuses       []FocusTag         `json:"focus"`
}

// CalendarEvent is one derived day-entry in a user's expanded schedule view.
// Ephemeral: recomputed on every read, never persisted.
type CalendarEvent struct {
	Date    time.Time       `json:"date"`
	DayName string          `json:"day_name"`
	// IsRestDay is true when the day is designated as rest or when no program
	// contributes a working section for its weekday.
	IsRestDay     bool            `json:"is_rest_day"`
	Entries       []CalendarEntry `json:"entries"`
	ExerciseCount int             `json:"exercise_count"`
}

// ExpandSchedule derives the calendar events for a schedule over the planning
// horizon. For each day: designated rest days carry no workout sections
// regardless of program content; otherwise every program whose weekday
// section is a working day contributes an entry, and the event's exercise
// count is the sum across entries. A day no program contributes to is an
// implicit rest day.
func ExpandSchedule(s *Schedule, programs []Program) []CalendarEvent {
	events := make([]CalendarEvent, 0, PlanningHorizonDays)
	for d := 0; d < PlanningHorizonDays; d++ {
		date := s.StartDate.AddDate(0, 0, d)
		events = append(events, buildCalendarEvent(s, programs, date))
	}
	return events
}

// CalendarEventForDate derives the single calendar event for one date.
func CalendarEventForDate(s *Schedule, programs []Program, date time.Time) CalendarEvent {
	return buildCalendarEvent(s, programs, date)
}

func buildCalendarEvent(s *Schedule, programs []Program, date time.Time) CalendarEvent {
	dayName := WeekdayName(date)
	event := CalendarEvent{
		Date:    date,
		DayName: dayName,
		Entries: []CalendarEntry{},
	}

	if s.IsRestDayName(dayName) {
		event.IsRestDay = true
		return event
	}

	for i := range programs {
		p := &programs[i]
		section := p.SectionForWeekday(dayName)
		if section == nil {
			continue
		}
		event.Entries = append(event.Entries, CalendarEntry{
			ProgramID:     p.ID,
			ProgramName:   p.Name,
			SectionID:     section.ID,
			SectionType:   section.Type,
			ExerciseCount: section.ExerciseCount(),
			Focuses:       p.Focuses,
		})
		event.ExerciseCount += section.ExerciseCount()
	}

	// Fallback: no program trains on this weekday.
	if len(event.Entries) == 0 {
		event.IsRestDay = true
	}
	return event
}
