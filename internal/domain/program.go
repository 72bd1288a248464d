package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Difficulty levels a trainer can assign to a program.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Program is a multi-day workout program authored by a trainer. Sections are
// embedded and ordered; order is significant and preserved.
type Program struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID   primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Focuses     []FocusTag         `bson:"focuses" json:"focuses"`
	Difficulty  Difficulty         `bson:"difficulty" json:"difficulty"`
	// Minutes per session.
	SessionLength int       `bson:"sessionLength" json:"sessionLength"`
	Sections      []Section `bson:"sections" json:"sections"`
	IsDraft       bool      `bson:"isDraft" json:"isDraft"`
	IsDeleted     bool      `bson:"isDeleted" json:"isDeleted"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// WeeklyFrequency is derived at read time: the count of sections that are
// actual working days (not rest days, at least one exercise). It is never
// stored, so it cannot drift from the authored content.
func (p *Program) WeeklyFrequency() int {
	n := 0
	for _, s := range p.Sections {
		if s.IsWorkingDay() {
			n++
		}
	}
	return n
}

// SectionForWeekday returns the working-day section authored for the given
// lowercase weekday name, or nil if the program has none for that day.
func (p *Program) SectionForWeekday(dayName string) *Section {
	for i := range p.Sections {
		s := &p.Sections[i]
		if s.IsWorkingDay() && s.WeekdayName() == dayName {
			return s
		}
	}
	return nil
}

// Section is one authored weekday-slot within a program: either a rest day or
// an ordered sequence of exercises.
type Section struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// Format is the calendar weekday this section is authored for
	// (e.g. "Monday"). Sections are weekday slots, not day-1..day-7 offsets.
	Format    string     `bson:"format" json:"format"`
	Type      string     `bson:"type,omitempty" json:"type,omitempty"` // e.g. "Upper Body"
	IsRestDay bool       `bson:"isRestDay" json:"isRestDay"`
	Exercises []Exercise `bson:"exercises" json:"exercises"`
	Order     int        `bson:"order" json:"order"`
}

// WeekdayName returns the section's format normalized to a lowercase weekday
// name for matching against calendar dates.
func (s *Section) WeekdayName() string {
	return NormalizeWeekday(s.Format)
}

// IsWorkingDay reports whether the section contributes workouts to a schedule:
// not a rest day and at least one exercise.
func (s *Section) IsWorkingDay() bool {
	return !s.IsRestDay && len(s.Exercises) > 0
}

// ExerciseCount returns the number of exercises in the section.
func (s *Section) ExerciseCount() int {
	return len(s.Exercises)
}

// Exercise belongs to a section and carries an ordered sequence of sets.
type Exercise struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Order int                `bson:"order" json:"order"`
	Sets  []ExerciseSet      `bson:"sets" json:"sets"`
}

// ExerciseSet is a single prescribed set: rep-based or time-based, with rest.
type ExerciseSet struct {
	SetNumber int  `bson:"setNumber" json:"set_number"`
	Reps      *int `bson:"reps,omitempty" json:"reps"`
	// Time is the working duration in seconds for time-based sets.
	Time *int `bson:"time,omitempty" json:"time"`
	// Rest is the rest duration in seconds after the set.
	Rest int `bson:"rest" json:"rest"`
}
