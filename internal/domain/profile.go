package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FocusTag is one of a fixed set of training-goal categories, used both for
// profile preferences and program classification.
type FocusTag string

const (
	FocusStrength    FocusTag = "strength"
	FocusCardio      FocusTag = "cardio"
	FocusFlexibility FocusTag = "flexibility"
	FocusBalance     FocusTag = "balance"
)

// AllFocusTags lists every valid focus tag. The enumeration is closed.
var AllFocusTags = []FocusTag{FocusStrength, FocusCardio, FocusFlexibility, FocusBalance}

// IsValidFocusTag reports whether tag is a member of the closed enumeration.
func IsValidFocusTag(tag FocusTag) bool {
	for _, t := range AllFocusTags {
		if t == tag {
			return true
		}
	}
	return false
}

// IntersectFocuses returns the tags present in both sets, in the order they
// appear in a. Matching is plain set intersection, not subset/superset.
func IntersectFocuses(a, b []FocusTag) []FocusTag {
	var common []FocusTag
	for _, t := range a {
		for _, u := range b {
			if t == u {
				common = append(common, t)
				break
			}
		}
	}
	return common
}

// ExperienceLevel values accepted for a fitness profile.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// TrainingLocation values accepted for a fitness profile.
type TrainingLocation string

const (
	LocationHome TrainingLocation = "home"
	LocationGym  TrainingLocation = "gym"
)

// FitnessProfile holds a user's fitness preferences. One per user, created at
// profile completion and mutated via edit; never deleted.
type FitnessProfile struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	Age              *int               `bson:"age,omitempty" json:"age,omitempty"`
	ExperienceLevel  ExperienceLevel    `bson:"experienceLevel" json:"experienceLevel"`
	TrainingLocation TrainingLocation   `bson:"trainingLocation" json:"trainingLocation"`
	Focuses          []FocusTag         `bson:"focuses" json:"focuses"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasFocuses reports whether the profile carries at least one focus tag.
// A profile with an empty focus set is treated as incomplete.
func (p *FitnessProfile) HasFocuses() bool {
	return p != nil && len(p.Focuses) > 0
}

// TrainerProfile is the extended public profile for trainers.
type TrainerProfile struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"userId" json:"userId"`
	Bio               string             `bson:"bio,omitempty" json:"bio,omitempty"`
	YearsOfExperience int                `bson:"yearsOfExperience" json:"yearsOfExperience"`

	// Specialties (multiple selectable)
	SpecialtyStrength       bool `bson:"specialtyStrength" json:"specialtyStrength"`
	SpecialtyCardio         bool `bson:"specialtyCardio" json:"specialtyCardio"`
	SpecialtyFlexibility    bool `bson:"specialtyFlexibility" json:"specialtyFlexibility"`
	SpecialtySports         bool `bson:"specialtySports" json:"specialtySports"`
	SpecialtyRehabilitation bool `bson:"specialtyRehabilitation" json:"specialtyRehabilitation"`

	Certifications string    `bson:"certifications,omitempty" json:"certifications,omitempty"` // Comma-separated
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}
