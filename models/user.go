package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	PreferBoth   = "both"
)

// ValidGender reports whether g is an accepted gender.
func ValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale
}

// ValidPreference reports whether p is an accepted gender preference.
func ValidPreference(p string) bool {
	return ValidGender(p) || p == PreferBoth
}

type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	Password          string             `bson:"password" json:"-"`
	Age               int                `bson:"age" json:"age"`
	Gender            string             `bson:"gender" json:"gender"`
	GenderPreferences string             `bson:"genderPreferences" json:"genderPreferences"`
	Bio               string             `bson:"bio" json:"bio"`
	Image             string             `bson:"image" json:"image"`

	// Relationship sets are derived from the swipe and match collections,
	// never persisted on the user document.
	Likes    []primitive.ObjectID `bson:"-" json:"likes"`
	Dislikes []primitive.ObjectID `bson:"-" json:"dislikes"`
	Matches  []primitive.ObjectID `bson:"-" json:"matches"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProfileUpdate holds the user-editable fields. Nil means unchanged.
type ProfileUpdate struct {
	Name              *string
	Bio               *string
	Age               *int
	Gender            *string
	GenderPreferences *string
	Image             *string
}

// Empty reports whether the update changes nothing.
func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.Bio == nil && p.Age == nil &&
		p.Gender == nil && p.GenderPreferences == nil && p.Image == nil
}

// Apply copies the set fields onto u.
func (p ProfileUpdate) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.GenderPreferences != nil {
		u.GenderPreferences = *p.GenderPreferences
	}
	if p.Image != nil {
		u.Image = *p.Image
	}
}

// MatchProfile is the reduced projection of a matched user.
type MatchProfile struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Image string             `bson:"image" json:"image"`
}
