package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CandidateQuery selects users eligible to appear in a swipe feed.
type CandidateQuery struct {
	Exclude     []primitive.ObjectID
	Genders     []string
	Preferences []string
}

// Matches evaluates the query against a single user. Stores that cannot
// push the filter down use it directly.
func (q CandidateQuery) Matches(u *User) bool {
	for _, id := range q.Exclude {
		if id == u.ID {
			return false
		}
	}
	return contains(q.Genders, u.Gender) && contains(q.Preferences, u.GenderPreferences)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
