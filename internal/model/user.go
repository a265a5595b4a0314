// Package model defines the data structures used throughout the application.
package model

// User represents a tracked account and the exercises logged against it.
//
// The exercises live inside the user document itself rather than in a
// separate collection. An exercise has no identity of its own — it belongs
// to exactly one user, is never moved, and is only ever appended. Keeping
// the array embedded means a single document read returns the full log and
// a single $push appends to it.
//
// The bson tags map fields to the stored document; the json tags are used
// when a full user is serialized (API responses mostly use per-operation
// projection structs instead, see internal/handler).
type User struct {
	ID        string     `bson:"_id,omitempty" json:"id"`
	Username  string     `bson:"username"      json:"username"`
	Exercises []Exercise `bson:"exercises"     json:"exercises"`
}

// Exercise is a single logged activity: what was done, for how many
// minutes, and on which calendar day.
//
// Date is stored as text in the form "Mon May 01 2023". Dates are
// date-only; no time-of-day component exists anywhere in the contract.
type Exercise struct {
	Description string `bson:"description" json:"description"`
	Duration    int    `bson:"duration"    json:"duration"`
	Date        string `bson:"date"        json:"date"`
}
