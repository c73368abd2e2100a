// Package model contains domain entities shared between layers.
package model

import "time"

// Owner account tiers. Only premium and admin accounts are visible on the
// public explore surface.
const (
	RoleFree    = "free"
	RolePremium = "premium"
	RoleAdmin   = "admin"
)

// EventCarView is the analytics event type counted by the engagement
// aggregator. Other event types flow through the log but are ignored here.
const EventCarView = "car_view"

// Car is a user-submitted car record. Mutated by owner-facing CRUD elsewhere;
// the explore engine only reads it.
type Car struct {
	ID          string
	UserID      string // owner reference; full token identifier or bare subject id
	Make        string
	Model       string
	Year        int
	PowerHp     string // free text, e.g. "326 hp" or "unknown"
	Images      []string
	IsPublished bool
	IsFeatured  bool
	CreatedAt   time.Time // owner-facing creation field; may be zero
	AddedAt     time.Time // record creation timestamp, always set by the store
}

// Owner is the user account a car belongs to.
type Owner struct {
	ID              string
	TokenIdentifier string // composite "issuer|subject" identity
	Name            string
	Username        string
	PictureURL      string
	Role            string
}

// AnalyticsEvent is one entry of the append-only interaction log.
type AnalyticsEvent struct {
	ID        string
	Type      string
	CarID     string // empty when the event is not car-scoped
	CreatedAt time.Time
}

// Candidate pairs a publicly visible car with its resolved owner.
type Candidate struct {
	Car   Car
	Owner Owner
}

// ScoredCar is a ranked feed entry. Derived per request, never persisted.
type ScoredCar struct {
	Car        Car
	Owner      Owner
	Score      float64
	IsTrending bool
}

// TrendingCar is a trending leaderboard entry.
type TrendingCar struct {
	Car       Car
	Owner     Owner
	ViewCount int
}
