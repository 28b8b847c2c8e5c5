// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Subscription is a durable opt-in record driving recurring report runs.
// The (UserEmail, Product) pair is unique in the registry.
type Subscription struct {
	// UserEmail is the recipient of recurring reports.
	UserEmail string `json:"user_email" yaml:"user_email"`

	// Product is the tracked product name.
	Product string `json:"product" yaml:"product"`

	// CreatedAt is the UTC time the subscription was created.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// LastRunAt is the UTC time of the most recent completed run.
	// Zero if no run has completed yet.
	LastRunAt time.Time `json:"last_run_at,omitempty" yaml:"last_run_at,omitempty"`
}
