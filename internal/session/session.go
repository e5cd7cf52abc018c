// Package session stores estimator sessions between HTTP requests.
//
// A session holds only the TripOptions of one estimator; the derived values
// are recomputed by rehydrating an estimator.Estimator on every request.
// Sessions expire after a period of inactivity and are never persisted
// beyond that.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/indianhorizon/tripplanner/internal/estimator"
)

// Session is the stored state of one estimator session.
type Session struct {
	ID        uuid.UUID             `json:"id"`
	Options   estimator.TripOptions `json:"options"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// Store keeps sessions for a limited time.
// Get, Update and Delete return domain.ErrNotFound for unknown or expired IDs.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id uuid.UUID) (Session, error)

	// Update loads the session, passes it to fn and stores the result.
	// Concurrent updates to the same session are serialized, so fn always
	// sees the latest stored state. If fn returns an error nothing is
	// written and the error is returned unchanged.
	Update(ctx context.Context, id uuid.UUID, fn func(*Session) error) (Session, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
