package handler_test

import (
	"fmt"

	"github.com/indianhorizon/tripplanner/internal/domain"
)

// wrapService wraps err the way the service layer does.
func wrapService(err error) error {
	return fmt.Errorf("service.Test.Op: %w", err)
}

// wrapValidation builds a service-layer validation error with msg.
func wrapValidation(msg string) error {
	return wrapService(fmt.Errorf("%w: %s", domain.ErrValidation, msg))
}
