package pedometer

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

const authorizationKey = "pedometerAuthorization"

// AuthorizationStatus mirrors the motion permission state reported by the device.
type AuthorizationStatus string

const (
	StatusAuthorized    AuthorizationStatus = "authorized"
	StatusNotDetermined AuthorizationStatus = "not_determined"
	StatusDenied        AuthorizationStatus = "denied"
	StatusRestricted    AuthorizationStatus = "restricted"
	StatusUnavailable   AuthorizationStatus = "unavailable"
)

func (s AuthorizationStatus) String() string {
	return string(s)
}

func (s AuthorizationStatus) IsValid() bool {
	switch s {
	case StatusAuthorized,
		StatusNotDetermined,
		StatusDenied,
		StatusRestricted,
		StatusUnavailable:
		return true
	default:
		return false
	}
}

type statusStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type AuthorizationTracker struct {
	store statusStore
}

func NewAuthorizationTracker(store statusStore) *AuthorizationTracker {
	return &AuthorizationTracker{
		store: store,
	}
}

// Status never fails: an unset, unreadable or unknown value reads as not determined.
func (a *AuthorizationTracker) Status(ctx context.Context) AuthorizationStatus {
	raw, found, err := a.store.Get(ctx, authorizationKey)
	if err != nil {
		log.Warnf("pedometer authorization, read status: %s", err)
		return StatusNotDetermined
	}
	if !found {
		return StatusNotDetermined
	}

	status := AuthorizationStatus(raw)
	if !status.IsValid() {
		log.Warnf("pedometer authorization, unknown stored status [%s]", raw)
		return StatusNotDetermined
	}
	return status
}

func (a *AuthorizationTracker) SetStatus(ctx context.Context, status AuthorizationStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid authorization status: %s", status)
	}
	if err := a.store.Set(ctx, authorizationKey, status.String()); err != nil {
		return fmt.Errorf("store authorization status: %w", err)
	}
	log.Debugf("pedometer authorization status set to [%s]", status)
	return nil
}
