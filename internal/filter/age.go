package filter

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// BirthDateStore looks up a child's stored birth date.
type BirthDateStore interface {
	GetBirthDate(ctx context.Context, childUsername string) (time.Time, error)
}

// AgeResolver computes a child's age in whole years from the stored birth
// date. Lookup failures degrade to "age unknown"; they never propagate.
type AgeResolver struct {
	store  BirthDateStore
	now    func() time.Time
	logger *zap.Logger
}

// NewAgeResolver creates an age resolver backed by store.
func NewAgeResolver(store BirthDateStore, logger *zap.Logger) *AgeResolver {
	return &AgeResolver{
		store:  store,
		now:    time.Now,
		logger: logger,
	}
}

// Resolve returns the child's current age and true, or (0, false) when the
// child is unknown or the lookup failed.
func (r *AgeResolver) Resolve(ctx context.Context, childUsername string) (int, bool) {
	birth, err := r.store.GetBirthDate(ctx, childUsername)
	if err != nil {
		r.logger.Warn("Failed to resolve child age",
			zap.String("child", childUsername),
			zap.Error(err))
		return 0, false
	}

	today := r.now()
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}

	return age, true
}
