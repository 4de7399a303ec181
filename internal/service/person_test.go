package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pquist/bunkplan/backend/internal/domain"
	"github.com/pquist/bunkplan/backend/internal/service"
)

func TestPersonService_Create(t *testing.T) {
	tripID := uuid.New()
	persons := &mockPersonRepo{
		create: func(_ context.Context, p domain.Person) (domain.Person, error) {
			p.ID = uuid.New()
			return p, nil
		},
	}
	svc := service.NewPersonService(persons, existingTripRepo(), nil)

	created, err := svc.Create(context.Background(), domain.Person{TripID: tripID, Name: "Alex"})

	require.NoError(t, err)
	assert.Equal(t, tripID, created.TripID)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestPersonService_Create_MissingTrip(t *testing.T) {
	trips := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	called := false
	persons := &mockPersonRepo{
		create: func(_ context.Context, p domain.Person) (domain.Person, error) {
			called = true
			return p, nil
		},
	}
	svc := service.NewPersonService(persons, trips, nil)

	_, err := svc.Create(context.Background(), domain.Person{TripID: uuid.New(), Name: "Alex"})

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, called, "person must not be created under a missing trip")
}

func TestPersonService_Create_BlankNameRejected(t *testing.T) {
	persons := &mockPersonRepo{}
	svc := service.NewPersonService(persons, existingTripRepo(), nil)

	_, err := svc.Create(context.Background(), domain.Person{TripID: uuid.New(), Name: ""})

	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestPersonService_Delete_PublishesChange(t *testing.T) {
	persons := &mockPersonRepo{
		delete: func(_ context.Context, _, _ uuid.UUID) error { return nil },
	}
	notifier := service.NewNotifier()
	svc := service.NewPersonService(persons, existingTripRepo(), notifier)

	before := notifier.Version()
	require.NoError(t, svc.Delete(context.Background(), uuid.New(), uuid.New()))

	assert.Greater(t, notifier.Version(), before, "person delete cascades their stays")
}

func TestPersonService_ListByTrip_NeverNil(t *testing.T) {
	persons := &mockPersonRepo{
		listByTrip: func(_ context.Context, _ uuid.UUID) ([]domain.Person, error) { return nil, nil },
	}
	svc := service.NewPersonService(persons, existingTripRepo(), nil)

	got, err := svc.ListByTrip(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
