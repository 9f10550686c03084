package services

import (
	"context"
	"testing"

	"github.com/bookmypg/api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportCreateChecksReferences(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	missingPG := uint(404)
	_, err := svc.transports.Create(ctx, CreateTransportInput{
		Name: "Ghost Bus",
		Type: model.TransportTypeBus,
		PGID: &missingPG,
	})
	assert.ErrorIs(t, err, ErrPGNotFound)

	missingCollege := uint(404)
	_, err = svc.transports.Create(ctx, CreateTransportInput{
		Name:      "Ghost Shuttle",
		Type:      model.TransportTypeShuttle,
		CollegeID: &missingCollege,
	})
	assert.ErrorIs(t, err, ErrCollegeNotFound)

	var count int64
	require.NoError(t, db.Model(&model.Transport{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTransportCreateWithBothOwners(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	college := createTestCollege(t, svc.colleges, "Transit College")
	pg := createTestPG(t, svc.pgs, "Transit PG", &college.ID)

	fare := 25.0
	transport, err := svc.transports.Create(ctx, CreateTransportInput{
		Name:       "Campus Shuttle",
		Type:       model.TransportTypeShuttle,
		Route:      "PG - Campus",
		StartPoint: "Transit PG",
		EndPoint:   "Main Gate",
		Fare:       &fare,
		Schedule:   "Every 30 minutes",
		PGID:       &pg.ID,
		CollegeID:  &college.ID,
	})
	require.NoError(t, err)
	assert.True(t, transport.Available)
	require.NotNil(t, transport.Fare)
	assert.Equal(t, 25.0, *transport.Fare)
}

func TestTransportDeleteCascadesMedia(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	transport, err := svc.transports.Create(ctx, CreateTransportInput{
		Name: "Metro Feeder",
		Type: model.TransportTypeMetro,
	})
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.Media{
		URL: "https://cdn.test/bus.jpg", Type: model.MediaTypeImage, TransportID: &transport.ID,
	}).Error)

	require.NoError(t, svc.transports.Delete(ctx, transport.ID))

	var mediaCount int64
	require.NoError(t, db.Model(&model.Media{}).Where("transport_id = ?", transport.ID).Count(&mediaCount).Error)
	assert.Zero(t, mediaCount)

	_, err = svc.transports.Get(ctx, transport.ID)
	assert.ErrorIs(t, err, ErrTransportNotFound)
}

func TestTransportPartialUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	transport, err := svc.transports.Create(ctx, CreateTransportInput{
		Name:     "City Bus",
		Type:     model.TransportTypeBus,
		Schedule: "Hourly",
	})
	require.NoError(t, err)

	unavailable := false
	_, err = svc.transports.Update(ctx, transport.ID, UpdateTransportInput{Available: &unavailable})
	require.NoError(t, err)

	reloaded, err := svc.transports.Get(ctx, transport.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Available)
	assert.Equal(t, "City Bus", reloaded.Name)
	assert.Equal(t, "Hourly", reloaded.Schedule)
}
