package services

import (
	"context"
	"testing"

	"github.com/bookmypg/api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollegeNameUniqueness(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	createTestCollege(t, svc.colleges, "IIT Delhi")

	_, err := svc.colleges.Create(ctx, CreateCollegeInput{
		Name:    "IIT Delhi",
		Address: "Another Address",
	})
	assert.ErrorIs(t, err, ErrDuplicateCollegeName)

	var count int64
	require.NoError(t, db.Model(&model.College{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "losing create must not persist a row")
}

func TestCollegeRenameConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	first := createTestCollege(t, svc.colleges, "IIT Delhi")
	second := createTestCollege(t, svc.colleges, "IIT Bombay")

	// Renaming onto another college's name is a conflict
	name := first.Name
	_, err := svc.colleges.Update(ctx, second.ID, UpdateCollegeInput{Name: &name})
	assert.ErrorIs(t, err, ErrDuplicateCollegeName)

	// Renaming to the current name is a no-op and succeeds
	own := second.Name
	updated, err := svc.colleges.Update(ctx, second.ID, UpdateCollegeInput{Name: &own})
	require.NoError(t, err)
	assert.Equal(t, "IIT Bombay", updated.Name)
}

func TestCollegeDeleteGuard(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	college := createTestCollege(t, svc.colleges, "Guarded College")
	pg := createTestPG(t, svc.pgs, "Nearby PG", &college.ID)

	err := svc.colleges.Delete(ctx, college.ID)
	assert.ErrorIs(t, err, ErrCollegeHasDependents)

	// College and dependents survive a refused delete
	_, err = svc.colleges.Get(ctx, college.ID)
	require.NoError(t, err)
	_, err = svc.pgs.Get(ctx, pg.ID)
	require.NoError(t, err)

	// A dependent transport alone also blocks the delete
	require.NoError(t, svc.pgs.Delete(ctx, pg.ID))
	transport, err := svc.transports.Create(ctx, CreateTransportInput{
		Name:      "College Shuttle",
		Type:      model.TransportTypeShuttle,
		CollegeID: &college.ID,
	})
	require.NoError(t, err)

	err = svc.colleges.Delete(ctx, college.ID)
	assert.ErrorIs(t, err, ErrCollegeHasDependents)

	// With dependents gone the delete cascades media and succeeds
	require.NoError(t, svc.transports.Delete(ctx, transport.ID))
	media := model.Media{URL: "https://cdn.test/college.jpg", Type: model.MediaTypeImage, CollegeID: &college.ID}
	require.NoError(t, db.Create(&media).Error)

	require.NoError(t, svc.colleges.Delete(ctx, college.ID))

	var mediaCount int64
	require.NoError(t, db.Model(&model.Media{}).Where("college_id = ?", college.ID).Count(&mediaCount).Error)
	assert.Zero(t, mediaCount)

	_, err = svc.colleges.Get(ctx, college.ID)
	assert.ErrorIs(t, err, ErrCollegeNotFound)

	// The freed name is reusable after a hard delete
	createTestCollege(t, svc.colleges, "Guarded College")
}

func TestCollegeSearchMatchesNameOrAddress(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	_, err := svc.colleges.Create(ctx, CreateCollegeInput{Name: "National Institute", Address: "Ring Road"})
	require.NoError(t, err)
	_, err = svc.colleges.Create(ctx, CreateCollegeInput{Name: "City College", Address: "national highway 8"})
	require.NoError(t, err)
	_, err = svc.colleges.Create(ctx, CreateCollegeInput{Name: "Unrelated", Address: "Elsewhere"})
	require.NoError(t, err)

	colleges, total, err := svc.colleges.List(ctx, CollegeListParams{Page: 1, Limit: 10, Search: "NATIONAL"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total, "search is case-insensitive over name and address")
	require.Len(t, colleges, 2)
	// Ordered by name ascending
	assert.Equal(t, "City College", colleges[0].Name)
	assert.Equal(t, "National Institute", colleges[1].Name)
}

func TestCollegeDetailOrdersPGsByPrice(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	college := createTestCollege(t, svc.colleges, "Detail College")

	for i, price := range []float64{9000, 5000, 7000} {
		_, err := svc.pgs.Create(ctx, CreatePGInput{
			Name:      []string{"Costly", "Cheap", "Middle"}[i],
			Address:   "Lane",
			Price:     price,
			CollegeID: &college.ID,
		})
		require.NoError(t, err)
	}

	// Only available transports show on the detail view
	unavailable := false
	_, err := svc.transports.Create(ctx, CreateTransportInput{
		Name:      "Broken Bus",
		Type:      model.TransportTypeBus,
		Available: &unavailable,
		CollegeID: &college.ID,
	})
	require.NoError(t, err)
	_, err = svc.transports.Create(ctx, CreateTransportInput{
		Name:      "Running Bus",
		Type:      model.TransportTypeBus,
		CollegeID: &college.ID,
	})
	require.NoError(t, err)

	detail, err := svc.colleges.Get(ctx, college.ID)
	require.NoError(t, err)

	require.Len(t, detail.PGs, 3)
	assert.Equal(t, "Cheap", detail.PGs[0].Name)
	assert.Equal(t, "Middle", detail.PGs[1].Name)
	assert.Equal(t, "Costly", detail.PGs[2].Name)

	require.Len(t, detail.Transports, 1)
	assert.Equal(t, "Running Bus", detail.Transports[0].Name)

	assert.Equal(t, int64(3), detail.PGCount)
	assert.Equal(t, int64(2), detail.TransportCount)
}

func TestCollegePaginationArithmetic(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	for i := 0; i < 23; i++ {
		createTestCollege(t, svc.colleges, "College "+string(rune('A'+i)))
	}

	_, total, err := svc.colleges.List(ctx, CollegeListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(23), total)

	lastPage, _, err := svc.colleges.List(ctx, CollegeListParams{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, lastPage, 3)

	empty, _, err := svc.colleges.List(ctx, CollegeListParams{Page: 4, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, empty, "a page past the end is empty, not an error")
}
