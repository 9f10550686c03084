package services

import (
	"context"
	"testing"

	"github.com/bookmypg/api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPGCreateRequiresExistingCollege(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	missing := uint(9999)
	_, err := svc.pgs.Create(ctx, CreatePGInput{
		Name:      "Orphan PG",
		Address:   "Nowhere",
		Price:     5000,
		CollegeID: &missing,
	})
	assert.ErrorIs(t, err, ErrCollegeNotFound)

	var count int64
	require.NoError(t, db.Model(&model.PG{}).Count(&count).Error)
	assert.Zero(t, count, "failed create must not persist a row")
}

func TestPGPartialUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	college := createTestCollege(t, svc.colleges, "Patch College")
	pg := createTestPG(t, svc.pgs, "Patch PG", &college.ID)

	price := 9000.0
	_, err := svc.pgs.Update(ctx, pg.ID, UpdatePGInput{Price: &price})
	require.NoError(t, err)

	reloaded, err := svc.pgs.Get(ctx, pg.ID)
	require.NoError(t, err)

	assert.Equal(t, 9000.0, reloaded.Price)
	assert.Equal(t, "Patch PG", reloaded.Name)
	assert.Equal(t, "Patch PG Lane", reloaded.Address)
	require.NotNil(t, reloaded.CollegeID)
	assert.Equal(t, college.ID, *reloaded.CollegeID)
	assert.ElementsMatch(t, []string{"wifi", "laundry"}, facilityTags(t, reloaded.Facilities))
}

func TestPGUpdateRejectsMissingCollege(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	pg := createTestPG(t, svc.pgs, "Loose PG", nil)

	missing := uint(4242)
	_, err := svc.pgs.Update(ctx, pg.ID, UpdatePGInput{CollegeID: &missing})
	assert.ErrorIs(t, err, ErrCollegeNotFound)

	reloaded, err := svc.pgs.Get(ctx, pg.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.CollegeID)
}

func TestPGDeleteCascadesAllDependents(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	college := createTestCollege(t, svc.colleges, "Cascade College")
	pg := createTestPG(t, svc.pgs, "Doomed PG", &college.ID)
	survivor := createTestPG(t, svc.pgs, "Survivor PG", &college.ID)

	// Dependents on the doomed PG
	for i := 0; i < 2; i++ {
		_, err := svc.foods.Create(ctx, CreateFoodInput{
			Name:  "Mess",
			Type:  model.FoodTypeVeg,
			Price: 80,
			PGID:  &pg.ID,
		})
		require.NoError(t, err)
	}
	_, err := svc.transports.Create(ctx, CreateTransportInput{
		Name: "PG Shuttle",
		Type: model.TransportTypeShuttle,
		PGID: &pg.ID,
	})
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.Media{
		URL: "https://cdn.test/pg.jpg", Type: model.MediaTypeImage, PGID: &pg.ID,
	}).Error)

	user := createTestUser(t, db, "cascade@test.dev")
	_, err = svc.wishlists.Add(ctx, user.ID, pg.ID)
	require.NoError(t, err)

	// A dependent on the surviving PG, to prove the cascade is scoped
	survivorFood, err := svc.foods.Create(ctx, CreateFoodInput{
		Name:  "Safe Mess",
		Type:  model.FoodTypeMixed,
		Price: 90,
		PGID:  &survivor.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.pgs.Delete(ctx, pg.ID))

	for _, tc := range []struct {
		name  string
		model interface{}
	}{
		{"wishlists", &model.Wishlist{}},
		{"media", &model.Media{}},
		{"foods", &model.Food{}},
		{"transports", &model.Transport{}},
	} {
		var count int64
		require.NoError(t, db.Model(tc.model).Where("pg_id = ?", pg.ID).Count(&count).Error)
		assert.Zero(t, count, "no %s rows may survive the cascade", tc.name)
	}

	_, err = svc.pgs.Get(ctx, pg.ID)
	assert.ErrorIs(t, err, ErrPGNotFound)

	// Unrelated rows untouched
	_, err = svc.pgs.Get(ctx, survivor.ID)
	require.NoError(t, err)
	_, err = svc.foods.Get(ctx, survivorFood.ID)
	require.NoError(t, err)
}

func TestPGListFilters(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	college := createTestCollege(t, svc.colleges, "Filter College")
	other := createTestCollege(t, svc.colleges, "Other College")

	mk := func(name string, price float64, facilities []string, collegeID *uint) {
		_, err := svc.pgs.Create(ctx, CreatePGInput{
			Name: name, Address: "Lane", Price: price, Facilities: facilities, CollegeID: collegeID,
		})
		require.NoError(t, err)
	}

	mk("Budget", 4000, []string{"wifi"}, &college.ID)
	mk("Premium", 12000, []string{"wifi", "ac", "meals"}, &college.ID)
	mk("Elsewhere", 6000, []string{"wifi", "ac"}, &other.ID)

	// College filter
	pgs, total, err := svc.pgs.List(ctx, PGListParams{Page: 1, Limit: 10, CollegeID: &college.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, pgs, 2)

	// Price range
	min, max := 5000.0, 13000.0
	_, total, err = svc.pgs.List(ctx, PGListParams{Page: 1, Limit: 10, MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// Facilities subset match: every requested tag must be present
	pgs, total, err = svc.pgs.List(ctx, PGListParams{Page: 1, Limit: 10, Facilities: []string{"wifi", "ac"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, p := range pgs {
		assert.Subset(t, facilityTags(t, p.Facilities), []string{"wifi", "ac"})
	}

	// Unmatched tag excludes all
	_, total, err = svc.pgs.List(ctx, PGListParams{Page: 1, Limit: 10, Facilities: []string{"pool"}})
	require.NoError(t, err)
	assert.Zero(t, total)
}
