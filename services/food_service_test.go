package services

import (
	"context"
	"testing"

	"github.com/bookmypg/api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodCreateRequiresExistingPG(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	missing := uint(777)
	_, err := svc.foods.Create(ctx, CreateFoodInput{
		Name:  "Ghost Mess",
		Type:  model.FoodTypeVeg,
		Price: 60,
		PGID:  &missing,
	})
	assert.ErrorIs(t, err, ErrPGNotFound)

	var count int64
	require.NoError(t, db.Model(&model.Food{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFoodDefaultsToAvailable(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	food, err := svc.foods.Create(ctx, CreateFoodInput{
		Name:  "Canteen",
		Type:  model.FoodTypeMixed,
		Price: 70,
	})
	require.NoError(t, err)
	assert.True(t, food.Available)

	unavailable := false
	closed, err := svc.foods.Create(ctx, CreateFoodInput{
		Name:      "Closed Canteen",
		Type:      model.FoodTypeVegan,
		Price:     50,
		Available: &unavailable,
	})
	require.NoError(t, err)
	assert.False(t, closed.Available)
}

func TestFoodDeleteCascadesMedia(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	food, err := svc.foods.Create(ctx, CreateFoodInput{
		Name:  "Pictured Mess",
		Type:  model.FoodTypeNonVeg,
		Price: 120,
	})
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.Media{
		URL: "https://cdn.test/food.jpg", Type: model.MediaTypeImage, FoodID: &food.ID,
	}).Error)

	require.NoError(t, svc.foods.Delete(ctx, food.ID))

	var mediaCount int64
	require.NoError(t, db.Model(&model.Media{}).Where("food_id = ?", food.ID).Count(&mediaCount).Error)
	assert.Zero(t, mediaCount)

	_, err = svc.foods.Get(ctx, food.ID)
	assert.ErrorIs(t, err, ErrFoodNotFound)
}

func TestFoodListFilters(t *testing.T) {
	db := newTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	pg := createTestPG(t, svc.pgs, "Food PG", nil)

	unavailable := false
	for _, f := range []CreateFoodInput{
		{Name: "Veg Mess", Type: model.FoodTypeVeg, Price: 60, PGID: &pg.ID},
		{Name: "NonVeg Mess", Type: model.FoodTypeNonVeg, Price: 90, PGID: &pg.ID},
		{Name: "Closed Veg", Type: model.FoodTypeVeg, Price: 55, Available: &unavailable},
	} {
		_, err := svc.foods.Create(ctx, f)
		require.NoError(t, err)
	}

	veg := model.FoodTypeVeg
	_, total, err := svc.foods.List(ctx, FoodListParams{Page: 1, Limit: 10, Type: &veg})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	open := true
	_, total, err = svc.foods.List(ctx, FoodListParams{Page: 1, Limit: 10, Type: &veg, Available: &open})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = svc.foods.List(ctx, FoodListParams{Page: 1, Limit: 10, PGID: &pg.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
