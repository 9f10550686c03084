package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/bookmypg/api/database"
	"github.com/bookmypg/api/model"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(db))

	return db
}

// testServices bundles the wired-up entity services for a test database
type testServices struct {
	colleges   *CollegeService
	pgs        *PGService
	foods      *FoodService
	transports *TransportService
	wishlists  *WishlistService
}

func newTestServices(db *gorm.DB) testServices {
	colleges := NewCollegeService(db)
	pgs := NewPGService(db, colleges)
	return testServices{
		colleges:   colleges,
		pgs:        pgs,
		foods:      NewFoodService(db, pgs),
		transports: NewTransportService(db, pgs, colleges),
		wishlists:  NewWishlistService(db, pgs),
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := model.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Role:         model.RoleUser,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestCollege(t *testing.T, svc *CollegeService, name string) *model.College {
	t.Helper()
	college, err := svc.Create(context.Background(), CreateCollegeInput{
		Name:    name,
		Address: name + " Road",
	})
	require.NoError(t, err)
	return college
}

func createTestPG(t *testing.T, svc *PGService, name string, collegeID *uint) *model.PG {
	t.Helper()
	pg, err := svc.Create(context.Background(), CreatePGInput{
		Name:       name,
		Address:    name + " Lane",
		Price:      8000,
		Facilities: []string{"wifi", "laundry"},
		CollegeID:  collegeID,
	})
	require.NoError(t, err)
	return pg
}

func facilityTags(t *testing.T, facilities datatypes.JSON) []string {
	t.Helper()
	var tags []string
	require.NoError(t, json.Unmarshal(facilities, &tags))
	return tags
}

// fakeUploader records blob-storage calls so tests can assert that
// validation failures never reach the uploader
type fakeUploader struct {
	calls int
	fail  bool
}

func (f *fakeUploader) UploadFile(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	f.calls++
	if f.fail {
		return "", fmt.Errorf("upload unavailable")
	}
	return "https://cdn.test/" + key, nil
}
