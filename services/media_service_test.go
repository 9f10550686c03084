package services

import (
	"context"
	"strings"
	"testing"

	"github.com/bookmypg/api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMediaTestSetup(t *testing.T) (testServices, *MediaService, *fakeUploader) {
	t.Helper()
	db := newTestDB(t)
	svc := newTestServices(db)
	uploader := &fakeUploader{}
	media := NewMediaService(db, uploader, svc.pgs, svc.colleges, svc.foods, svc.transports)
	return svc, media, uploader
}

func TestUploadRejectsUnsupportedMIMEBeforeBlobCall(t *testing.T) {
	svc, media, uploader := newMediaTestSetup(t)

	pg := createTestPG(t, svc.pgs, "Media PG", nil)

	_, err := media.Upload(context.Background(), UploadInput{
		FileName:    "brochure.pdf",
		ContentType: "application/pdf",
		Size:        1024,
		Data:        strings.NewReader("%PDF-1.4"),
		Owner:       MediaOwner{Kind: OwnerPG, ID: pg.ID},
	})
	assert.ErrorIs(t, err, ErrUnsupportedMediaType)
	assert.Zero(t, uploader.calls, "rejected upload must not reach blob storage")
}

func TestUploadRejectsOversizedFileBeforeBlobCall(t *testing.T) {
	svc, media, uploader := newMediaTestSetup(t)

	pg := createTestPG(t, svc.pgs, "Media PG", nil)

	_, err := media.Upload(context.Background(), UploadInput{
		FileName:    "tour.mp4",
		ContentType: "video/mp4",
		Size:        11 << 20, // 11 MiB
		Data:        strings.NewReader("fake video bytes"),
		Owner:       MediaOwner{Kind: OwnerPG, ID: pg.ID},
	})
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Zero(t, uploader.calls)
}

func TestUploadRejectsMissingOwnerBeforeBlobCall(t *testing.T) {
	_, media, uploader := newMediaTestSetup(t)

	_, err := media.Upload(context.Background(), UploadInput{
		FileName:    "room.jpg",
		ContentType: "image/jpeg",
		Size:        2048,
		Data:        strings.NewReader("fake image bytes"),
		Owner:       MediaOwner{Kind: OwnerPG, ID: 9999},
	})
	assert.ErrorIs(t, err, ErrPGNotFound)
	assert.Zero(t, uploader.calls)

	_, err = media.Upload(context.Background(), UploadInput{
		FileName:    "room.jpg",
		ContentType: "image/jpeg",
		Size:        2048,
		Data:        strings.NewReader("fake image bytes"),
		Owner:       MediaOwner{Kind: "building", ID: 1},
	})
	assert.ErrorIs(t, err, ErrInvalidMediaOwner)
	assert.Zero(t, uploader.calls)
}

func TestUploadPersistsMediaRowWithOwner(t *testing.T) {
	svc, media, uploader := newMediaTestSetup(t)

	college := createTestCollege(t, svc.colleges, "Media College")

	created, err := media.Upload(context.Background(), UploadInput{
		FileName:    "campus.webp",
		ContentType: "image/webp",
		Size:        4096,
		Data:        strings.NewReader("fake image bytes"),
		Owner:       MediaOwner{Kind: OwnerCollege, ID: college.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, uploader.calls)

	assert.Equal(t, model.MediaTypeImage, created.Type)
	assert.Contains(t, created.URL, "https://cdn.test/media/college/")
	require.NotNil(t, created.CollegeID)
	assert.Equal(t, college.ID, *created.CollegeID)
	assert.Nil(t, created.PGID)
	assert.Nil(t, created.FoodID)
	assert.Nil(t, created.TransportID)
}

func TestUploadResolvesVideoKind(t *testing.T) {
	svc, media, _ := newMediaTestSetup(t)

	pg := createTestPG(t, svc.pgs, "Video PG", nil)

	created, err := media.Upload(context.Background(), UploadInput{
		FileName:    "tour.webm",
		ContentType: "video/webm",
		Size:        5 << 20,
		Data:        strings.NewReader("fake video bytes"),
		Owner:       MediaOwner{Kind: OwnerPG, ID: pg.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, model.MediaTypeVideo, created.Type)
}

func TestUploadSurfacesBlobFailure(t *testing.T) {
	svc, media, uploader := newMediaTestSetup(t)
	uploader.fail = true

	pg := createTestPG(t, svc.pgs, "Unlucky PG", nil)

	_, err := media.Upload(context.Background(), UploadInput{
		FileName:    "room.png",
		ContentType: "image/png",
		Size:        1024,
		Data:        strings.NewReader("fake image bytes"),
		Owner:       MediaOwner{Kind: OwnerPG, ID: pg.ID},
	})
	require.Error(t, err)
	assert.Equal(t, 1, uploader.calls)
}
