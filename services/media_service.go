package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bookmypg/api/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxUploadSize is the upload hard cap (10 MiB)
const MaxUploadSize = 10 << 20

// allowedMediaTypes maps accepted MIME types to the stored media kind
var allowedMediaTypes = map[string]model.MediaType{
	"image/jpeg": model.MediaTypeImage,
	"image/png":  model.MediaTypeImage,
	"image/webp": model.MediaTypeImage,
	"video/mp4":  model.MediaTypeVideo,
	"video/webm": model.MediaTypeVideo,
}

// OwnerKind names the entity a media asset belongs to
type OwnerKind string

const (
	OwnerPG        OwnerKind = "pg"
	OwnerCollege   OwnerKind = "college"
	OwnerFood      OwnerKind = "food"
	OwnerTransport OwnerKind = "transport"
)

// MediaOwner is the tagged-variant form of the four nullable owner columns.
// Exactly one owner is required; the handler resolves which id field was
// supplied before calling Upload.
type MediaOwner struct {
	Kind OwnerKind
	ID   uint
}

// Uploader is the blob-storage collaborator. It returns the public URL of
// the stored object.
type Uploader interface {
	UploadFile(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
}

// MediaService validates uploads and persists media rows. Validation and
// owner checks run before the blob leaves the process; a blob orphaned by a
// failed insert is an accepted inconsistency, reconciled out of band.
type MediaService struct {
	db         *gorm.DB
	uploader   Uploader
	pgs        PGChecker
	colleges   CollegeChecker
	foods      FoodChecker
	transports TransportChecker
}

// NewMediaService creates a new media service
func NewMediaService(db *gorm.DB, uploader Uploader, pgs PGChecker, colleges CollegeChecker, foods FoodChecker, transports TransportChecker) *MediaService {
	return &MediaService{
		db:         db,
		uploader:   uploader,
		pgs:        pgs,
		colleges:   colleges,
		foods:      foods,
		transports: transports,
	}
}

// UploadInput describes one multipart file and its owner
type UploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	Data        io.Reader
	Owner       MediaOwner
}

func (s *MediaService) checkOwner(ctx context.Context, owner MediaOwner) error {
	var (
		exists   bool
		err      error
		notFound error
	)

	switch owner.Kind {
	case OwnerPG:
		exists, err = s.pgs.PGExists(ctx, owner.ID)
		notFound = ErrPGNotFound
	case OwnerCollege:
		exists, err = s.colleges.CollegeExists(ctx, owner.ID)
		notFound = ErrCollegeNotFound
	case OwnerFood:
		exists, err = s.foods.FoodExists(ctx, owner.ID)
		notFound = ErrFoodNotFound
	case OwnerTransport:
		exists, err = s.transports.TransportExists(ctx, owner.ID)
		notFound = ErrTransportNotFound
	default:
		return ErrInvalidMediaOwner
	}

	if err != nil {
		return err
	}
	if !exists {
		return notFound
	}
	return nil
}

// Upload runs the single-step pipeline: MIME allow-list, size cap, owner
// existence, blob upload, media row insert
func (s *MediaService) Upload(ctx context.Context, input UploadInput) (*model.Media, error) {
	contentType := strings.ToLower(strings.TrimSpace(input.ContentType))
	mediaType, ok := allowedMediaTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedMediaType
	}
	if input.Size > MaxUploadSize {
		return nil, ErrFileTooLarge
	}
	if err := s.checkOwner(ctx, input.Owner); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("media/%s/%d/%s%s",
		input.Owner.Kind, input.Owner.ID, uuid.New().String(), filepath.Ext(input.FileName))

	url, err := s.uploader.UploadFile(ctx, key, input.Data, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	media := model.Media{
		URL:  url,
		Type: mediaType,
	}
	switch input.Owner.Kind {
	case OwnerPG:
		media.PGID = &input.Owner.ID
	case OwnerCollege:
		media.CollegeID = &input.Owner.ID
	case OwnerFood:
		media.FoodID = &input.Owner.ID
	case OwnerTransport:
		media.TransportID = &input.Owner.ID
	}

	if err := s.db.WithContext(ctx).Create(&media).Error; err != nil {
		return nil, fmt.Errorf("failed to persist media row: %w", err)
	}

	return &media, nil
}
