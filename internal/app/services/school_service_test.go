package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steampunk99/school-locator/internal/app/models"
	"github.com/steampunk99/school-locator/internal/app/models/dto"
	"github.com/steampunk99/school-locator/internal/pkg/apperrors"
)

func newTestSchoolService(store *fakeSchoolStore, storage *fakeFileStorage) *SchoolService {
	return NewSchoolService(store, storage, zerolog.Nop())
}

func TestSearch_NormalizesFilters(t *testing.T) {
	store := newFakeSchoolStore()
	svc := newTestSchoolService(store, &fakeFileStorage{})

	_, err := svc.Search(context.Background(), &dto.SearchSchoolsRequest{
		Query:       "  gayaza  ",
		HasBoarding: true,
		Type:        "Day",
		SortBy:      "rating",
		SortOrder:   "DESC",
		Page:        2,
		Limit:       20,
	})
	require.NoError(t, err)
	require.Len(t, store.searched, 1)

	f := store.searched[0]
	assert.Equal(t, "gayaza", f.Query)
	// hasBoarding matches both Boarding and Mixed and wins over type
	assert.Equal(t, []string{"Boarding", "Mixed"}, f.Types)
	// Unknown sort keys fall back to name
	assert.Equal(t, "name", f.SortBy)
	assert.Equal(t, "desc", f.SortOrder)
	assert.Equal(t, uint64(20), f.Offset)
	assert.Equal(t, 20, f.Limit)
}

func TestSearch_SingleTypeFilter(t *testing.T) {
	store := newFakeSchoolStore()
	svc := newTestSchoolService(store, &fakeFileStorage{})

	_, err := svc.Search(context.Background(), &dto.SearchSchoolsRequest{
		Type:   "Day",
		SortBy: "performance",
	})
	require.NoError(t, err)
	require.Len(t, store.searched, 1)

	f := store.searched[0]
	assert.Equal(t, []string{"Day"}, f.Types)
	assert.Equal(t, "performance", f.SortBy)
	assert.Equal(t, "asc", f.SortOrder)
}

func validAddSchoolRequest() *dto.AddSchoolRequest {
	return &dto.AddSchoolRequest{
		Name:                "Gayaza High School",
		District:            "Wakiso",
		Region:              "Central",
		Type:                "Boarding",
		Category:            "Religious",
		AdmissionFee:        50000,
		TuitionBoarding:     1500000,
		Curriculum:          "UCE, UACE",
		ApplicationDeadline: "2030-01-01",
		DaySpots:            0,
		BoardingSpots:       120,
		Requirements:        "Report card, Birth certificate",
	}
}

func TestAddSchool(t *testing.T) {
	store := newFakeSchoolStore()
	storage := &fakeFileStorage{}
	svc := newTestSchoolService(store, storage)

	school, err := svc.Add(context.Background(), validAddSchoolRequest(), &multipart.FileHeader{Filename: "logo.png"})
	require.NoError(t, err)

	assert.NotZero(t, school.ID)
	assert.Equal(t, "Gayaza High School", school.Name)
	assert.Equal(t, models.SchoolTypeBoarding, school.Type)
	assert.Equal(t, []string{"UCE", "UACE"}, school.Curriculum)
	assert.Equal(t, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), school.Admissions.ApplicationDeadline)
	assert.True(t, school.Metadata.IsActive)
	assert.Equal(t, models.TierBasic, school.Metadata.SubscriptionTier)
	assert.NotEmpty(t, school.Media.Logo)

	// Day tuition was zero so it stays unset
	assert.Nil(t, school.Fees.TuitionDay)
	require.NotNil(t, school.Fees.TuitionBoarding)
	assert.Equal(t, 1500000.0, *school.Fees.TuitionBoarding)

	require.Len(t, school.Admissions.Requirements, 2)
	assert.Equal(t, "Report card", school.Admissions.Requirements[0].Name)
	assert.True(t, school.Admissions.Requirements[0].Required)
}

func TestAddSchool_InvalidDeadline(t *testing.T) {
	svc := newTestSchoolService(newFakeSchoolStore(), &fakeFileStorage{})

	req := validAddSchoolRequest()
	req.ApplicationDeadline = "next year"

	_, err := svc.Add(context.Background(), req, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestAddSchool_CleansUpLogoOnCreateFailure(t *testing.T) {
	store := newFakeSchoolStore()
	store.createErr = errors.New("insert failed")
	storage := &fakeFileStorage{}
	svc := newTestSchoolService(store, storage)

	_, err := svc.Add(context.Background(), validAddSchoolRequest(), &multipart.FileHeader{Filename: "logo.png"})
	require.Error(t, err)

	// The stored logo must be removed when the row insert fails
	require.Len(t, storage.ops, 2)
	assert.Equal(t, "save:uploads/logos/file-1.jpg", storage.ops[0])
	assert.Equal(t, "delete:uploads/logos/file-1.jpg", storage.ops[1])
}

func TestUpdateSchool_DeletesOldLogoBeforeLinkingNew(t *testing.T) {
	school := openSchool(10)
	school.Media.Logo = "uploads/logos/old.jpg"
	store := newFakeSchoolStore(school)
	storage := &fakeFileStorage{}
	svc := newTestSchoolService(store, storage)

	name := "Updated Name"
	updated, err := svc.Update(context.Background(), 10, &dto.UpdateSchoolRequest{Name: &name}, &multipart.FileHeader{Filename: "new.png"})
	require.NoError(t, err)

	assert.Equal(t, "Updated Name", updated.Name)
	assert.Equal(t, "uploads/logos/file-1.jpg", updated.Media.Logo)

	// Old logo removed from storage before the replacement is linked
	require.Len(t, storage.ops, 2)
	assert.Equal(t, "delete:uploads/logos/old.jpg", storage.ops[0])
	assert.Equal(t, "save:uploads/logos/file-1.jpg", storage.ops[1])
}

func TestDeleteSchool_RemovesFilesBeforeRow(t *testing.T) {
	school := openSchool(10)
	school.Media.Logo = "uploads/logos/logo.jpg"
	school.Media.Gallery = []models.GalleryImage{
		{ID: 1, URL: "uploads/gallery/a.jpg"},
		{ID: 2, URL: "uploads/gallery/b.jpg"},
	}
	store := newFakeSchoolStore(school)
	storage := &fakeFileStorage{}
	svc := newTestSchoolService(store, storage)

	require.NoError(t, svc.Delete(context.Background(), 10))

	assert.Equal(t, []string{
		"delete:uploads/logos/logo.jpg",
		"delete:uploads/gallery/a.jpg",
		"delete:uploads/gallery/b.jpg",
	}, storage.ops)
	assert.Equal(t, []int64{10}, store.deleted)
}

func TestDeleteSchool_NotFound(t *testing.T) {
	svc := newTestSchoolService(newFakeSchoolStore(), &fakeFileStorage{})
	assert.ErrorIs(t, svc.Delete(context.Background(), 99), apperrors.ErrSchoolNotFound)
}

func TestAddGalleryImages(t *testing.T) {
	store := newFakeSchoolStore(openSchool(10))
	storage := &fakeFileStorage{}
	svc := newTestSchoolService(store, storage)

	images, err := svc.AddGalleryImages(context.Background(), 10, []*multipart.FileHeader{
		{Filename: "a.jpg"},
		{Filename: "b.jpg"},
	})
	require.NoError(t, err)
	require.Len(t, images, 2)

	gallery, err := store.GetGallery(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, gallery, 2)
}

func TestAddGalleryImages_RequiresFiles(t *testing.T) {
	svc := newTestSchoolService(newFakeSchoolStore(openSchool(10)), &fakeFileStorage{})

	_, err := svc.AddGalleryImages(context.Background(), 10, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestAddGalleryImages_UnknownSchool(t *testing.T) {
	svc := newTestSchoolService(newFakeSchoolStore(), &fakeFileStorage{})

	_, err := svc.AddGalleryImages(context.Background(), 99, []*multipart.FileHeader{{Filename: "a.jpg"}})
	assert.ErrorIs(t, err, apperrors.ErrSchoolNotFound)
}

func TestRemoveGalleryImage(t *testing.T) {
	school := openSchool(10)
	school.Media.Gallery = []models.GalleryImage{{ID: 1, URL: "uploads/gallery/a.jpg"}}
	store := newFakeSchoolStore(school)
	storage := &fakeFileStorage{}
	svc := newTestSchoolService(store, storage)

	require.NoError(t, svc.RemoveGalleryImage(context.Background(), 10, 1))
	assert.Equal(t, []string{"delete:uploads/gallery/a.jpg"}, storage.ops)

	gallery, err := store.GetGallery(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, gallery)
}

func TestFindSimilar_SchoolAttributesTakePrecedence(t *testing.T) {
	school := openSchool(10)
	school.Category = models.CategoryGovernment
	school.Location.Region = "Central"
	school.Type = models.SchoolTypeBoarding
	store := newFakeSchoolStore(school)
	svc := newTestSchoolService(store, &fakeFileStorage{})

	_, err := svc.FindSimilar(context.Background(), &dto.SimilarSchoolsRequest{
		SchoolID: 10,
		Category: "Private",
	})
	assert.NoError(t, err)

	_, err = svc.FindSimilar(context.Background(), &dto.SimilarSchoolsRequest{SchoolID: 99})
	assert.ErrorIs(t, err, apperrors.ErrSchoolNotFound)
}
