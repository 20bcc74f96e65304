package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sync"
	"time"

	"github.com/steampunk99/school-locator/internal/app/models"
	"github.com/steampunk99/school-locator/internal/app/models/dto"
	"github.com/steampunk99/school-locator/internal/app/repositories"
	"github.com/steampunk99/school-locator/internal/pkg/apperrors"
)

// In-memory stand-ins for the repository interfaces. Each fake keeps just
// enough state for the behavior under test and lets individual methods be
// overridden with error hooks.

type fakeUserStore struct {
	mu     sync.Mutex
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: map[int64]*models.User{}, nextID: 1}
	for _, u := range users {
		if u.ID >= s.nextID {
			s.nextID = u.ID + 1
		}
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.nextID
	s.nextID++
	user.CreatedAt = time.Now()
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	if err == apperrors.ErrUserNotFound {
		return false, nil
	}
	return err == nil, err
}

func (s *fakeUserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type storedToken struct {
	userID    int64
	expiresAt time.Time
	revoked   bool
}

type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*storedToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]*storedToken{}}
}

func (s *fakeTokenStore) CreateToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = &storedToken{userID: userID, expiresAt: expiresAt}
	return nil
}

func (s *fakeTokenStore) GetTokenUser(ctx context.Context, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[token]
	if !ok {
		return 0, apperrors.ErrTokenNotFound
	}
	if t.revoked {
		return 0, apperrors.ErrTokenRevoked
	}
	if time.Now().After(t.expiresAt) {
		return 0, apperrors.ErrTokenExpired
	}
	return t.userID, nil
}

func (s *fakeTokenStore) RevokeToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	t.revoked = true
	return nil
}

func (s *fakeTokenStore) RotateToken(ctx context.Context, oldToken, newToken string, userID int64, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[oldToken]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	if t.revoked {
		return apperrors.ErrTokenRevoked
	}
	t.revoked = true
	s.tokens[newToken] = &storedToken{userID: userID, expiresAt: expiresAt}
	return nil
}

func (s *fakeTokenStore) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tokens {
		if t.userID == userID {
			t.revoked = true
		}
	}
	return nil
}

type fakeSchoolStore struct {
	mu        sync.Mutex
	schools   map[int64]*models.School
	createErr error
	searched  []repositories.SchoolSearchFilters
	deleted   []int64
}

func newFakeSchoolStore(schools ...*models.School) *fakeSchoolStore {
	s := &fakeSchoolStore{schools: map[int64]*models.School{}}
	for _, sc := range schools {
		s.schools[sc.ID] = sc
	}
	return s
}

func (s *fakeSchoolStore) Create(ctx context.Context, school *models.School) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	school.ID = int64(len(s.schools) + 1)
	s.schools[school.ID] = school
	return nil
}

func (s *fakeSchoolStore) GetByID(ctx context.Context, id int64) (*models.School, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.schools[id]
	if !ok {
		return nil, apperrors.ErrSchoolNotFound
	}
	return sc, nil
}

func (s *fakeSchoolStore) GetAll(ctx context.Context, offset uint64, limit int) ([]models.School, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.School, 0, len(s.schools))
	for _, sc := range s.schools {
		out = append(out, *sc)
	}
	return out, int64(len(out)), nil
}

func (s *fakeSchoolStore) Search(ctx context.Context, f repositories.SchoolSearchFilters) ([]models.School, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searched = append(s.searched, f)
	return nil, 0, nil
}

func (s *fakeSchoolStore) FindSimilar(ctx context.Context, excludeID int64, category, region, schoolType string, limit int) ([]dto.SchoolSummary, error) {
	return nil, nil
}

func (s *fakeSchoolStore) Update(ctx context.Context, school *models.School) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.schools[school.ID]; !ok {
		return apperrors.ErrSchoolNotFound
	}
	s.schools[school.ID] = school
	return nil
}

func (s *fakeSchoolStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.schools[id]; !ok {
		return apperrors.ErrSchoolNotFound
	}
	delete(s.schools, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeSchoolStore) GetGallery(ctx context.Context, schoolID int64) ([]models.GalleryImage, error) {
	sc, err := s.GetByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	return sc.Media.Gallery, nil
}

func (s *fakeSchoolStore) AddGalleryImages(ctx context.Context, schoolID int64, images []models.GalleryImage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.schools[schoolID]
	if !ok {
		return apperrors.ErrSchoolNotFound
	}
	sc.Media.Gallery = append(sc.Media.Gallery, images...)
	return nil
}

func (s *fakeSchoolStore) GetGalleryImage(ctx context.Context, schoolID, imageID int64) (*models.GalleryImage, error) {
	sc, err := s.GetByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	for i := range sc.Media.Gallery {
		if sc.Media.Gallery[i].ID == imageID {
			return &sc.Media.Gallery[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError("gallery image not found")
}

func (s *fakeSchoolStore) DeleteGalleryImage(ctx context.Context, schoolID, imageID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.schools[schoolID]
	if !ok {
		return apperrors.ErrSchoolNotFound
	}
	gallery := sc.Media.Gallery[:0]
	for _, img := range sc.Media.Gallery {
		if img.ID != imageID {
			gallery = append(gallery, img)
		}
	}
	sc.Media.Gallery = gallery
	return nil
}

type fakeApplicationStore struct {
	mu     sync.Mutex
	apps   map[int64]*models.Application
	nextID int64

	hasActiveCalls int
	getByIDCalls   int
}

func newFakeApplicationStore(apps ...*models.Application) *fakeApplicationStore {
	s := &fakeApplicationStore{apps: map[int64]*models.Application{}, nextID: 1}
	for _, a := range apps {
		if a.ID >= s.nextID {
			s.nextID = a.ID + 1
		}
		s.apps[a.ID] = a
	}
	return s
}

func (s *fakeApplicationStore) Create(ctx context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.apps {
		if existing.UserID == app.UserID && existing.SchoolID == app.SchoolID &&
			(existing.Status == models.ApplicationPending || existing.Status == models.ApplicationApproved) {
			return apperrors.ErrDuplicateApplication
		}
	}
	app.ID = s.nextID
	s.nextID++
	app.CreatedAt = time.Now()
	s.apps[app.ID] = app
	return nil
}

func (s *fakeApplicationStore) HasActiveApplication(ctx context.Context, userID, schoolID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasActiveCalls++
	for _, a := range s.apps {
		if a.UserID == userID && a.SchoolID == schoolID &&
			(a.Status == models.ApplicationPending || a.Status == models.ApplicationApproved) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeApplicationStore) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getByIDCalls++
	a, ok := s.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	return a, nil
}

func (s *fakeApplicationStore) ListByUser(ctx context.Context, userID int64) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Application{}
	for _, a := range s.apps {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *fakeApplicationStore) ListBySchool(ctx context.Context, schoolID int64) ([]models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Application{}
	for _, a := range s.apps {
		if a.SchoolID == schoolID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *fakeApplicationStore) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	a.Status = status
	return nil
}

func (s *fakeApplicationStore) UpdatePayment(ctx context.Context, id int64, status models.PaymentStatus, transactionID string, method models.PaymentMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	a.Payment.Status = status
	a.Payment.TransactionID = transactionID
	a.Payment.Method = method
	return nil
}

// fakeEmailService records calls so tests can assert best-effort delivery
type fakeEmailService struct {
	mu        sync.Mutex
	submitted []string
	notified  []string
	statuses  []string
	err       error
}

func (f *fakeEmailService) SendApplicationSubmitted(toEmail, toName, schoolName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, toEmail)
	return f.err
}

func (f *fakeEmailService) SendSchoolNotification(toEmail, schoolName, applicantName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified = append(f.notified, toEmail)
	return f.err
}

func (f *fakeEmailService) SendApplicationStatusUpdate(toEmail, toName, schoolName, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, status)
	return f.err
}

// fakeFileStorage records saves and deletes in order without touching disk
type fakeFileStorage struct {
	mu      sync.Mutex
	saves   int
	saveErr error
	ops     []string
}

func (f *fakeFileStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	return f.SaveFileWithPath(fileHeader, "uploads")
}

func (f *fakeFileStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saves++
	url := fmt.Sprintf("uploads/%s/file-%d.jpg", path, f.saves)
	f.ops = append(f.ops, "save:"+url)
	return url, nil
}

func (f *fakeFileStorage) DeleteFile(filePath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "delete:"+filePath)
	return nil
}

func (f *fakeFileStorage) GetFullPath(fileURL string) string {
	return fileURL
}
