package services

import (
	"context"
	"sync"
	"time"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/repositories"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/helpers"
)

type fakeUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[int64]*models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email = repositories.NormalizeEmail(email)
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, userID int64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUsers) UpdateLastLogin(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[userID]; ok {
		now := time.Now()
		u.LastLoginAt = &now
	}
	return nil
}

type fakeToken struct {
	userID  int64
	expiry  time.Time
	revoked bool
}

type fakeTokens struct {
	mu     sync.Mutex
	tokens map[string]*fakeToken
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{tokens: map[string]*fakeToken{}}
}

func (f *fakeTokens) CreateToken(_ context.Context, token string, userID int64, expiry time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = &fakeToken{userID: userID, expiry: expiry}
	return nil
}

func (f *fakeTokens) GetTokenByValue(_ context.Context, token string) (int64, time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[token]
	if !ok {
		return 0, time.Time{}, apperrors.ErrTokenNotFound
	}
	if t.revoked {
		return 0, time.Time{}, apperrors.ErrTokenRevoked
	}
	return t.userID, t.expiry, nil
}

func (f *fakeTokens) RevokeToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	t.revoked = true
	return nil
}

func (f *fakeTokens) RevokeAllUserTokens(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.userID == userID {
			t.revoked = true
		}
	}
	return nil
}

func (f *fakeTokens) CleanupExpiredTokens(context.Context) (int64, error) { return 0, nil }

type fakeOTPs struct {
	mu         sync.Mutex
	challenges map[string]*models.OTPChallenge
}

func newFakeOTPs() *fakeOTPs {
	return &fakeOTPs{challenges: map[string]*models.OTPChallenge{}}
}

func (f *fakeOTPs) Upsert(_ context.Context, c *models.OTPChallenge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	cp.Attempts = 0
	f.challenges[c.Email] = &cp
	return nil
}

func (f *fakeOTPs) Get(_ context.Context, email string) (*models.OTPChallenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.challenges[email]
	if !ok {
		return nil, apperrors.ErrOTPNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeOTPs) IncrementAttempts(_ context.Context, email string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.challenges[email]
	if !ok {
		return 0, apperrors.ErrOTPNotFound
	}
	c.Attempts++
	return c.Attempts, nil
}

func (f *fakeOTPs) Delete(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.challenges, email)
	return nil
}

func (f *fakeOTPs) CleanupExpired(context.Context) (int64, error) { return 0, nil }

type fakeResets struct {
	mu     sync.Mutex
	tokens map[string]*models.PasswordResetToken
}

func newFakeResets() *fakeResets {
	return &fakeResets{tokens: map[string]*models.PasswordResetToken{}}
}

func (f *fakeResets) CreateToken(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = &models.PasswordResetToken{Token: token, UserID: userID, ExpiresAt: expiresAt}
	return nil
}

func (f *fakeResets) GetToken(_ context.Context, token string) (*models.PasswordResetToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[token]
	if !ok {
		return nil, apperrors.ErrInvalidPasswordResetToken
	}
	cp := *t
	return &cp, nil
}

func (f *fakeResets) MarkTokenAsUsed(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrInvalidPasswordResetToken
	}
	if t.UsedAt != nil {
		return apperrors.ErrPasswordResetTokenUsed
	}
	now := time.Now()
	t.UsedAt = &now
	return nil
}

func (f *fakeResets) CleanupExpired(context.Context) (int64, error) { return 0, nil }

type fakePlacements struct {
	mu      sync.Mutex
	records map[string]*models.PlacementRecord
}

func newFakePlacements() *fakePlacements {
	return &fakePlacements{records: map[string]*models.PlacementRecord{}}
}

func (f *fakePlacements) List(context.Context) ([]models.PlacementRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.PlacementRecord{}
	for _, r := range f.records {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakePlacements) GetByYear(_ context.Context, year string) (*models.PlacementRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[year]
	if !ok {
		return nil, apperrors.ErrPlacementRecordNotFound
	}
	cp := *r
	cp.Departments = append([]models.DepartmentStat(nil), r.Departments...)
	return &cp, nil
}

func (f *fakePlacements) Create(_ context.Context, rec *models.PlacementRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[rec.AcademicYear]; ok {
		return apperrors.ErrPlacementRecordExists
	}
	cp := *rec
	f.records[rec.AcademicYear] = &cp
	return nil
}

func (f *fakePlacements) Update(_ context.Context, rec *models.PlacementRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[rec.AcademicYear]; !ok {
		return apperrors.ErrPlacementRecordNotFound
	}
	cp := *rec
	f.records[rec.AcademicYear] = &cp
	return nil
}

func (f *fakePlacements) Delete(_ context.Context, year string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[year]; !ok {
		return apperrors.ErrPlacementRecordNotFound
	}
	delete(f.records, year)
	return nil
}

type fakeExams struct {
	exams map[int64]*models.Exam
	next  int64
}

func newFakeExams() *fakeExams { return &fakeExams{exams: map[int64]*models.Exam{}} }

func (f *fakeExams) List(_ context.Context, filter models.ExamFilter) ([]models.Exam, error) {
	var out []models.Exam
	for _, e := range f.exams {
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeExams) GetByID(_ context.Context, id int64) (*models.Exam, error) {
	e, ok := f.exams[id]
	if !ok {
		return nil, apperrors.ErrExamNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeExams) Create(_ context.Context, e *models.Exam) error {
	f.next++
	e.ID = f.next
	cp := *e
	f.exams[e.ID] = &cp
	return nil
}

func (f *fakeExams) Update(_ context.Context, e *models.Exam) error {
	cur, ok := f.exams[e.ID]
	if !ok {
		return apperrors.ErrExamNotFound
	}
	if cur.Status != models.ExamScheduled {
		return apperrors.ErrInvalidTransition
	}
	cp := *e
	f.exams[e.ID] = &cp
	return nil
}

func (f *fakeExams) UpdateStatus(_ context.Context, id int64, from, to models.ExamStatus) error {
	e, ok := f.exams[id]
	if !ok || e.Status != from {
		return apperrors.ErrInvalidTransition
	}
	e.Status = to
	return nil
}

type fakeDrives struct {
	drives map[int64]*models.PlacementDrive
	next   int64
}

func newFakeDrives() *fakeDrives { return &fakeDrives{drives: map[int64]*models.PlacementDrive{}} }

func (f *fakeDrives) List(_ context.Context, status models.DriveStatus) ([]models.PlacementDrive, error) {
	var out []models.PlacementDrive
	for _, d := range f.drives {
		if status != "" && d.Status != status {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeDrives) GetByID(_ context.Context, id int64) (*models.PlacementDrive, error) {
	d, ok := f.drives[id]
	if !ok {
		return nil, apperrors.ErrDriveNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDrives) Create(_ context.Context, d *models.PlacementDrive) error {
	f.next++
	d.ID = f.next
	cp := *d
	f.drives[d.ID] = &cp
	return nil
}

func (f *fakeDrives) Complete(_ context.Context, id int64, n int) error {
	d, ok := f.drives[id]
	if !ok || d.Status != models.DriveUpcoming {
		return apperrors.ErrInvalidTransition
	}
	d.Status = models.DriveCompleted
	d.NoPlacedStudents = &n
	return nil
}

type fakeResources struct {
	items []models.Resource
}

func (f *fakeResources) List(context.Context) ([]models.Resource, error) { return f.items, nil }

func (f *fakeResources) Create(_ context.Context, r *models.Resource) error {
	r.ID = int64(len(f.items) + 1)
	f.items = append(f.items, *r)
	return nil
}

type fakeStudents struct {
	profiles []models.StudentProfile
}

func (f *fakeStudents) Create(_ context.Context, p *models.StudentProfile) error {
	for _, existing := range f.profiles {
		if existing.StudentID == p.StudentID {
			return apperrors.ErrStudentIDExists
		}
		if existing.UserID == p.UserID {
			return apperrors.ErrProfileCompleted
		}
	}
	f.profiles = append(f.profiles, *p)
	return nil
}

func (f *fakeStudents) GetByUserID(_ context.Context, userID int64) (*models.StudentProfile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			cp := p
			return &cp, nil
		}
	}
	return nil, apperrors.ErrProfileNotFound
}

func (f *fakeStudents) Update(_ context.Context, p *models.StudentProfile) error {
	for i := range f.profiles {
		if f.profiles[i].UserID == p.UserID {
			f.profiles[i] = *p
			return nil
		}
	}
	return apperrors.ErrProfileNotFound
}

func (f *fakeStudents) List(ctx context.Context, filter models.StudentFilter, page helpers.PageRequest) ([]models.StudentProfile, int64, error) {
	all, _ := f.ListAll(ctx, filter)
	start := int(page.Offset())
	if start > len(all) {
		start = len(all)
	}
	end := start + int(page.Limit())
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (f *fakeStudents) ListAll(_ context.Context, filter models.StudentFilter) ([]models.StudentProfile, error) {
	var out []models.StudentProfile
	for _, p := range f.profiles {
		if filter.Batch != "" && p.Batch != filter.Batch {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// recordingNotifier keeps every notification it was handed
type recordingNotifier struct {
	mu   sync.Mutex
	sent []models.Notification
}

func (r *recordingNotifier) Notify(n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

type fakeMailer struct {
	otps   map[string]string
	resets map[string]string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{otps: map[string]string{}, resets: map[string]string{}}
}

func (m *fakeMailer) SendOTP(to, code string, _ time.Duration) error {
	m.otps[to] = code
	return nil
}

func (m *fakeMailer) SendPasswordReset(to, url string) error {
	m.resets[to] = url
	return nil
}
