package portal

import (
	"context"
	"sync"

	"github.com/yigit/placementhub/internal/app/models"
	"github.com/yigit/placementhub/internal/app/models/dto"
)

// listing is the state shared by the list pages: the last loaded items and the message
// of the last failure. A failed call never replaces items that were already loaded.
type listing[T any] struct {
	mu      sync.RWMutex
	items   []T
	lastErr string
}

func (l *listing[T]) refresh(ctx context.Context, fetch func(context.Context) ([]T, error)) error {
	items, err := fetch(ctx)
	if err != nil {
		l.fail(err)
		return err
	}
	l.mu.Lock()
	l.items = items
	l.lastErr = ""
	l.mu.Unlock()
	return nil
}

func (l *listing[T]) fail(err error) {
	l.mu.Lock()
	l.lastErr = ErrorMessage(err)
	l.mu.Unlock()
}

// Items returns a copy of the loaded items.
func (l *listing[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Err returns the message of the last failed call, or "".
func (l *listing[T]) Err() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastErr
}

// ExamAPI is the exam part of the server.
type ExamAPI interface {
	Exams(ctx context.Context, filter models.ExamFilter) ([]models.Exam, error)
	CreateExam(ctx context.Context, req dto.CreateExamRequest) (*models.Exam, error)
	CompleteExam(ctx context.Context, id int64) (*models.Exam, error)
}

// ExamBoard lists exams and lets faculty schedule and complete them.
type ExamBoard struct {
	listing[models.Exam]
	api    ExamAPI
	filter models.ExamFilter
}

// NewExamBoard creates a board showing exams that match filter.
func NewExamBoard(api ExamAPI, filter models.ExamFilter) *ExamBoard {
	return &ExamBoard{api: api, filter: filter}
}

// Load fetches the exams.
func (b *ExamBoard) Load(ctx context.Context) error {
	return b.refresh(ctx, func(ctx context.Context) ([]models.Exam, error) {
		return b.api.Exams(ctx, b.filter)
	})
}

// Add schedules an exam and reloads the list. Missing fields are reported as FieldErrors
// without calling the server.
func (b *ExamBoard) Add(ctx context.Context, req dto.CreateExamRequest) (*models.Exam, error) {
	if err := checkForm(req); err != nil {
		return nil, err
	}
	exam, err := b.api.CreateExam(ctx, req)
	if err != nil {
		b.fail(err)
		return nil, err
	}
	return exam, b.Load(ctx)
}

// Complete marks a scheduled exam completed and reloads the list.
func (b *ExamBoard) Complete(ctx context.Context, id int64) error {
	if _, err := b.api.CompleteExam(ctx, id); err != nil {
		b.fail(err)
		return err
	}
	return b.Load(ctx)
}

// DriveAPI is the placement drive part of the server.
type DriveAPI interface {
	Drives(ctx context.Context, status models.DriveStatus) ([]models.PlacementDrive, error)
	CreateDrive(ctx context.Context, req dto.CreateDriveRequest) (*models.PlacementDrive, error)
	CompleteDrive(ctx context.Context, id int64, placed int) (*models.PlacementDrive, error)
}

// DriveBoard lists placement drives of one status and lets faculty add and close them.
type DriveBoard struct {
	listing[models.PlacementDrive]
	api    DriveAPI
	status models.DriveStatus
}

// NewDriveBoard creates a board for drives with status; empty means all drives.
func NewDriveBoard(api DriveAPI, status models.DriveStatus) *DriveBoard {
	return &DriveBoard{api: api, status: status}
}

// Load fetches the drives.
func (b *DriveBoard) Load(ctx context.Context) error {
	return b.refresh(ctx, func(ctx context.Context) ([]models.PlacementDrive, error) {
		return b.api.Drives(ctx, b.status)
	})
}

// Add announces a drive and reloads the list.
func (b *DriveBoard) Add(ctx context.Context, req dto.CreateDriveRequest) (*models.PlacementDrive, error) {
	if err := checkForm(req); err != nil {
		return nil, err
	}
	drive, err := b.api.CreateDrive(ctx, req)
	if err != nil {
		b.fail(err)
		return nil, err
	}
	return drive, b.Load(ctx)
}

// Complete closes an upcoming drive with the number of placed students and reloads.
func (b *DriveBoard) Complete(ctx context.Context, id int64, placed int) error {
	if err := checkForm(dto.CompleteDriveRequest{NoPlacedStudents: &placed}); err != nil {
		return err
	}
	if _, err := b.api.CompleteDrive(ctx, id, placed); err != nil {
		b.fail(err)
		return err
	}
	return b.Load(ctx)
}

// ResourceAPI is the study resource part of the server.
type ResourceAPI interface {
	Resources(ctx context.Context) ([]models.Resource, error)
	CreateResource(ctx context.Context, req dto.CreateResourceRequest) (*models.Resource, error)
}

// ResourceShelf lists shared study resources.
type ResourceShelf struct {
	listing[models.Resource]
	api ResourceAPI
}

// NewResourceShelf creates an empty shelf.
func NewResourceShelf(api ResourceAPI) *ResourceShelf {
	return &ResourceShelf{api: api}
}

// Load fetches the resources.
func (s *ResourceShelf) Load(ctx context.Context) error {
	return s.refresh(ctx, s.api.Resources)
}

// Add shares a resource. Only Google Drive and Docs links are accepted.
func (s *ResourceShelf) Add(ctx context.Context, req dto.CreateResourceRequest) (*models.Resource, error) {
	if err := checkForm(req); err != nil {
		return nil, err
	}
	resource, err := s.api.CreateResource(ctx, req)
	if err != nil {
		s.fail(err)
		return nil, err
	}
	return resource, s.Load(ctx)
}
