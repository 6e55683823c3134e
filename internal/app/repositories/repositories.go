package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository               *UserRepository
	TokenRepository              *TokenRepository
	OTPRepository                *OTPRepository
	PasswordResetTokenRepository *PasswordResetTokenRepository
	StudentRepository            *StudentRepository
	ProfileRepository            *ProfileRepository
	PlacementRepository          *PlacementRepository
	ChartRepository              *ChartRepository
	ExamRepository               *ExamRepository
	DriveRepository              *DriveRepository
	ResourceRepository           *ResourceRepository
	FeedbackRepository           *FeedbackRepository
	DepartmentRepository         *DepartmentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:               NewUserRepository(db),
		TokenRepository:              NewTokenRepository(db),
		OTPRepository:                NewOTPRepository(db),
		PasswordResetTokenRepository: NewPasswordResetTokenRepository(db),
		StudentRepository:            NewStudentRepository(db),
		ProfileRepository:            NewProfileRepository(db),
		PlacementRepository:          NewPlacementRepository(db),
		ChartRepository:              NewChartRepository(db),
		ExamRepository:               NewExamRepository(db),
		DriveRepository:              NewDriveRepository(db),
		ResourceRepository:           NewResourceRepository(db),
		FeedbackRepository:           NewFeedbackRepository(db),
		DepartmentRepository:         NewDepartmentRepository(db),
	}
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// nullableID maps the zero id to SQL NULL for optional foreign keys
func nullableID(id int64) interface{} {
	if id == 0 {
		return nil
	}
	return id
}
