// Package seed creates the data a fresh PlacementHub database needs.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	appModels "github.com/yigit/placementhub/internal/app/models"
	appRepos "github.com/yigit/placementhub/internal/app/repositories"
	"github.com/yigit/placementhub/internal/pkg/apperrors"
	"github.com/yigit/placementhub/internal/pkg/auth"
	"github.com/yigit/placementhub/internal/pkg/validation"
)

// DepartmentSeeder stores the built-in department catalogue
type DepartmentSeeder interface {
	Seed(ctx context.Context) error
}

// FacultyAccount is the optional first faculty user. It is skipped when Email is empty.
type FacultyAccount struct {
	Email    string
	Password string
	Name     string
}

// CreateDefaultData seeds the departments and the first faculty account if they don't
// exist. Every step is attempted; the collected errors are returned together.
func CreateDefaultData(ctx context.Context, departments DepartmentSeeder, userRepo appRepos.IUserRepository, admin FacultyAccount, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Departments/Faculty account)...")
	var finalErr error

	if err := departments.Seed(ctx); err != nil {
		lgr.Error().Err(err).Msg("Error seeding departments")
		finalErr = errors.Join(finalErr, err)
	}

	if err := createFacultyAccount(ctx, userRepo, admin, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

func createFacultyAccount(ctx context.Context, userRepo appRepos.IUserRepository, admin FacultyAccount, lgr zerolog.Logger) error {
	if admin.Email == "" {
		lgr.Debug().Msg("No seed faculty account configured, skipping")
		return nil
	}
	if problem := validation.PasswordProblem(admin.Password); problem != "" {
		lgr.Error().Str("email", admin.Email).Msg("Seed faculty password rejected: " + problem)
		return fmt.Errorf("seed faculty password: %s", problem)
	}

	exists, err := userRepo.EmailExists(ctx, admin.Email)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if faculty account exists")
		return err
	}
	if exists {
		lgr.Info().Msg("Faculty account already exists, skipping creation")
		return nil
	}

	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing faculty password")
		return err
	}

	name := admin.Name
	if name == "" {
		name = "Placement Officer"
	}

	// The profile is completed on first login like any other faculty signup
	user := &appModels.User{
		Email:        admin.Email,
		PasswordHash: hash,
		Name:         name,
		Role:         appModels.RoleFaculty,
		IsActive:     true,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating faculty account")
		return err
	}

	lgr.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("Default faculty account created successfully")
	return nil
}
