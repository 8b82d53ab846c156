package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/recruiting-pipeline/internal/auth"
	"github.com/spec-kit/recruiting-pipeline/internal/config"
	"github.com/spec-kit/recruiting-pipeline/internal/domain"
	"github.com/spec-kit/recruiting-pipeline/internal/repository"
	apperrors "github.com/spec-kit/recruiting-pipeline/pkg/util/errorutil"
)

// StaffService manages the staff directory and reporting lines.
type StaffService struct {
	staff      repository.StaffRepository
	bcryptCost int
}

// StaffListFilters define listing parameters.
type StaffListFilters struct {
	Designation *domain.Designation
	ReporterID  *string
	Active      *bool
	Limit       int
	Offset      int
}

// NewStaffService constructs the service.
func NewStaffService(cfg config.Config, staff repository.StaffRepository) *StaffService {
	return &StaffService{
		staff:      staff,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

func requireAdmin(actor *domain.StaffUser) error {
	if actor == nil || actor.Designation != domain.DesignationAdmin {
		return apperrors.NewForbidden("admin designation required")
	}
	return nil
}

// CreateStaffUser adds a new staff account.
func (s *StaffService) CreateStaffUser(ctx context.Context, actor *domain.StaffUser, name, email, password string, designation domain.Designation, reporterID *string) (*domain.StaffUser, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if existing, err := s.staff.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.NewConflict("staff email already exists", map[string]any{"email": email})
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, apperrors.MapError(err)
	}

	if err := s.validateReporter(ctx, reporterID, ""); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	staff := &domain.StaffUser{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Designation:  designation,
		ReporterID:   reporterID,
		Active:       true,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

// ListStaffUsers lists staff with filters.
func (s *StaffService) ListStaffUsers(ctx context.Context, actor *domain.StaffUser, filters StaffListFilters) ([]domain.StaffUser, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	repoFilter := repository.StaffFilter{
		Designation: filters.Designation,
		ReporterID:  filters.ReporterID,
		Active:      filters.Active,
		Limit:       filters.Limit,
		Offset:      filters.Offset,
	}
	return s.staff.List(ctx, repoFilter)
}

// GetStaffUserByID fetches staff.
func (s *StaffService) GetStaffUserByID(ctx context.Context, actor *domain.StaffUser, id string) (*domain.StaffUser, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.staff.GetByID(ctx, id)
}

// UpdateStaffUser updates staff details.
func (s *StaffService) UpdateStaffUser(ctx context.Context, actor *domain.StaffUser, staffID, name, email string, designation domain.Designation, reporterID *string, active bool) (*domain.StaffUser, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	staff, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if email != "" && email != staff.Email {
		if existing, err := s.staff.GetByEmail(ctx, email); err == nil && existing != nil && existing.ID != staff.ID {
			return nil, apperrors.NewConflict("staff email already exists", map[string]any{"email": email})
		} else if err != nil && err != pgx.ErrNoRows {
			return nil, apperrors.MapError(err)
		}
	}
	if err := s.validateReporter(ctx, reporterID, staffID); err != nil {
		return nil, err
	}

	staff.Name = name
	staff.Email = email
	staff.Designation = designation
	staff.ReporterID = reporterID
	staff.Active = active

	if err := s.staff.Update(ctx, staff); err != nil {
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

// validateReporter checks the reporting line target exists and is not the
// staff member itself.
func (s *StaffService) validateReporter(ctx context.Context, reporterID *string, selfID string) error {
	if reporterID == nil || *reporterID == "" {
		return nil
	}
	if selfID != "" && *reporterID == selfID {
		return apperrors.NewValidationError("staff cannot report to themselves", map[string]any{"reporter_id": *reporterID})
	}
	if _, err := s.staff.GetByID(ctx, *reporterID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewValidationError("reporter not found", map[string]any{"reporter_id": *reporterID})
		}
		return apperrors.MapError(err)
	}
	return nil
}
