// File: internal/profile/service.go
package profile

import (
	"context"
	"errors"
	"net/http"

	"devconnect_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for profile business logic.
type Service interface {
	GetOwn(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Upsert(ctx context.Context, userID uuid.UUID, req UpsertProfileRequest) (*Profile, error)
	GetAll(ctx context.Context) ([]Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	DeleteOwn(ctx context.Context, userID uuid.UUID) error
	AddExperience(ctx context.Context, userID uuid.UUID, req AddExperienceRequest) (*Profile, error)
	RemoveExperience(ctx context.Context, userID, entryID uuid.UUID) (*Profile, error)
	AddEducation(ctx context.Context, userID uuid.UUID, req AddEducationRequest) (*Profile, error)
	RemoveEducation(ctx context.Context, userID, entryID uuid.UUID) (*Profile, error)
}

// ServiceImplementation implements the profile Service interface.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new profile service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{repo: repo, logger: logger}
}

var (
	errNoProfile     = common.NewAPIError(http.StatusBadRequest, "NO_PROFILE", "There is no profile for the user")
	errProfileLookup = common.NewAPIError(http.StatusBadRequest, "PROFILE_NOT_FOUND", "Profile not found")
	errEntryNotFound = common.NewAPIError(http.StatusBadRequest, "ENTRY_NOT_FOUND", "Entry not found")
)

// isNotFound reports whether err is the repository's not-found error.
func isNotFound(err error) bool {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// GetOwn fetches the caller's profile joined with the owning user.
func (s *ServiceImplementation) GetOwn(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	p, err := s.repo.FindByUserID(ctx, userID, true)
	if err != nil {
		if isNotFound(err) {
			return nil, errNoProfile
		}
		return nil, err
	}
	return p, nil
}

// Upsert creates the caller's profile or patches the existing one. Fields
// absent from the request are left untouched on update and omitted on create.
func (s *ServiceImplementation) Upsert(ctx context.Context, userID uuid.UUID, req UpsertProfileRequest) (*Profile, error) {
	existing, err := s.repo.FindByUserID(ctx, userID, false)
	if err != nil && !isNotFound(err) {
		return nil, err
	}

	if existing == nil {
		p := &Profile{
			UserID: userID,
			Status: req.Status,
			Skills: SplitSkills(req.Skills),
		}
		applyPatch(p, req)
		if err := s.repo.Create(ctx, p); err != nil {
			s.logger.Error("Failed to create profile", zap.Error(err), zap.String("userID", userID.String()))
			return nil, err
		}
		s.logger.Info("Profile created", zap.String("userID", userID.String()))
		return s.repo.FindByUserID(ctx, userID, true)
	}

	existing.Status = req.Status
	existing.Skills = SplitSkills(req.Skills)
	applyPatch(existing, req)
	if err := s.repo.Save(ctx, existing); err != nil {
		s.logger.Error("Failed to update profile", zap.Error(err), zap.String("userID", userID.String()))
		return nil, err
	}
	return s.repo.FindByUserID(ctx, userID, true)
}

// applyPatch copies each optional field onto the profile only when present.
func applyPatch(p *Profile, req UpsertProfileRequest) {
	if req.Company != nil {
		p.Company = req.Company
	}
	if req.Website != nil {
		p.Website = req.Website
	}
	if req.Location != nil {
		p.Location = req.Location
	}
	if req.Bio != nil {
		p.Bio = req.Bio
	}
	if req.GithubUsername != nil {
		p.GithubUsername = req.GithubUsername
	}
	if req.Youtube != nil {
		p.Social.Youtube = req.Youtube
	}
	if req.Facebook != nil {
		p.Social.Facebook = req.Facebook
	}
	if req.Twitter != nil {
		p.Social.Twitter = req.Twitter
	}
	if req.Linkedin != nil {
		p.Social.Linkedin = req.Linkedin
	}
	if req.Instagram != nil {
		p.Social.Instagram = req.Instagram
	}
}

// GetAll returns every profile joined with its owning user.
func (s *ServiceImplementation) GetAll(ctx context.Context) ([]Profile, error) {
	return s.repo.FindAll(ctx)
}

// GetByUserID fetches the profile for an arbitrary user id.
func (s *ServiceImplementation) GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	p, err := s.repo.FindByUserID(ctx, userID, true)
	if err != nil {
		if isNotFound(err) {
			return nil, errProfileLookup
		}
		return nil, err
	}
	return p, nil
}

// DeleteOwn removes the caller's profile and user record.
func (s *ServiceImplementation) DeleteOwn(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.DeleteProfileAndUser(ctx, userID); err != nil {
		s.logger.Error("Failed to delete profile and user", zap.Error(err), zap.String("userID", userID.String()))
		return err
	}
	s.logger.Info("Profile and user deleted", zap.String("userID", userID.String()))
	return nil
}

// AddExperience inserts a new experience entry at the front of the caller's sequence.
func (s *ServiceImplementation) AddExperience(ctx context.Context, userID uuid.UUID, req AddExperienceRequest) (*Profile, error) {
	p, err := s.repo.FindByUserID(ctx, userID, false)
	if err != nil {
		if isNotFound(err) {
			return nil, errNoProfile
		}
		return nil, err
	}

	entry := &Experience{
		ProfileID:   p.ID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}
	if err := s.repo.AddExperience(ctx, entry); err != nil {
		s.logger.Error("Failed to add experience", zap.Error(err), zap.String("userID", userID.String()))
		return nil, err
	}
	return s.repo.FindByUserID(ctx, userID, true)
}

// RemoveExperience removes an experience entry by id from the caller's profile.
func (s *ServiceImplementation) RemoveExperience(ctx context.Context, userID, entryID uuid.UUID) (*Profile, error) {
	p, err := s.repo.FindByUserID(ctx, userID, false)
	if err != nil {
		if isNotFound(err) {
			return nil, errNoProfile
		}
		return nil, err
	}

	if err := s.repo.DeleteExperience(ctx, p.ID, entryID); err != nil {
		if isNotFound(err) {
			return nil, errEntryNotFound
		}
		return nil, err
	}
	return s.repo.FindByUserID(ctx, userID, true)
}

// AddEducation inserts a new education entry at the front of the caller's sequence.
func (s *ServiceImplementation) AddEducation(ctx context.Context, userID uuid.UUID, req AddEducationRequest) (*Profile, error) {
	p, err := s.repo.FindByUserID(ctx, userID, false)
	if err != nil {
		if isNotFound(err) {
			return nil, errNoProfile
		}
		return nil, err
	}

	entry := &Education{
		ProfileID:    p.ID,
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}
	if err := s.repo.AddEducation(ctx, entry); err != nil {
		s.logger.Error("Failed to add education", zap.Error(err), zap.String("userID", userID.String()))
		return nil, err
	}
	return s.repo.FindByUserID(ctx, userID, true)
}

// RemoveEducation removes an education entry by id from the caller's profile.
func (s *ServiceImplementation) RemoveEducation(ctx context.Context, userID, entryID uuid.UUID) (*Profile, error) {
	p, err := s.repo.FindByUserID(ctx, userID, false)
	if err != nil {
		if isNotFound(err) {
			return nil, errNoProfile
		}
		return nil, err
	}

	if err := s.repo.DeleteEducation(ctx, p.ID, entryID); err != nil {
		if isNotFound(err) {
			return nil, errEntryNotFound
		}
		return nil, err
	}
	return s.repo.FindByUserID(ctx, userID, true)
}
