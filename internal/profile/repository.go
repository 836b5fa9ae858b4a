// File: internal/profile/repository.go
package profile

import (
	"context"
	"errors"
	"strings"

	"devconnect_backend/internal/common"
	"devconnect_backend/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for profile data operations.
type Repository interface {
	Create(ctx context.Context, profile *Profile) error
	Save(ctx context.Context, profile *Profile) error
	FindByUserID(ctx context.Context, userID uuid.UUID, preloadAssociations bool) (*Profile, error)
	FindAll(ctx context.Context) ([]Profile, error)
	DeleteProfileAndUser(ctx context.Context, userID uuid.UUID) error
	AddExperience(ctx context.Context, entry *Experience) error
	DeleteExperience(ctx context.Context, profileID, entryID uuid.UUID) error
	AddEducation(ctx context.Context, entry *Education) error
	DeleteEducation(ctx context.Context, profileID, entryID uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM profile repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// preloader applies the common preloads for profiles. Sub-collections come back
// most-recent-first, matching the front-insert ordering of the API.
func (r *gormRepository) preloader(query *gorm.DB) *gorm.DB {
	entryOrder := func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC, id")
	}
	return query.Preload("User").
		Preload("Experience", entryOrder).
		Preload("Education", entryOrder)
}

// Create inserts a new profile record.
func (r *gormRepository) Create(ctx context.Context, profile *Profile) error {
	err := r.db.WithContext(ctx).Create(profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "UNIQUE constraint") {
			return common.ErrConflict.WithDetails("A profile already exists for this user.")
		}
		return err
	}
	return nil
}

// Save persists changes to an existing profile record.
func (r *gormRepository) Save(ctx context.Context, profile *Profile) error {
	return r.db.WithContext(ctx).Omit("Experience", "Education", "User").Save(profile).Error
}

// FindByUserID retrieves the profile owned by the given user.
func (r *gormRepository) FindByUserID(ctx context.Context, userID uuid.UUID, preloadAssociations bool) (*Profile, error) {
	var p Profile
	query := r.db.WithContext(ctx)
	if preloadAssociations {
		query = r.preloader(query)
	}
	err := query.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Profile not found for this user.")
		}
		return nil, err
	}
	return &p, nil
}

// FindAll retrieves every profile with its owning user and sub-collections.
func (r *gormRepository) FindAll(ctx context.Context) ([]Profile, error) {
	var profiles []Profile
	err := r.preloader(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// DeleteProfileAndUser removes the user's profile (with its sub-collections)
// and the user record itself in a single transaction.
func (r *gormRepository) DeleteProfileAndUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p Profile
		err := tx.Where("user_id = ?", userID).First(&p).Error
		if err == nil {
			if err := tx.Where("profile_id = ?", p.ID).Delete(&Experience{}).Error; err != nil {
				return err
			}
			if err := tx.Where("profile_id = ?", p.ID).Delete(&Education{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&p).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Where("id = ?", userID).Delete(&user.User{}).Error
	})
}

// AddExperience inserts a new experience entry.
func (r *gormRepository) AddExperience(ctx context.Context, entry *Experience) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// DeleteExperience removes an experience entry by id within the given profile.
func (r *gormRepository) DeleteExperience(ctx context.Context, profileID, entryID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("profile_id = ? AND id = ?", profileID, entryID).
		Delete(&Experience{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Experience entry not found.")
	}
	return nil
}

// AddEducation inserts a new education entry.
func (r *gormRepository) AddEducation(ctx context.Context, entry *Education) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// DeleteEducation removes an education entry by id within the given profile.
func (r *gormRepository) DeleteEducation(ctx context.Context, profileID, entryID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("profile_id = ? AND id = ?", profileID, entryID).
		Delete(&Education{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Education entry not found.")
	}
	return nil
}
