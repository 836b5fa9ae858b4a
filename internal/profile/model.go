// File: internal/profile/model.go
package profile

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"devconnect_backend/internal/common"
	"devconnect_backend/internal/user"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Date is a day-granular timestamp. Requests carry dates as "2006-01-02";
// RFC3339 is accepted too so clients re-submitting API output round-trip.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// UnmarshalJSON implements json.Unmarshaler for Date.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected %s or RFC3339", s, dateLayout)
	}
	d.Time = t
	return nil
}

// MarshalJSON implements json.Marshaler for Date.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// Value implements the driver.Valuer interface for Date.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

// Scan implements the sql.Scanner interface for Date.
func (d *Date) Scan(value interface{}) error {
	if value == nil {
		d.Time = time.Time{}
		return nil
	}
	switch v := value.(type) {
	case time.Time:
		d.Time = v
		return nil
	case string:
		for _, layout := range []string{dateLayout, time.RFC3339, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
			if t, err := time.Parse(layout, v); err == nil {
				d.Time = t
				return nil
			}
		}
		return fmt.Errorf("failed to scan Date from %q", v)
	default:
		return fmt.Errorf("failed to scan Date: unsupported type %T", value)
	}
}

// SocialLinks holds the optional social network URLs of a profile.
type SocialLinks struct {
	Youtube   *string `json:"youtube,omitempty" gorm:"type:text"`
	Facebook  *string `json:"facebook,omitempty" gorm:"type:text"`
	Twitter   *string `json:"twitter,omitempty" gorm:"type:text"`
	Linkedin  *string `json:"linkedin,omitempty" gorm:"type:text"`
	Instagram *string `json:"instagram,omitempty" gorm:"type:text"`
}

// Profile represents the profile model in the database. Exactly zero or one
// profile exists per user, enforced by lookup-then-create-or-update.
type Profile struct {
	common.BaseModel
	UserID         uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;uniqueIndex"`
	User           *user.User     `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Company        *string        `json:"company,omitempty" gorm:"type:varchar(100)"`
	Website        *string        `json:"website,omitempty" gorm:"type:text"`
	Location       *string        `json:"location,omitempty" gorm:"type:varchar(100)"`
	Bio            *string        `json:"bio,omitempty" gorm:"type:text"`
	Status         string         `json:"status" gorm:"type:varchar(100);not null"`
	GithubUsername *string        `json:"githubusername,omitempty" gorm:"type:varchar(100)"`
	Skills         pq.StringArray `json:"skills" gorm:"type:text[]"`
	Social         SocialLinks    `json:"social" gorm:"embedded;embeddedPrefix:social_"`
	Experience     []Experience   `json:"experience" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE;"`
	Education      []Education    `json:"education" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE;"`
}

// TableName specifies the table name for the Profile model.
func (Profile) TableName() string {
	return "profiles"
}

// Experience is a career entry owned by a profile, most-recent-first.
type Experience struct {
	common.BaseModel
	ProfileID   uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	Title       string    `json:"title" gorm:"type:varchar(100);not null"`
	Company     string    `json:"company" gorm:"type:varchar(100);not null"`
	Location    *string   `json:"location,omitempty" gorm:"type:varchar(100)"`
	From        Date      `json:"from" gorm:"type:timestamptz;not null"`
	To          *Date     `json:"to,omitempty" gorm:"type:timestamptz"`
	Current     bool      `json:"current" gorm:"not null;default:false"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
}

// TableName specifies the table name for the Experience model.
func (Experience) TableName() string {
	return "experiences"
}

// Education is a schooling entry owned by a profile, most-recent-first.
type Education struct {
	common.BaseModel
	ProfileID    uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	School       string    `json:"school" gorm:"type:varchar(100);not null"`
	Degree       string    `json:"degree" gorm:"type:varchar(100);not null"`
	FieldOfStudy string    `json:"fieldofstudy" gorm:"type:varchar(100);not null"`
	From         Date      `json:"from" gorm:"type:timestamptz;not null"`
	To           *Date     `json:"to,omitempty" gorm:"type:timestamptz"`
	Current      bool      `json:"current" gorm:"not null;default:false"`
	Description  *string   `json:"description,omitempty" gorm:"type:text"`
}

// TableName specifies the table name for the Education model.
func (Education) TableName() string {
	return "educations"
}

// --- DTOs (Data Transfer Objects) for API requests/responses ---

// UpsertProfileRequest carries the create-or-update payload. Optional fields
// are pointers: nil means absent, left untouched on update and omitted on create.
type UpsertProfileRequest struct {
	Status         string  `json:"status" binding:"required"`
	Skills         string  `json:"skills" binding:"required"`
	Company        *string `json:"company,omitempty"`
	Website        *string `json:"website,omitempty"`
	Location       *string `json:"location,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	GithubUsername *string `json:"githubusername,omitempty"`
	Youtube        *string `json:"youtube,omitempty"`
	Facebook       *string `json:"facebook,omitempty"`
	Twitter        *string `json:"twitter,omitempty"`
	Linkedin       *string `json:"linkedin,omitempty"`
	Instagram      *string `json:"instagram,omitempty"`
}

// AddExperienceRequest carries a new experience entry.
type AddExperienceRequest struct {
	Title       string  `json:"title" binding:"required"`
	Company     string  `json:"company" binding:"required"`
	Location    *string `json:"location,omitempty"`
	From        Date    `json:"from" binding:"required"`
	To          *Date   `json:"to,omitempty"`
	Current     bool    `json:"current"`
	Description *string `json:"description,omitempty"`
}

// AddEducationRequest carries a new education entry.
type AddEducationRequest struct {
	School       string  `json:"school" binding:"required"`
	Degree       string  `json:"degree" binding:"required"`
	FieldOfStudy string  `json:"fieldofstudy" binding:"required"`
	From         Date    `json:"from" binding:"required"`
	To           *Date   `json:"to,omitempty"`
	Current      bool    `json:"current"`
	Description  *string `json:"description,omitempty"`
}

// UserSummary is the slice of the owning user joined onto profile responses.
type UserSummary struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
}

// ProfileResponse is a Profile joined with its owning user's name and avatar.
type ProfileResponse struct {
	Profile
	User *UserSummary `json:"user,omitempty"`
}

// ToProfileResponse converts a Profile model (with its User preloaded, if any)
// to a ProfileResponse DTO.
func ToProfileResponse(p *Profile) ProfileResponse {
	resp := ProfileResponse{Profile: *p}
	if p.User != nil {
		resp.User = &UserSummary{
			ID:     p.User.ID,
			Name:   p.User.Name,
			Avatar: p.User.AvatarURL,
		}
	}
	return resp
}

// SplitSkills normalizes the comma-separated skills input: split on commas,
// each element trimmed of surrounding whitespace.
func SplitSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
