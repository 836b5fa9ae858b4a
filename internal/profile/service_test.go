// File: internal/profile/service_test.go
package profile

import (
	"context"
	"net/http"
	"sort"
	"testing"

	"devconnect_backend/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProfileRepository is a stateful in-memory mock for the Repository
// interface, keyed by owning user id.
type MockProfileRepository struct {
	profiles map[uuid.UUID]*Profile

	SaveCalls   int
	CreateCalls int
}

var _ Repository = (*MockProfileRepository)(nil)

func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{profiles: make(map[uuid.UUID]*Profile)}
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *Profile) error {
	m.CreateCalls++
	if _, exists := m.profiles[profile.UserID]; exists {
		return common.ErrConflict.WithDetails("A profile already exists for this user.")
	}
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	cp := *profile
	m.profiles[profile.UserID] = &cp
	return nil
}

func (m *MockProfileRepository) Save(ctx context.Context, profile *Profile) error {
	m.SaveCalls++
	cp := *profile
	m.profiles[profile.UserID] = &cp
	return nil
}

func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID, preloadAssociations bool) (*Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, common.ErrNotFound.WithDetails("Profile not found for this user.")
	}
	cp := *p
	if preloadAssociations {
		// Entries come back most-recent-first.
		sortEntriesDesc(&cp)
	}
	return &cp, nil
}

func sortEntriesDesc(p *Profile) {
	sort.SliceStable(p.Experience, func(i, j int) bool {
		return p.Experience[i].CreatedAt.After(p.Experience[j].CreatedAt)
	})
	sort.SliceStable(p.Education, func(i, j int) bool {
		return p.Education[i].CreatedAt.After(p.Education[j].CreatedAt)
	})
}

func (m *MockProfileRepository) FindAll(ctx context.Context) ([]Profile, error) {
	out := make([]Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (m *MockProfileRepository) DeleteProfileAndUser(ctx context.Context, userID uuid.UUID) error {
	delete(m.profiles, userID)
	return nil
}

func (m *MockProfileRepository) AddExperience(ctx context.Context, entry *Experience) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	for _, p := range m.profiles {
		if p.ID == entry.ProfileID {
			p.Experience = append(p.Experience, *entry)
			return nil
		}
	}
	return common.ErrNotFound
}

func (m *MockProfileRepository) DeleteExperience(ctx context.Context, profileID, entryID uuid.UUID) error {
	for _, p := range m.profiles {
		if p.ID != profileID {
			continue
		}
		for i, e := range p.Experience {
			if e.ID == entryID {
				p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
				return nil
			}
		}
	}
	return common.ErrNotFound.WithDetails("Experience entry not found.")
}

func (m *MockProfileRepository) AddEducation(ctx context.Context, entry *Education) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	for _, p := range m.profiles {
		if p.ID == entry.ProfileID {
			p.Education = append(p.Education, *entry)
			return nil
		}
	}
	return common.ErrNotFound
}

func (m *MockProfileRepository) DeleteEducation(ctx context.Context, profileID, entryID uuid.UUID) error {
	for _, p := range m.profiles {
		if p.ID != profileID {
			continue
		}
		for i, e := range p.Education {
			if e.ID == entryID {
				p.Education = append(p.Education[:i], p.Education[i+1:]...)
				return nil
			}
		}
	}
	return common.ErrNotFound.WithDetails("Education entry not found.")
}

func newTestService(repo Repository) *ServiceImplementation {
	logger, _ := zap.NewDevelopment()
	return NewService(repo, logger)
}

func strPtr(s string) *string { return &s }

func TestUpsert_CreatesProfile(t *testing.T) {
	repo := NewMockProfileRepository()
	svc := newTestService(repo)
	userID := uuid.New()

	p, err := svc.Upsert(context.Background(), userID, UpsertProfileRequest{
		Status:  "Developer",
		Skills:  "node, react , css",
		Company: strPtr("Acme"),
	})
	require.NoError(t, err)

	assert.Equal(t, userID, p.UserID)
	assert.Equal(t, "Developer", p.Status)
	assert.Equal(t, []string{"node", "react", "css"}, []string(p.Skills))
	require.NotNil(t, p.Company)
	assert.Equal(t, "Acme", *p.Company)
	assert.Nil(t, p.Bio)
	assert.Equal(t, 1, repo.CreateCalls)
}

func TestUpsert_PatchLeavesAbsentFieldsUntouched(t *testing.T) {
	repo := NewMockProfileRepository()
	svc := newTestService(repo)
	userID := uuid.New()

	_, err := svc.Upsert(context.Background(), userID, UpsertProfileRequest{
		Status:  "Developer",
		Skills:  "node",
		Company: strPtr("Acme"),
		Bio:     strPtr("First bio"),
		Twitter: strPtr("https://twitter.com/john"),
	})
	require.NoError(t, err)

	// Second upsert omits company and twitter; they must survive.
	p, err := svc.Upsert(context.Background(), userID, UpsertProfileRequest{
		Status: "Senior Developer",
		Skills: "node,go",
		Bio:    strPtr("Updated bio"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Senior Developer", p.Status)
	assert.Equal(t, []string{"node", "go"}, []string(p.Skills))
	require.NotNil(t, p.Company)
	assert.Equal(t, "Acme", *p.Company)
	require.NotNil(t, p.Bio)
	assert.Equal(t, "Updated bio", *p.Bio)
	require.NotNil(t, p.Social.Twitter)
	assert.Equal(t, "https://twitter.com/john", *p.Social.Twitter)
	assert.Equal(t, 1, repo.CreateCalls, "second upsert must update, not create")
	assert.GreaterOrEqual(t, repo.SaveCalls, 1)
}

func TestGetOwn_NoProfile(t *testing.T) {
	svc := newTestService(NewMockProfileRepository())

	_, err := svc.GetOwn(context.Background(), uuid.New())
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "There is no profile for the user", apiErr.Message)
}

func TestGetByUserID_NotFound(t *testing.T) {
	svc := newTestService(NewMockProfileRepository())

	_, err := svc.GetByUserID(context.Background(), uuid.New())
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Profile not found", apiErr.Message)
}

func TestAddExperience_RequiresProfile(t *testing.T) {
	svc := newTestService(NewMockProfileRepository())

	_, err := svc.AddExperience(context.Background(), uuid.New(), AddExperienceRequest{
		Title:   "Engineer",
		Company: "Acme",
	})
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "There is no profile for the user", apiErr.Message)
}

func TestExperience_AddAndRemove(t *testing.T) {
	repo := NewMockProfileRepository()
	svc := newTestService(repo)
	userID := uuid.New()

	_, err := svc.Upsert(context.Background(), userID, UpsertProfileRequest{
		Status: "Developer",
		Skills: "go",
	})
	require.NoError(t, err)

	p, err := svc.AddExperience(context.Background(), userID, AddExperienceRequest{
		Title:   "Engineer",
		Company: "Acme",
	})
	require.NoError(t, err)
	require.Len(t, p.Experience, 1)
	entryID := p.Experience[0].ID
	require.NotEqual(t, uuid.Nil, entryID)

	p, err = svc.RemoveExperience(context.Background(), userID, entryID)
	require.NoError(t, err)
	assert.Empty(t, p.Experience)

	// Removing the same entry again answers with the entry-not-found error.
	_, err = svc.RemoveExperience(context.Background(), userID, entryID)
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Entry not found", apiErr.Message)
}

func TestEducation_AddAndRemove(t *testing.T) {
	repo := NewMockProfileRepository()
	svc := newTestService(repo)
	userID := uuid.New()

	_, err := svc.Upsert(context.Background(), userID, UpsertProfileRequest{
		Status: "Student",
		Skills: "go",
	})
	require.NoError(t, err)

	p, err := svc.AddEducation(context.Background(), userID, AddEducationRequest{
		School:       "State University",
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
	})
	require.NoError(t, err)
	require.Len(t, p.Education, 1)
	entryID := p.Education[0].ID

	p, err = svc.RemoveEducation(context.Background(), userID, entryID)
	require.NoError(t, err)
	assert.Empty(t, p.Education)

	_, err = svc.RemoveEducation(context.Background(), userID, entryID)
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Entry not found", apiErr.Message)
}

func TestDeleteOwn(t *testing.T) {
	repo := NewMockProfileRepository()
	svc := newTestService(repo)
	userID := uuid.New()

	_, err := svc.Upsert(context.Background(), userID, UpsertProfileRequest{
		Status: "Developer",
		Skills: "go",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOwn(context.Background(), userID))

	_, err = svc.GetOwn(context.Background(), userID)
	assert.Error(t, err)
}
