// Package service contains the application's business logic.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"devconnector/internal/cache"
	"devconnector/internal/models"
	"devconnector/internal/repository"

	"gorm.io/gorm"
)

// ProfileService implements profile upsert and experience/education mutations.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	db          *gorm.DB
}

// UpsertProfileInput carries the profile-edit payload. Pointer fields
// distinguish "absent" from "present but empty": absent fields are left
// untouched on update.
type UpsertProfileInput struct {
	UserID         uint
	Company        *string
	Location       *string
	Status         *string
	Skills         *string
	Website        *string
	Bio            *string
	GithubUsername *string
	Social         *models.SocialLinks
}

// AddExperienceInput carries a new work history entry.
type AddExperienceInput struct {
	UserID      uint
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// AddEducationInput carries a new education entry.
type AddEducationInput struct {
	UserID       uint
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

// NewProfileService returns a new ProfileService. The db handle is used for
// the account-deletion transaction.
func NewProfileService(profileRepo repository.ProfileRepository, db *gorm.DB) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, db: db}
}

// SplitSkills turns the comma-delimited skills input into an ordered
// sequence with surrounding whitespace trimmed from each element.
func SplitSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// UpsertProfile creates the caller's profile or partially updates it in
// place. Only presence of status and skills is validated; supplied fields
// overwrite, absent fields are preserved.
func (s *ProfileService) UpsertProfile(ctx context.Context, in UpsertProfileInput) (*models.Profile, error) {
	if in.Status == nil {
		return nil, models.NewValidationError("Status is required.")
	}
	if in.Skills == nil {
		return nil, models.NewValidationError("Skills is required")
	}

	existing, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		profile := &models.Profile{
			UserID: in.UserID,
			Status: *in.Status,
			Skills: SplitSkills(*in.Skills),
			Social: in.Social,
		}
		if in.Company != nil {
			profile.Company = *in.Company
		}
		if in.Location != nil {
			profile.Location = *in.Location
		}
		if in.Website != nil {
			profile.Website = *in.Website
		}
		if in.Bio != nil {
			profile.Bio = *in.Bio
		}
		if in.GithubUsername != nil {
			profile.GithubUsername = *in.GithubUsername
		}
		err := s.profileRepo.Create(ctx, profile)
		if err == nil {
			return s.profileRepo.GetByUserID(ctx, in.UserID)
		}
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != models.CodeConflict {
			return nil, err
		}
		// A concurrent first-time edit inserted the row between the lookup
		// and the create; apply the payload as an update instead.
	}

	fields := map[string]any{
		"status": *in.Status,
		"skills": SplitSkills(*in.Skills),
	}
	if in.Company != nil {
		fields["company"] = *in.Company
	}
	if in.Location != nil {
		fields["location"] = *in.Location
	}
	if in.Website != nil {
		fields["website"] = *in.Website
	}
	if in.Bio != nil {
		fields["bio"] = *in.Bio
	}
	if in.GithubUsername != nil {
		fields["github_username"] = *in.GithubUsername
	}
	if in.Social != nil {
		fields["social"] = in.Social
	}

	if err := s.profileRepo.UpdateFields(ctx, in.UserID, fields); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, in.UserID)
}

// GetMyProfile returns the caller's profile or a validation error when none
// exists yet (the original reported this as a 400, not a 404).
func (s *ProfileService) GetMyProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewValidationError("Profile not found for the user.")
	}
	return profile, nil
}

// GetProfileByUserID returns another user's profile.
func (s *ProfileService) GetProfileByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewValidationError("Profile not found.")
	}
	return profile, nil
}

// ListProfiles returns all profiles, paginated.
func (s *ProfileService) ListProfiles(ctx context.Context, limit, offset int) ([]*models.Profile, error) {
	return s.profileRepo.List(ctx, limit, offset)
}

// AddExperience prepends a work history entry to the caller's profile.
func (s *ProfileService) AddExperience(ctx context.Context, in AddExperienceInput) (*models.Profile, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required.")
	}
	if in.Company == "" {
		return nil, models.NewValidationError("Company is required.")
	}
	if in.From.IsZero() {
		return nil, models.NewValidationError("From is required.")
	}

	profile, err := s.requireProfile(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	exp := &models.Experience{
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}
	if err := s.profileRepo.AddExperience(ctx, profile.ID, exp); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, in.UserID)
}

// RemoveExperience removes an entry by ID from the caller's own profile.
// The profile is resolved from the caller's ID, so cross-user deletion is
// structurally impossible.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	profile, err := s.requireProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.RemoveExperience(ctx, profile.ID, expID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// AddEducation prepends an education entry to the caller's profile.
func (s *ProfileService) AddEducation(ctx context.Context, in AddEducationInput) (*models.Profile, error) {
	if in.School == "" {
		return nil, models.NewValidationError("School is required.")
	}
	if in.Degree == "" {
		return nil, models.NewValidationError("Degree is required.")
	}
	if in.FieldOfStudy == "" {
		return nil, models.NewValidationError("Field of Study is required.")
	}
	if in.From.IsZero() {
		return nil, models.NewValidationError("From is required.")
	}

	profile, err := s.requireProfile(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	edu := &models.Education{
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}
	if err := s.profileRepo.AddEducation(ctx, profile.ID, edu); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, in.UserID)
}

// RemoveEducation removes an entry by ID from the caller's own profile.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	profile, err := s.requireProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.RemoveEducation(ctx, profile.ID, eduID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// DeleteAccount removes the caller's profile, posts and user record in one
// transaction. Post deletion cascades to comments and likes through the
// foreign keys.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uint) error {
	var postIDs []uint
	if err := s.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("user_id = ?", userID).
		Pluck("id", &postIDs).Error; err != nil {
		return models.NewInternalError(err)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidateUser(ctx, userID)
	cache.InvalidateProfile(ctx, userID)
	for _, id := range postIDs {
		cache.InvalidatePost(ctx, id)
	}
	return nil
}

func (s *ProfileService) requireProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Profile", userID)
	}
	return profile, nil
}
