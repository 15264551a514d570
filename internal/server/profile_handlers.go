package server

import (
	"devconnector/internal/models"
	"devconnector/internal/service"

	"github.com/gofiber/fiber/v2"
)

type upsertProfileRequest struct {
	Company        *string `json:"company"`
	Location       *string `json:"location"`
	Status         *string `json:"status"`
	Skills         *string `json:"skills"`
	Website        *string `json:"website"`
	Bio            *string `json:"bio"`
	GithubUsername *string `json:"githubusername"`
	Youtube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	Linkedin       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

// social collects the flat social-link fields into the stored struct, or nil
// when none were supplied.
func (r *upsertProfileRequest) social() *models.SocialLinks {
	if r.Youtube == nil && r.Twitter == nil && r.Facebook == nil && r.Linkedin == nil && r.Instagram == nil {
		return nil
	}
	links := &models.SocialLinks{}
	if r.Youtube != nil {
		links.Youtube = *r.Youtube
	}
	if r.Twitter != nil {
		links.Twitter = *r.Twitter
	}
	if r.Facebook != nil {
		links.Facebook = *r.Facebook
	}
	if r.Linkedin != nil {
		links.LinkedIn = *r.Linkedin
	}
	if r.Instagram != nil {
		links.Instagram = *r.Instagram
	}
	return links
}

// UpsertProfile handles POST /api/profile
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var req upsertProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileSvc.UpsertProfile(c.UserContext(), service.UpsertProfileInput{
		UserID:         currentUserID(c),
		Company:        req.Company,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         req.Skills,
		Website:        req.Website,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Social:         req.social(),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// GetMyProfile handles GET /api/profile/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileSvc.GetMyProfile(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// ListProfiles handles GET /api/profile
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	limit, offset := parsePagination(c, 20)
	profiles, err := s.profileSvc.ListProfiles(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profiles)
}

// GetProfileByUserID handles GET /api/profile/user/:user_id
func (s *Server) GetProfileByUserID(c *fiber.Ctx) error {
	userID, err := parseID(c, "user_id")
	if err != nil {
		// A malformed ID reads the same as a missing profile to the client.
		return respondError(c, models.NewValidationError("Profile not found."))
	}
	profile, err := s.profileSvc.GetProfileByUserID(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.profileSvc.DeleteAccount(c.UserContext(), currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"msg": "User deleted."})
}

type experienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// AddExperience handles PUT /api/profile/experience
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req experienceRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	in := service.AddExperienceInput{
		UserID:      currentUserID(c),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Current:     req.Current,
		Description: req.Description,
	}
	if req.From != "" {
		from, err := parseDate(req.From)
		if err != nil {
			return respondError(c, models.NewValidationError("From date is invalid."))
		}
		in.From = from
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		return respondError(c, models.NewValidationError("To date is invalid."))
	}
	in.To = to

	profile, err := s.profileSvc.AddExperience(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// DeleteExperience handles DELETE /api/profile/experience/:expId
func (s *Server) DeleteExperience(c *fiber.Ctx) error {
	expID, err := parseID(c, "expId")
	if err != nil {
		return respondError(c, err)
	}
	profile, err := s.profileSvc.RemoveExperience(c.UserContext(), currentUserID(c), expID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

type educationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// AddEducation handles PUT /api/profile/education
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var req educationRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	in := service.AddEducationInput{
		UserID:       currentUserID(c),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		Current:      req.Current,
		Description:  req.Description,
	}
	if req.From != "" {
		from, err := parseDate(req.From)
		if err != nil {
			return respondError(c, models.NewValidationError("From date is invalid."))
		}
		in.From = from
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		return respondError(c, models.NewValidationError("To date is invalid."))
	}
	in.To = to

	profile, err := s.profileSvc.AddEducation(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// DeleteEducation handles DELETE /api/profile/education/:eduId
func (s *Server) DeleteEducation(c *fiber.Ctx) error {
	eduID, err := parseID(c, "eduId")
	if err != nil {
		return respondError(c, err)
	}
	profile, err := s.profileSvc.RemoveEducation(c.UserContext(), currentUserID(c), eduID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}
