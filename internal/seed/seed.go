// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"devconnector/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var statuses = []string{
	"Developer", "Senior Developer", "Junior Developer", "Student",
	"Instructor", "Manager", "Intern",
}

var skillPool = []string{
	"Go", "JavaScript", "TypeScript", "Python", "Rust", "SQL",
	"React", "Vue", "Docker", "Kubernetes", "PostgreSQL", "Redis",
}

// Seeder populates the database with generated users, profiles and posts.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes seeded data, children before parents.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.Like{}, &models.Comment{}, &models.Post{},
		&models.Experience{}, &models.Education{}, &models.Profile{},
		&models.User{},
	} {
		if err := s.db.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedUsers creates n users with profiles. All users share the password
// "password123".
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			Name:     gofakeit.Name(),
			Email:    fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password: string(hashed),
			Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}

		if err := s.seedProfile(&user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedProfile(user *models.User) error {
	skills := make([]string, 0, 4)
	for _, idx := range s.rng.Perm(len(skillPool))[:4] {
		skills = append(skills, skillPool[idx])
	}

	profile := models.Profile{
		UserID:         user.ID,
		Company:        gofakeit.Company(),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		Status:         statuses[s.rng.Intn(len(statuses))],
		Skills:         skills,
		Website:        gofakeit.URL(),
		Bio:            gofakeit.Sentence(12),
		GithubUsername: gofakeit.Username(),
		Social: &models.SocialLinks{
			Twitter:  "https://twitter.com/" + gofakeit.Username(),
			LinkedIn: "https://linkedin.com/in/" + gofakeit.Username(),
		},
	}
	if err := s.db.Create(&profile).Error; err != nil {
		return err
	}

	from := time.Now().AddDate(-1-s.rng.Intn(5), 0, 0)
	exp := models.Experience{
		ProfileID:   profile.ID,
		Title:       gofakeit.JobTitle(),
		Company:     gofakeit.Company(),
		Location:    gofakeit.City(),
		From:        from,
		Current:     true,
		Description: gofakeit.Sentence(15),
	}
	if err := s.db.Create(&exp).Error; err != nil {
		return err
	}

	eduFrom := from.AddDate(-4, 0, 0)
	eduTo := from
	edu := models.Education{
		ProfileID:    profile.ID,
		School:       gofakeit.Company() + " University",
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		From:         eduFrom,
		To:           &eduTo,
		Description:  gofakeit.Sentence(10),
	}
	return s.db.Create(&edu).Error
}

// SeedPosts creates n posts spread across the users, with some likes and
// comments from other users.
func (s *Seeder) SeedPosts(users []models.User, n int) error {
	if len(users) == 0 {
		return fmt.Errorf("no users to attribute posts to")
	}

	for i := 0; i < n; i++ {
		author := users[s.rng.Intn(len(users))]
		post := models.Post{
			UserID:       author.ID,
			Content:      gofakeit.Paragraph(1, 3, 8, "\n"),
			AuthorName:   author.Name,
			AuthorAvatar: author.Avatar,
			CreatedAt:    time.Now().Add(-time.Duration(s.rng.Intn(90*24)) * time.Hour),
		}
		if err := s.db.Create(&post).Error; err != nil {
			return err
		}

		for _, idx := range s.rng.Perm(len(users))[:s.rng.Intn(min(len(users), 5))] {
			like := models.Like{UserID: users[idx].ID, PostID: post.ID}
			if err := s.db.Create(&like).Error; err != nil {
				return err
			}
		}

		for j := 0; j < s.rng.Intn(3); j++ {
			commenter := users[s.rng.Intn(len(users))]
			comment := models.Comment{
				PostID:       post.ID,
				UserID:       commenter.ID,
				Content:      gofakeit.Sentence(10),
				AuthorName:   commenter.Name,
				AuthorAvatar: commenter.Avatar,
			}
			if err := s.db.Create(&comment).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
