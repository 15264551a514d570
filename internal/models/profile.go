package models

import (
	"time"
)

// SocialLinks holds a profile's social media URLs. Stored as a JSON column;
// only the platforms the user actually supplied are kept.
type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Profile is the professional profile owned by exactly one user.
type Profile struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	UserID         uint         `gorm:"uniqueIndex;not null" json:"user_id"`
	User           User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Company        string       `json:"company"`
	Location       string       `json:"location"`
	Status         string       `gorm:"not null" json:"status"`
	Skills         []string     `gorm:"serializer:json" json:"skills"`
	Website        string       `json:"website"`
	Bio            string       `json:"bio"`
	GithubUsername string       `json:"github_username"`
	Social         *SocialLinks `gorm:"serializer:json" json:"social,omitempty"`
	Experiences    []Experience `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"experiences"`
	Educations     []Education  `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"educations"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Experience is a single work history entry on a profile. Entries are
// returned newest first.
type Experience struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProfileID   uint       `gorm:"not null;index" json:"-"`
	Title       string     `gorm:"not null" json:"title"`
	Company     string     `gorm:"not null" json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `gorm:"not null" json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Education is a single education entry on a profile. Entries are returned
// newest first.
type Education struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ProfileID    uint       `gorm:"not null;index" json:"-"`
	School       string     `gorm:"not null" json:"school"`
	Degree       string     `gorm:"not null" json:"degree"`
	FieldOfStudy string     `gorm:"not null" json:"field_of_study"`
	From         time.Time  `gorm:"not null" json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
	CreatedAt    time.Time  `json:"created_at"`
}
