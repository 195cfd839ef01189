// models/user.go
package models

import (
	"strings"
	"time"
)

// User is the read model of a platform account.
type User struct {
	ID             string     `bson:"id" json:"id"`
	UserType       string     `bson:"user_type" json:"user_type"`
	FirstName      string     `bson:"first_name" json:"first_name"`
	LastName       string     `bson:"last_name" json:"last_name"`
	ProfilePicture string     `bson:"profile_picture,omitempty" json:"profile_picture,omitempty"`
	ProviderID     string     `bson:"provider_id,omitempty" json:"provider_id,omitempty"`
	Country        string     `bson:"country,omitempty" json:"country,omitempty"`
	DateOfBirth    *time.Time `bson:"date_of_birth,omitempty" json:"date_of_birth,omitempty"`
	Gender         string     `bson:"gender,omitempty" json:"gender,omitempty"`
	PhoneNumber    string     `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
}

// FullName joins first and last name the way reviews display it.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// MissingProfileFields lists the profile fields a user must fill in before
// writing reviews or moderating them.
func (u *User) MissingProfileFields() []string {
	var missing []string
	if u.FirstName == "" {
		missing = append(missing, "first_name")
	}
	if u.LastName == "" {
		missing = append(missing, "last_name")
	}
	if u.Country == "" {
		missing = append(missing, "country")
	}
	if u.DateOfBirth == nil {
		missing = append(missing, "date_of_birth")
	}
	if u.Gender == "" {
		missing = append(missing, "gender")
	}
	if u.PhoneNumber == "" {
		missing = append(missing, "phone_number")
	}
	return missing
}

// Provider is the read model of a tour-operating organization.
type Provider struct {
	ID           string `bson:"id" json:"id"`
	ProviderName string `bson:"provider_name" json:"provider_name"`
	Country      string `bson:"country,omitempty" json:"country,omitempty"`
}
