package model

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusDisabled UserStatus = "DISABLED"
)

func ParseUserStatus(s string) (UserStatus, bool) {
	switch UserStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case UserStatusActive:
		return UserStatusActive, true
	case UserStatusDisabled:
		return UserStatusDisabled, true
	}
	return "", false
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User mirrors the root users/{uid} document.
type User struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Status           UserStatus `json:"status"`
	Role             string     `json:"role"`
	TotalAssessments int        `json:"totalAssessments"`
	TotalPoints      int        `json:"totalPoints"`
}

func UserFromDoc(id string, data map[string]any) User {
	u := User{
		ID:               id,
		Name:             cast.ToString(firstPresent(data, "name", "displayName")),
		Email:            cast.ToString(data["email"]),
		Role:             cast.ToString(data["role"]),
		TotalAssessments: cast.ToInt(data[FieldTotalAssessments]),
		TotalPoints:      cast.ToInt(data[FieldTotalPoints]),
	}
	if st, ok := ParseUserStatus(cast.ToString(data["status"])); ok {
		u.Status = st
	} else {
		u.Status = UserStatusActive
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return u
}

// FeedbackEntry mirrors feedback/{uid}; at most one per user.
type FeedbackEntry struct {
	UserID     string     `json:"userId"`
	Rating     int        `json:"rating"`
	Text       string     `json:"text"`
	Resolved   bool       `json:"resolved"`
	ResolvedBy string     `json:"resolvedBy,omitempty"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
}

func FeedbackFromDoc(id string, data map[string]any) FeedbackEntry {
	fb := FeedbackEntry{
		UserID:     id,
		Rating:     cast.ToInt(data["rating"]),
		Text:       cast.ToString(firstPresent(data, "text", "message")),
		Resolved:   cast.ToBool(data["resolved"]),
		ResolvedBy: cast.ToString(data["resolvedBy"]),
	}
	if raw, ok := data["resolvedAt"]; ok && raw != nil {
		if t, err := cast.ToTimeE(raw); err == nil {
			fb.ResolvedAt = &t
		}
	}
	return fb
}
