package dto

import "time"

// MemberResponse represents basic member information
type MemberResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	Major     string    `json:"major,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Major     string `json:"major,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// MemberListResponse represents a paginated list of members
type MemberListResponse struct {
	Members []MemberResponse `json:"members"`
	PaginationInfo
}
