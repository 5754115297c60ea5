package inbound

import "time"

type GroupCreateRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	MemberIDs   []int64 `json:"member_ids"`
}

type GroupCreateResponse struct {
	GroupID int64 `json:"group_id,string"`
}

func (GroupCreateResponse) Message() string {
	return "Group created successfully."
}

type MemberResponse struct {
	UserID      int64  `json:"user_id,string"`
	Username    string `json:"username"`
	PhoneNumber string `json:"phone_number"`
	IsAdmin     bool   `json:"is_admin"`
}

type GroupResponse struct {
	ID          int64            `json:"id,string"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	IsAdmin     bool             `json:"is_admin"`
	Members     []MemberResponse `json:"members"`
}

type GroupListResponse struct {
	Groups []GroupResponse `json:"groups"`
}
