package entity

import "time"

type Group struct {
	ID          int64
	Name        string
	Description string
	CreatedBy   int64
	CreatedAt   time.Time
}

type Member struct {
	GroupID     int64
	UserID      int64
	Username    string
	PhoneNumber string
	IsAdmin     bool
}

type GroupDetail struct {
	Group
	Members []Member
}

type NewGroup struct {
	ID          int64
	Name        string
	Description string
	CreatedBy   int64
	MemberIDs   []int64 // plain members; the creator joins separately as admin
}
