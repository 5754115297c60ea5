package entity

import "time"

type User struct {
	ID          int64
	Username    string
	PhoneNumber string
	Verified    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type UserLoginInfo struct {
	ID          int64
	Username    string
	PhoneNumber string
	Verified    bool
	Password    string // hashed
}

type NewUser struct {
	ID          int64
	Username    string
	PhoneNumber string
}
