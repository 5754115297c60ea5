package inbound

import "encoding/json"

type RegisterRequest struct {
	Username    string `json:"username"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	UserID int64  `json:"user_id,string"`
	Code   string `json:"otp,omitempty"`
}

func (RegisterResponse) Message() string {
	return "Registration successful. An OTP has been sent to your phone number."
}

// flexibleID accepts a JSON string or number for the user id field; legacy
// clients send both, plus the literal "null" string for absent.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}

type OtpVerifyRequest struct {
	UserID      flexibleID `json:"userId"`
	PhoneNumber string     `json:"phoneNumber"`
	Code        string     `json:"otp"`
}

type OtpVerifyResponse struct {
	UserID   int64 `json:"user_id,string"`
	Verified bool  `json:"verified"`
}

func (OtpVerifyResponse) Message() string {
	return "Phone number verified successfully."
}

type OtpResendRequest struct {
	UserID      flexibleID `json:"userId"`
	PhoneNumber string     `json:"phoneNumber"`
}

type OtpResendResponse struct {
	UserID int64  `json:"user_id,string"`
	Code   string `json:"otp,omitempty"`
}

func (OtpResendResponse) Message() string {
	return "A new OTP has been sent to your phone number."
}

type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type LoginResponse struct {
	UserID      int64  `json:"user_id,string"`
	AccessToken string `json:"access_token"`
}

type UserResponse struct {
	ID          int64  `json:"id,string"`
	Username    string `json:"username"`
	PhoneNumber string `json:"phone_number"`
	Verified    bool   `json:"verified"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
}
