package domain

import (
	"regexp"
	"time"

	"social_chat_service/pkg/encrypt"
)

// MemberStatus member presence status persisted alongside the account.
type MemberStatus int

const (
	// MemberStatusOffline offline
	MemberStatusOffline MemberStatus = iota
	// MemberStatusOnline online
	MemberStatusOnline
)

func (s MemberStatus) String() string {
	if s == MemberStatusOnline {
		return "online"
	}
	return "offline"
}

// Member a registered account. Password stores the bcrypt hash, never the
// plaintext.
type Member struct {
	ID        int64     `json:"id"`
	MemberID  string    `json:"member_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Password  string    `json:"-"`
	Status    MemberStatus
	CreatedAt time.Time `json:"created_at"`
}

// MemberSession login session kept in redis with a TTL.
type MemberSession struct {
	Token        string    `json:"token"`
	MemberID     string    `json:"member_id"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	ExpiredAt    time.Time `json:"expired_at"`
}

// IsExpired check session expired
func (s MemberSession) IsExpired() bool {
	return time.Now().After(s.ExpiredAt)
}

// MemberQuery dynamic lookup, nil fields are not matched.
type MemberQuery struct {
	MemberID *string
	Username *string
	Email    *string
	Phone    *string
}

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@gmail\.com$`)
	phoneRegex = regexp.MustCompile(`^\d{10}$`)
)

// ValidateEmail 只有 gmail 信箱可以註冊
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePhone phone must be exactly 10 digits
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// ValidateUsername username length 3~30
func ValidateUsername(username string) bool {
	return len(username) >= 3 && len(username) <= 30
}

// IsPasswordMatch compare the stored hash against a login attempt.
func (m Member) IsPasswordMatch(password string) bool {
	return encrypt.CheckPassword(m.Password, password) == nil
}
