package model

import "time"

// User is one completed registrant. A row only exists once the
// conversational form has collected every required field.
type User struct {
	TelegramID       int64
	Name             string
	Email            string
	Whatsapp         string
	University       string
	Level            string
	Course           string
	WalletAddress    string
	ReferralCode     string
	ReferrerID       *int64
	ReferredHandles  []string
	Referrals        int
	IsAdmin          bool
	RegistrationDate time.Time
}
