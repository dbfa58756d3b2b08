package domain

import "time"

// Referral links a referrer to an invited user. Unique per
// (referrer, referral) pair; TotalBonus accrues over the link's lifetime.
type Referral struct {
	ID         int64     `json:"id"`
	ReferrerID int64     `json:"referrer_id"`
	ReferralID int64     `json:"referral_id"`
	TelegramID int64     `json:"telegram_id"`
	InvitedAt  time.Time `json:"invited_at"`
	TotalBonus int64     `json:"total_bonus"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewReferral(referrerID, referralID, telegramID int64) *Referral {
	return &Referral{
		ReferrerID: referrerID,
		ReferralID: referralID,
		TelegramID: telegramID,
		InvitedAt:  time.Now(),
	}
}

func (r *Referral) AddBonus(amount int64) {
	r.TotalBonus += amount
}
