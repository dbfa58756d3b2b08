package domain

import "time"

// RentalTermValid reports whether months is one of the fixed rental windows.
func RentalTermValid(months int) bool {
	switch months {
	case 1, 3, 6, 12:
		return true
	}
	return false
}

// Rental is a time-bounded grant of a bot to a user, paid from balance.
// Stopping is non-refundable.
type Rental struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	BotID       int64     `json:"bot_id"`
	Token       string    `json:"token"`
	RentedUntil time.Time `json:"rented_until"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewRental computes the grant window in calendar months, not fixed 30-day
// blocks.
func NewRental(userID, botID int64, token string, months int, now time.Time) (*Rental, error) {
	if !RentalTermValid(months) {
		return nil, ErrInvalidRentalTerm
	}
	return &Rental{
		UserID:      userID,
		BotID:       botID,
		Token:       token,
		RentedUntil: now.AddDate(0, months, 0),
		IsActive:    true,
	}, nil
}

func (r *Rental) Stop() error {
	if !r.IsActive {
		return ErrRentalStopped
	}
	r.IsActive = false
	return nil
}

// Start re-activates a stopped rental while its paid window still runs.
func (r *Rental) Start(now time.Time) error {
	if r.IsActive {
		return ErrRentalAlreadyActive
	}
	if !r.RentedUntil.After(now) {
		return ErrRentalExpired
	}
	r.IsActive = true
	return nil
}
