package domain

import "time"

// Block is a child record of User. A block is active while BlockedUntil is in
// the future; unblocking moves BlockedUntil to now instead of deleting the
// row, so history stays append-only.
type Block struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	BlockedUntil time.Time `json:"blocked_until"`
	Reason       string    `json:"reason"`
	BlockedBy    int64     `json:"blocked_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewBlock(userID int64, days int, reason string, blockedBy int64) (*Block, error) {
	if days < 1 {
		return nil, ErrInvalidBlockDuration
	}
	return &Block{
		UserID:       userID,
		BlockedUntil: time.Now().AddDate(0, 0, days),
		Reason:       reason,
		BlockedBy:    blockedBy,
	}, nil
}

func (b *Block) IsActive(now time.Time) bool {
	return b.BlockedUntil.After(now)
}

// Deactivate terminates an active block by pulling its expiry to now.
func (b *Block) Deactivate(now time.Time) {
	if !b.IsActive(now) {
		return
	}
	b.BlockedUntil = now
}
