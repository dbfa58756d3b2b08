package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleDev   Role = "dev"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin || r == RoleDev
}

const (
	// WelcomeBonus is credited to every freshly registered account.
	WelcomeBonus int64 = 100
	// ReferralBonus is credited to the referrer each time an invited user
	// completes registration.
	ReferralBonus int64 = 50
)

// User is the aggregate root. It owns its blocks and referrals; rentals are
// mutated only through the rental use cases.
type User struct {
	ID                 int64      `json:"id"`
	TelegramID         TelegramID `json:"telegram_id"`
	Balance            Balance    `json:"balance"`
	Role               Role       `json:"role"`
	IsDeleted          bool       `json:"is_deleted"`
	ReferrerID         *int64     `json:"referrer_id,omitempty"`
	TotalBonusReceived int64      `json:"total_bonus_received"`
	Blocks             []Block    `json:"blocks,omitempty"`
	Referrals          []Referral `json:"referrals,omitempty"`
	Rentals            []Rental   `json:"rentals,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func NewUser(telegramID int64) (*User, error) {
	tg, err := NewTelegramID(telegramID)
	if err != nil {
		return nil, err
	}
	return &User{
		TelegramID: tg,
		Role:       RoleUser,
	}, nil
}

// IsBlocked reports whether any block is still active.
func (u *User) IsBlocked() bool {
	now := time.Now()
	for i := range u.Blocks {
		if u.Blocks[i].IsActive(now) {
			return true
		}
	}
	return false
}

// Block appends a new active block. At most one block may be active at a time.
func (u *User) Block(days int, reason string, adminID int64) (*Block, error) {
	if u.IsBlocked() {
		return nil, ErrAlreadyBlocked
	}
	block, err := NewBlock(u.ID, days, reason, adminID)
	if err != nil {
		return nil, err
	}
	u.Blocks = append(u.Blocks, *block)
	return &u.Blocks[len(u.Blocks)-1], nil
}

// Unblock deactivates the first active block and returns it.
func (u *User) Unblock() (*Block, error) {
	now := time.Now()
	for i := range u.Blocks {
		if u.Blocks[i].IsActive(now) {
			u.Blocks[i].Deactivate(now)
			return &u.Blocks[i], nil
		}
	}
	return nil, ErrActiveBlockNotFound
}

func (u *User) Deposit(amount int64) error {
	next, err := u.Balance.Add(amount)
	if err != nil {
		return err
	}
	u.Balance = next
	return nil
}

func (u *User) Withdraw(amount int64) error {
	next, err := u.Balance.Subtract(amount)
	if err != nil {
		return err
	}
	u.Balance = next
	return nil
}

func (u *User) AddWelcomeBonus() {
	_ = u.Deposit(WelcomeBonus)
}

// AddReferralBonus credits the standing per-referral bonus and tracks the
// lifetime total.
func (u *User) AddReferralBonus() {
	_ = u.Deposit(ReferralBonus)
	u.TotalBonusReceived += ReferralBonus
}

// AssignReferrer is write-once and rejects self-referral.
func (u *User) AssignReferrer(referrerID int64) error {
	if u.ReferrerID != nil {
		return ErrReferrerAlreadyAssigned
	}
	if referrerID == u.ID {
		return ErrSelfReferral
	}
	u.ReferrerID = &referrerID
	return nil
}

func (u *User) ChangeRole(newRole Role) {
	u.Role = newRole
}

func (u *User) Delete() error {
	if u.IsDeleted {
		return ErrUserDeleted
	}
	u.IsDeleted = true
	return nil
}
