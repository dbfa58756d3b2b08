package domain

import "time"

// Bot is a rentable priced resource.
type Bot struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	IsAvailable bool      `json:"is_available"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewBot(name, description string, price int64) (*Bot, error) {
	if name == "" {
		return nil, ErrInvalidBotName
	}
	if price <= 0 {
		return nil, ErrInvalidBotPrice
	}
	return &Bot{
		Name:        name,
		Description: description,
		Price:       price,
		IsAvailable: true,
	}, nil
}

func (b *Bot) CanBeRented() bool {
	return b.IsAvailable && !b.IsDeleted
}

func (b *Bot) Activate() error {
	if b.IsAvailable {
		return ErrBotAlreadyActive
	}
	b.IsAvailable = true
	return nil
}

func (b *Bot) Deactivate() error {
	if !b.IsAvailable {
		return ErrBotAlreadyInactive
	}
	b.IsAvailable = false
	return nil
}

func (b *Bot) Delete() error {
	if b.IsDeleted {
		return ErrBotAlreadyDeleted
	}
	b.IsDeleted = true
	b.IsAvailable = false
	return nil
}
