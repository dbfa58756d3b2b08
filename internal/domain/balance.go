package domain

// Balance is a non-negative amount in the minor currency unit. All arithmetic
// returns a new value; a Balance never holds a negative amount.
type Balance int64

func NewBalance(value int64) (Balance, error) {
	if value < 0 {
		return 0, ErrNegativeBalance
	}
	return Balance(value), nil
}

func (b Balance) Add(amount int64) (Balance, error) {
	if amount < 0 {
		return b, ErrInvalidAmount
	}
	return b + Balance(amount), nil
}

func (b Balance) Subtract(amount int64) (Balance, error) {
	if amount < 0 {
		return b, ErrInvalidAmount
	}
	if int64(b) < amount {
		return b, ErrInsufficientFunds
	}
	return b - Balance(amount), nil
}

func (b Balance) Int64() int64 { return int64(b) }

// TelegramID identifies an external Telegram account. Zero and negative
// values are rejected at construction.
type TelegramID int64

func NewTelegramID(value int64) (TelegramID, error) {
	if value <= 0 {
		return 0, ErrInvalidTelegramID
	}
	return TelegramID(value), nil
}

func (id TelegramID) Int64() int64 { return int64(id) }
