package usecase

import (
	"context"
	"sync"

	"botrental/internal/domain"
)

// In-memory fakes for the persistence ports. They mimic the repositories'
// contract: absence is a nil result, never an error.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User // by primary key
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int64]*domain.User{}}
}

func (r *fakeUserRepo) add(u *domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == 0 {
		u.ID = r.nextID
		r.nextID++
	}
	cp := *u
	r.users[u.ID] = &cp
	return u
}

func (r *fakeUserRepo) GetByTelegramID(_ context.Context, telegramID int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.TelegramID.Int64() == telegramID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	r.add(u)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetAll(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

type fakeBlockRepo struct {
	added   []*domain.Block
	updated []*domain.Block
}

func (r *fakeBlockRepo) Add(_ context.Context, b *domain.Block) error {
	b.ID = int64(len(r.added) + 1)
	r.added = append(r.added, b)
	return nil
}

func (r *fakeBlockRepo) Update(_ context.Context, b *domain.Block) error {
	r.updated = append(r.updated, b)
	return nil
}

type fakeReferralRepo struct {
	users *fakeUserRepo
	rows  []*domain.Referral
}

// LinkWithBonus mirrors the transactional repository: the referrer link, the
// referral row and the bonus credit land together, and a duplicate pair is a
// silent no-op.
func (r *fakeReferralRepo) LinkWithBonus(ctx context.Context, ref *domain.Referral, bonus int64) error {
	for _, existing := range r.rows {
		if existing.ReferrerID == ref.ReferrerID && existing.ReferralID == ref.ReferralID {
			return nil
		}
	}

	invitee, err := r.users.GetByID(ctx, ref.ReferralID)
	if err != nil || invitee == nil {
		return domain.ErrUserNotFound
	}
	if invitee.ReferrerID == nil {
		invitee.ReferrerID = &ref.ReferrerID
		if err := r.users.Update(ctx, invitee); err != nil {
			return err
		}
	}

	referrer, err := r.users.GetByID(ctx, ref.ReferrerID)
	if err != nil || referrer == nil {
		return domain.ErrUserNotFound
	}
	_ = referrer.Deposit(bonus)
	referrer.TotalBonusReceived += bonus
	if err := r.users.Update(ctx, referrer); err != nil {
		return err
	}

	ref.ID = int64(len(r.rows) + 1)
	r.rows = append(r.rows, ref)
	return nil
}

func (r *fakeReferralRepo) GetAllByReferrerID(_ context.Context, referrerID int64) ([]domain.Referral, error) {
	var out []domain.Referral
	for _, ref := range r.rows {
		if ref.ReferrerID == referrerID {
			out = append(out, *ref)
		}
	}
	return out, nil
}

type fakeBotRepo struct {
	bots map[int64]*domain.Bot
}

func newFakeBotRepo() *fakeBotRepo { return &fakeBotRepo{bots: map[int64]*domain.Bot{}} }

func (r *fakeBotRepo) GetByID(_ context.Context, id int64) (*domain.Bot, error) {
	b, ok := r.bots[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBotRepo) GetAllAvailable(_ context.Context) ([]domain.Bot, error) {
	var out []domain.Bot
	for _, b := range r.bots {
		if b.CanBeRented() {
			out = append(out, *b)
		}
	}
	return out, nil
}

// fakeRentalRepo reproduces the transactional contract of the real
// repository: the insert and the debit succeed or fail together.
type fakeRentalRepo struct {
	users   *fakeUserRepo
	nextID  int64
	rentals map[int64]*domain.Rental
}

func newFakeRentalRepo(users *fakeUserRepo) *fakeRentalRepo {
	return &fakeRentalRepo{users: users, nextID: 1, rentals: map[int64]*domain.Rental{}}
}

func (r *fakeRentalRepo) CreateWithDebit(ctx context.Context, rental *domain.Rental, price int64) error {
	user, err := r.users.GetByID(ctx, rental.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := user.Withdraw(price); err != nil {
		return err
	}
	if err := r.users.Update(ctx, user); err != nil {
		return err
	}

	rental.ID = r.nextID
	r.nextID++
	cp := *rental
	r.rentals[rental.ID] = &cp
	return nil
}

func (r *fakeRentalRepo) GetByID(_ context.Context, id int64) (*domain.Rental, error) {
	rental, ok := r.rentals[id]
	if !ok {
		return nil, nil
	}
	cp := *rental
	return &cp, nil
}

func (r *fakeRentalRepo) GetAllByUserID(_ context.Context, userID int64) ([]domain.Rental, error) {
	var out []domain.Rental
	for _, rental := range r.rentals {
		if rental.UserID == userID {
			out = append(out, *rental)
		}
	}
	return out, nil
}

func (r *fakeRentalRepo) Update(_ context.Context, rental *domain.Rental) error {
	cp := *rental
	r.rentals[rental.ID] = &cp
	return nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	texts []string
}

func (n *fakeNotifier) NotifyAdmins(_ context.Context, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.texts = append(n.texts, text)
}

type fakeSender struct {
	mu    sync.Mutex
	texts []string
}

func (s *fakeSender) Send(_ context.Context, _ int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, text)
	return nil
}
