package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/kv"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/logging"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/model"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type SessionOptions struct {
	BcryptCost int
	Logger     logging.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Session is the single-user application state: who is logged in and which
// day is being viewed. A nil account means anonymous.
type Session struct {
	store  kv.Store
	logs   *LogStore
	logger logging.Logger
	cost   int
	now    func() time.Time

	current *model.Account
	date    string

	dummyOnce sync.Once
	dummyHash []byte
}

func NewSession(store kv.Store, opts SessionOptions) *Session {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &Session{
		store:  store,
		logs:   NewLogStore(store, opts.Logger),
		logger: opts.Logger,
		cost:   opts.BcryptCost,
		now:    opts.Now,
		date:   FormatDate(opts.Now()),
	}
}

// Restore picks up the account recorded as logged in by an earlier run. A
// pointer to an account that no longer exists is cleared.
func (s *Session) Restore(ctx context.Context) error {
	var id string
	found, err := kv.GetJSON(ctx, s.store, kv.CurrentUserKey, &id)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if !found || id == "" {
		s.current = nil
		return nil
	}
	accounts, err := LoadAccounts(ctx, s.store)
	if err != nil {
		return err
	}
	i := indexByID(accounts, id)
	if i < 0 {
		s.logger.Warnf("current account %s no longer exists; logging out", id)
		s.current = nil
		if err := s.store.Delete(ctx, kv.CurrentUserKey); err != nil {
			return fmt.Errorf("clear current account: %w", err)
		}
		return nil
	}
	acct := accounts[i]
	s.current = &acct
	return nil
}

func (s *Session) IsAuthenticated() bool {
	return s.current != nil
}

// Account returns a copy of the logged-in account.
func (s *Session) Account() (model.Account, bool) {
	if s.current == nil {
		return model.Account{}, false
	}
	return *s.current, true
}

func (s *Session) Signup(ctx context.Context, in SignupInput) (model.Account, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateStruct(in); err != nil {
		return model.Account{}, err
	}
	accounts, err := LoadAccounts(ctx, s.store)
	if err != nil {
		return model.Account{}, err
	}
	if indexByEmail(accounts, in.Email) >= 0 {
		return model.Account{}, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return model.Account{}, fmt.Errorf("hash password: %w", err)
	}
	acct := model.Account{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Profile:      model.DefaultProfile(in.Name),
	}
	if err := saveAccounts(ctx, s.store, append(accounts, acct)); err != nil {
		return model.Account{}, err
	}
	if err := s.setCurrent(ctx, acct); err != nil {
		return model.Account{}, err
	}
	s.logger.Infof("signed up account %s", acct.ID)
	return acct, nil
}

// Login leaves the session untouched on failure.
func (s *Session) Login(ctx context.Context, email, password string) error {
	accounts, err := LoadAccounts(ctx, s.store)
	if err != nil {
		return err
	}
	i := indexByEmail(accounts, email)
	if i < 0 {
		// Spend the same time as a real comparison.
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return ErrInvalidCredentials
	}
	acct := accounts[i]
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	if err := s.setCurrent(ctx, acct); err != nil {
		return err
	}
	s.logger.Infof("logged in account %s", acct.ID)
	return nil
}

func (s *Session) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, kv.CurrentUserKey); err != nil {
		return fmt.Errorf("clear current account: %w", err)
	}
	if s.current != nil {
		s.logger.Infof("logged out account %s", s.current.ID)
	}
	s.current = nil
	return nil
}

// SaveProfile replaces the profile of the logged-in account. It does nothing
// when anonymous.
func (s *Session) SaveProfile(ctx context.Context, p model.Profile) error {
	if s.current == nil {
		return nil
	}
	p.Name = strings.TrimSpace(p.Name)
	if err := validateStruct(p); err != nil {
		return err
	}
	updated := *s.current
	updated.Profile = p
	if err := replaceAccount(ctx, s.store, updated); err != nil {
		return err
	}
	s.current = &updated
	return nil
}

func (s *Session) ChangePassword(ctx context.Context, in PasswordChangeInput) error {
	if s.current == nil {
		return ErrNotAuthenticated
	}
	if err := validateStruct(in); err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.current.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	updated := *s.current
	updated.PasswordHash = string(hash)
	if err := replaceAccount(ctx, s.store, updated); err != nil {
		return err
	}
	s.current = &updated
	s.logger.Infof("changed password for account %s", updated.ID)
	return nil
}

func (s *Session) IsProfileComplete() bool {
	return s.current != nil && s.current.Profile.IsComplete()
}

// Date is the active day as YYYY-MM-DD.
func (s *Session) Date() string {
	return s.date
}

func (s *Session) SetDate(date string) error {
	t, err := ParseDate(date)
	if err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	s.date = FormatDate(t)
	return nil
}

// ChangeDate moves the active day: "prev", "next", or "today".
func (s *Session) ChangeDate(direction string) error {
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "today":
		s.date = FormatDate(s.now())
		return nil
	case "prev":
		return s.shiftDate(-1)
	case "next":
		return s.shiftDate(1)
	}
	return fmt.Errorf("invalid date direction %q (expected prev|next|today)", direction)
}

func (s *Session) shiftDate(days int) error {
	t, err := ParseDate(s.date)
	if err != nil {
		return fmt.Errorf("active date %q: %w", s.date, err)
	}
	s.date = FormatDate(t.AddDate(0, 0, days))
	return nil
}

// Log loads the active day's log for the logged-in account.
func (s *Session) Log(ctx context.Context) (*model.DailyLog, error) {
	if s.current == nil {
		return nil, ErrNotAuthenticated
	}
	return s.logs.Get(ctx, s.current.ID, s.date)
}

func (s *Session) SaveLog(ctx context.Context, log *model.DailyLog) error {
	if s.current == nil {
		return ErrNotAuthenticated
	}
	return s.logs.Save(ctx, s.current.ID, log)
}

// LoggedDates lists every day the logged-in account has a stored log for.
func (s *Session) LoggedDates(ctx context.Context) ([]string, error) {
	if s.current == nil {
		return nil, ErrNotAuthenticated
	}
	return s.logs.Dates(ctx, s.current.ID)
}

// Summary requires a complete profile, since targets are meaningless without
// one.
func (s *Session) Summary(ctx context.Context) (DailySummary, error) {
	if s.current == nil {
		return DailySummary{}, ErrNotAuthenticated
	}
	if !s.current.Profile.IsComplete() {
		return DailySummary{}, ErrIncompleteProfile
	}
	log, err := s.Log(ctx)
	if err != nil {
		return DailySummary{}, err
	}
	return Summarize(s.current.Profile, log), nil
}

func (s *Session) Foods(ctx context.Context) ([]model.Food, error) {
	if s.current == nil {
		return PredefinedFoods(), nil
	}
	return VisibleFoods(ctx, s.store, s.current.ID)
}

func (s *Session) AddCustomFood(ctx context.Context, in CustomFoodInput) (model.Food, error) {
	if s.current == nil {
		return model.Food{}, ErrNotAuthenticated
	}
	return AddCustomFood(ctx, s.store, s.current.ID, in)
}

func (s *Session) setCurrent(ctx context.Context, acct model.Account) error {
	if err := kv.SetJSON(ctx, s.store, kv.CurrentUserKey, acct.ID); err != nil {
		return fmt.Errorf("record current account: %w", err)
	}
	s.current = &acct
	return nil
}

func (s *Session) dummy() []byte {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("big2fit-timing-equalizer"), s.cost)
		if err != nil {
			h = []byte{}
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
