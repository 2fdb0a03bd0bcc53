package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"conbi/internal/config"
	"conbi/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotConfirmed  = errors.New("email not confirmed yet")
	ErrEmailTaken         = errors.New("an account with this email already exists")

	// ErrProfileWrite marks a sign-up whose credential was created but whose
	// profile row could not be written. The account still exists and can be
	// confirmed and signed in; only the profile is missing.
	ErrProfileWrite = errors.New("account created but profile could not be saved")
)

// User is the authenticated identity handed to the UI.
type User struct {
	ID    string
	Email string
}

// Session is an authenticated user context backed by a signed token stored on
// disk, so it survives process restarts.
type Session struct {
	User      User
	ExpiresAt time.Time
}

// Service owns account credentials and the session lifecycle. UI components
// receive session changes through Subscribe rather than polling.
type Service struct {
	db          *gorm.DB
	secret      []byte
	ttl         time.Duration
	cost        int
	sessionPath string

	mu      sync.Mutex
	subs    map[int]func(*Session)
	nextSub int
}

// New builds the auth service, generating a local signing secret on first run.
func New(db *gorm.DB, cfg config.Config) (*Service, error) {
	secret, err := loadOrCreateSecret(cfg.SecretPath())
	if err != nil {
		return nil, fmt.Errorf("auth secret: %w", err)
	}
	return &Service{
		db:          db,
		secret:      secret,
		ttl:         cfg.SessionTTL,
		cost:        cfg.BcryptCost,
		sessionPath: cfg.SessionPath(),
		subs:        make(map[int]func(*Session)),
	}, nil
}

// SignUpInput carries the registration form fields.
type SignUpInput struct {
	Email    string
	Password string
	FullName string
}

// SignUpResult is returned on successful registration. VerifyCode stands in
// for the verification email a hosted provider would send; it must be passed
// to ConfirmEmail before the account can sign in.
type SignUpResult struct {
	User       User
	VerifyCode string
}

// SignUp registers a new account. The profile row is written separately by
// the caller through the store.
func (s *Service) SignUp(ctx context.Context, input SignUpInput) (*SignUpResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("a valid email is required")
	}
	if len(input.Password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}

	var existing models.Credential
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	code, err := verifyCode()
	if err != nil {
		return nil, err
	}

	cred := models.Credential{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		VerifyCode:   code,
	}
	if err := s.db.WithContext(ctx).Create(&cred).Error; err != nil {
		return nil, fmt.Errorf("create credential: %w", err)
	}

	return &SignUpResult{
		User:       User{ID: cred.ID, Email: cred.Email},
		VerifyCode: code,
	}, nil
}

// SignIn checks the password, issues a session token, persists it, and
// notifies subscribers.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var cred models.Credential
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("look up email: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if cred.ConfirmedAt == nil {
		return nil, ErrEmailNotConfirmed
	}

	user := User{ID: cred.ID, Email: cred.Email}
	token, expires, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(s.sessionPath, []byte(token), 0600); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	session := &Session{User: user, ExpiresAt: expires}
	s.notify(session)
	return session, nil
}

// ConfirmEmail marks an account as verified if the code matches.
func (s *Service) ConfirmEmail(ctx context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var cred models.Credential
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("no account for %s", email)
	}
	if err != nil {
		return fmt.Errorf("look up email: %w", err)
	}

	if cred.ConfirmedAt != nil {
		return nil // already confirmed
	}
	if !strings.EqualFold(strings.TrimSpace(code), cred.VerifyCode) {
		return errors.New("verification code does not match")
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).Model(&cred).Update("confirmed_at", &now).Error; err != nil {
		return fmt.Errorf("confirm email: %w", err)
	}
	return nil
}

// CurrentSession returns the persisted session, or nil when there is none.
// A missing, malformed, or expired token all read as "no session".
func (s *Service) CurrentSession() (*Session, error) {
	data, err := os.ReadFile(s.sessionPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	session, err := s.parseToken(strings.TrimSpace(string(data)))
	if err != nil {
		// Stale or tampered token; drop it so the next check is clean.
		_ = os.Remove(s.sessionPath)
		return nil, nil
	}
	return session, nil
}

// SignOut clears the persisted session and notifies subscribers.
func (s *Service) SignOut() error {
	if err := os.Remove(s.sessionPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	s.notify(nil)
	return nil
}

// Subscribe registers a session-change callback and returns its unsubscribe
// function. The callback receives nil on sign-out.
func (s *Service) Subscribe(fn func(*Session)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Service) notify(session *Session) {
	s.mu.Lock()
	fns := make([]func(*Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(session)
	}
}

func verifyCode() (string, error) {
	raw := make([]byte, 3)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate verify code: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(raw)), nil
}
