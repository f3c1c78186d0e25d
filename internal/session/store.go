package session

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/Domenick1991/skywings/internal/domain"
	"github.com/Domenick1991/skywings/internal/remote"
)

// AuthAPI is the slice of the remote client the store needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Register(ctx context.Context, input remote.RegisterInput) (string, *domain.User, error)
}

type RegistrationForm struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// Store holds the authenticated principal and its bearer credential.
// Invariant: token and user are either both set or both empty, and the
// persisted file always mirrors memory (every mutation goes through set).
type Store struct {
	mu    sync.RWMutex
	path  string
	api   AuthAPI
	token string
	user  *domain.User
}

func NewStore(path string, api AuthAPI) *Store {
	return &Store{path: path, api: api}
}

type persistedSession struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Restore reads the persisted session at startup. A missing, unparsable
// or half-empty file yields no session.
func (s *Store) Restore() (*domain.User, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, false
	}

	var saved persistedSession
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, false
	}
	if saved.Token == "" || saved.User == nil {
		return nil, false
	}

	s.mu.Lock()
	s.token = saved.Token
	s.user = saved.User
	s.mu.Unlock()
	return saved.User, true
}

func (s *Store) Login(ctx context.Context, email, password string) (*domain.User, error) {
	token, user, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.set(token, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Signup validates locally before any network call.
func (s *Store) Signup(ctx context.Context, form RegistrationForm) (*domain.User, error) {
	if form.Name == "" {
		return nil, domain.NewValidationError("name", "name is required")
	}
	if form.Email == "" {
		return nil, domain.NewValidationError("email", "email is required")
	}
	if form.Password == "" {
		return nil, domain.NewValidationError("password", "password is required")
	}
	if form.Password != form.ConfirmPassword {
		return nil, domain.NewValidationError("confirmPassword", "passwords do not match")
	}
	if len(form.Password) < 6 {
		return nil, domain.NewValidationError("password", "password must be at least 6 characters long")
	}

	token, user, err := s.api.Register(ctx, remote.RegisterInput{
		Name:     form.Name,
		Email:    form.Email,
		Phone:    form.Phone,
		Password: form.Password,
	})
	if err != nil {
		return nil, err
	}
	if err := s.set(token, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout clears memory and persisted state unconditionally, no remote
// call. A surviving session file would be restored on the next start,
// so a failed removal is at least made visible.
func (s *Store) Logout() {
	if err := s.set("", nil); err != nil {
		log.Printf("clear persisted session: %v", err)
	}
}

func (s *Store) Current() (*domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || s.user == nil {
		return nil, false
	}
	return s.user, true
}

// Token implements remote.TokenSource, read at dispatch time.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// set is the single write path: memory and file change together.
func (s *Store) set(token string, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user

	if token == "" || user == nil {
		s.token = ""
		s.user = nil
		err := os.Remove(s.path)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(persistedSession{Token: token, User: user})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

var _ remote.TokenSource = (*Store)(nil)
