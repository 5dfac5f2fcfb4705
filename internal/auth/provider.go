package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/mkovalenko/avatara/internal/domain"
	"github.com/mkovalenko/avatara/internal/repository"
)

// ErrNotSignedIn is returned when no coach identity is stored.
var ErrNotSignedIn = errors.New("not signed in")

// Provider resolves the coach behind the current invocation.
type Provider interface {
	Current(ctx context.Context) (*domain.Coach, error)
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail rejects addresses that are obviously malformed.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email address %q", email)
	}
	return nil
}

type identityFile struct {
	CoachID string `json:"coach_id"`
	Email   string `json:"email"`
}

// FileProvider stores the signed-in coach in a JSON file under the app home.
type FileProvider struct {
	path    string
	coaches repository.CoachRepo
}

func NewFileProvider(dir string, coaches repository.CoachRepo) *FileProvider {
	return &FileProvider{
		path:    filepath.Join(dir, "identity.json"),
		coaches: coaches,
	}
}

// Login records the coach identity, creating the coach row on first sign-in.
func (p *FileProvider) Login(ctx context.Context, email string) (*domain.Coach, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	coach, err := p.coaches.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		coach = &domain.Coach{ID: uuid.New().String(), Email: email}
		err = p.coaches.Upsert(ctx, coach)
	}
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(identityFile{CoachID: coach.ID, Email: coach.Email})
	if err != nil {
		return nil, fmt.Errorf("encoding identity: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return nil, fmt.Errorf("creating identity directory: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o600); err != nil {
		return nil, fmt.Errorf("writing identity: %w", err)
	}
	return coach, nil
}

// Logout removes the stored identity.
func (p *FileProvider) Logout() error {
	err := os.Remove(p.path)
	if os.IsNotExist(err) {
		return ErrNotSignedIn
	}
	if err != nil {
		return fmt.Errorf("removing identity: %w", err)
	}
	return nil
}

// Current returns the signed-in coach, verified against the database.
func (p *FileProvider) Current(ctx context.Context) (*domain.Coach, error) {
	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return nil, ErrNotSignedIn
	}
	if err != nil {
		return nil, fmt.Errorf("reading identity: %w", err)
	}

	var id identityFile
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, fmt.Errorf("parsing identity: %w", err)
	}
	if id.CoachID == "" {
		return nil, ErrNotSignedIn
	}

	coach, err := p.coaches.GetByID(ctx, id.CoachID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotSignedIn
	}
	if err != nil {
		return nil, err
	}
	return coach, nil
}
