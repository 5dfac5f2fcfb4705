package auth_test

import (
	"context"
	"testing"

	"github.com/mkovalenko/avatara/internal/auth"
	"github.com/mkovalenko/avatara/internal/repository"
	"github.com/mkovalenko/avatara/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvider(t *testing.T) *auth.FileProvider {
	t.Helper()
	database := testutil.NewTestDB(t)
	return auth.NewFileProvider(t.TempDir(), repository.NewSQLiteCoachRepo(database))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, auth.ValidateEmail("ana@example.com"))
	assert.NoError(t, auth.ValidateEmail("a.b+c@sub.example.co"))

	for _, bad := range []string{"", "nope", "a@b", "a @b.com", "@example.com", "a@"} {
		assert.Error(t, auth.ValidateEmail(bad), "email %q should be rejected", bad)
	}
}

func TestFileProvider_LoginAndCurrent(t *testing.T) {
	p := newProvider(t)

	coach, err := p.Login(context.Background(), "Ana@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", coach.Email)
	assert.NotEmpty(t, coach.ID)

	got, err := p.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, coach.ID, got.ID)
}

func TestFileProvider_LoginTwiceKeepsSameCoach(t *testing.T) {
	p := newProvider(t)

	first, err := p.Login(context.Background(), "ana@example.com")
	require.NoError(t, err)
	second, err := p.Login(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestFileProvider_CurrentWithoutLogin(t *testing.T) {
	p := newProvider(t)

	_, err := p.Current(context.Background())
	assert.ErrorIs(t, err, auth.ErrNotSignedIn)
}

func TestFileProvider_Logout(t *testing.T) {
	p := newProvider(t)

	_, err := p.Login(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.NoError(t, p.Logout())

	_, err = p.Current(context.Background())
	assert.ErrorIs(t, err, auth.ErrNotSignedIn)

	assert.ErrorIs(t, p.Logout(), auth.ErrNotSignedIn)
}

func TestFileProvider_LoginRejectsBadEmail(t *testing.T) {
	p := newProvider(t)

	_, err := p.Login(context.Background(), "not-an-email")
	assert.Error(t, err)
}
