package auth

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *database.Client {
	t.Helper()
	db, err := database.New(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func TestRegister(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice@Example.com", "correct horse", "Alice", "Archer")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.False(t, user.IsAdmin)

	// the stored credential must never equal the plaintext
	assert.NotEqual(t, "correct horse", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.Register(ctx, "A@x.com", "password-one", "A", "One")
	require.NoError(t, err)

	// same address with different casing must collide
	_, err = svc.Register(ctx, "a@X.COM", "password-two", "A", "Two")
	assert.ErrorIs(t, err, database.ErrDuplicateEmail)

	// exactly one row survived
	user, err := svc.Verify(ctx, "a@x.com", "password-one")
	require.NoError(t, err)
	assert.Equal(t, "A", user.FirstName)
	assert.Equal(t, "One", user.LastName)
}

func TestRegisterConcurrentDuplicate(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(ctx, "race@example.com", "some password", "Race", "Condition")
		}(i)
	}
	wg.Wait()

	var dupes, oks int
	for _, err := range errs {
		if err == nil {
			oks++
			continue
		}
		assert.ErrorIs(t, err, database.ErrDuplicateEmail)
		dupes++
	}
	assert.Equal(t, 1, oks, "exactly one registration must succeed")
	assert.Equal(t, 1, dupes, "the other must see a duplicate email error")
}

func TestVerify(t *testing.T) {
	svc := NewService(newTestDB(t))
	ctx := context.Background()

	registered, err := svc.Register(ctx, "bob@example.com", "super secret", "Bob", "Builder")
	require.NoError(t, err)

	user, err := svc.Verify(ctx, "BOB@example.com", "super secret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	// wrong password and unknown email are indistinguishable
	_, wrongPass := svc.Verify(ctx, "bob@example.com", "wrong")
	_, unknown := svc.Verify(ctx, "nobody@example.com", "whatever")
	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
	assert.Equal(t, wrongPass, unknown)
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already lowercase", input: "a@x.com", want: "a@x.com"},
		{name: "mixed case", input: "A@X.Com", want: "a@x.com"},
		{name: "surrounding whitespace", input: "  a@x.com ", want: "a@x.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeEmail(tt.input))
		})
	}
}
