package service

import (
	"errors"
	"testing"

	"github.com/kwadhq/cashflow-commander/internal/domain"
	"github.com/kwadhq/cashflow-commander/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() (*AuthService, *testutil.MockUserRepository, *testutil.MockLoginLogRepository) {
	userRepo := testutil.NewMockUserRepository()
	logRepo := testutil.NewMockLoginLogRepository()
	return NewAuthService(userRepo, logRepo), userRepo, logRepo
}

func TestAddUser(t *testing.T) {
	svc, _, _ := newAuthService()

	user, err := svc.AddUser("alice", "secret1", domain.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret1", string(user.PasswordHash))
}

func TestAddUser_Validation(t *testing.T) {
	svc, _, _ := newAuthService()

	t.Run("blank username", func(t *testing.T) {
		_, err := svc.AddUser("   ", "secret1", domain.RoleUser)
		assert.ErrorIs(t, err, domain.ErrUsernameRequired)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.AddUser("alice", "12345", domain.RoleUser)
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := svc.AddUser("alice", "secret1", domain.Role("owner"))
		assert.ErrorIs(t, err, domain.ErrInvalidRole)
	})

	t.Run("empty role defaults to user", func(t *testing.T) {
		user, err := svc.AddUser("carol", "secret1", "")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, user.Role)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.AddUser("dave", "secret1", domain.RoleUser)
		require.NoError(t, err)
		_, err = svc.AddUser("dave", "other-password", domain.RoleUser)
		assert.ErrorIs(t, err, domain.ErrUserExists)
	})
}

func TestLogin(t *testing.T) {
	svc, _, logRepo := newAuthService()
	_, err := svc.AddUser("alice", "secret1", domain.RoleUser)
	require.NoError(t, err)

	session, err := svc.Login("alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice", session.Username)
	assert.Equal(t, domain.RoleUser, session.Role)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", session.Token.String())

	require.Len(t, logRepo.Entries, 1)
	assert.Equal(t, domain.LoginSuccess, logRepo.Entries[0].Status)
}

// An unknown username and a wrong password must be indistinguishable to the
// caller.
func TestLogin_UniformFailure(t *testing.T) {
	svc, _, logRepo := newAuthService()
	_, err := svc.AddUser("alice", "secret1", domain.RoleUser)
	require.NoError(t, err)

	_, wrongPassErr := svc.Login("alice", "wrong-password")
	_, unknownUserErr := svc.Login("nobody", "whatever")

	assert.ErrorIs(t, wrongPassErr, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUserErr, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongPassErr.Error(), unknownUserErr.Error())

	// Both attempts are audited as failures
	require.Len(t, logRepo.Entries, 2)
	for _, entry := range logRepo.Entries {
		assert.Equal(t, domain.LoginFailure, entry.Status)
	}
}

func TestLogin_AuditLogIsBestEffort(t *testing.T) {
	svc, _, logRepo := newAuthService()
	_, err := svc.AddUser("alice", "secret1", domain.RoleUser)
	require.NoError(t, err)

	logRepo.AppendErr = errors.New("disk full")

	session, err := svc.Login("alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice", session.Username)
}

func TestLogin_Throttled(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	logRepo := testutil.NewMockLoginLogRepository()
	svc := NewAuthServiceWithLoginLimit(userRepo, logRepo, 1, 2)

	_, err := svc.AddUser("alice", "secret1", domain.RoleUser)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := svc.Login("alice", "wrong-password")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}
	_, err = svc.Login("alice", "secret1")
	assert.ErrorIs(t, err, domain.ErrTooManyAttempts)

	// Other usernames are not affected
	_, err = svc.Login("bob", "whatever")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUpdatePassword(t *testing.T) {
	svc, _, _ := newAuthService()
	_, err := svc.AddUser("alice", "secret1", domain.RoleUser)
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePassword("alice", "new-secret"))

	_, err = svc.Login("alice", "secret1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	session, err := svc.Login("alice", "new-secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", session.Username)
}

func TestUpdatePassword_UnknownUser(t *testing.T) {
	svc, _, _ := newAuthService()

	err := svc.UpdatePassword("nobody", "new-secret")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdatePassword_TooShort(t *testing.T) {
	svc, _, _ := newAuthService()
	_, err := svc.AddUser("alice", "secret1", domain.RoleUser)
	require.NoError(t, err)

	err = svc.UpdatePassword("alice", "123")
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)

	// The old password still works
	_, err = svc.Login("alice", "secret1")
	assert.NoError(t, err)
}

func TestAdminOnlyListings(t *testing.T) {
	svc, _, _ := newAuthService()
	_, err := svc.AddUser("root", "secret1", domain.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.AddUser("alice", "secret1", domain.RoleUser)
	require.NoError(t, err)

	adminSession, err := svc.Login("root", "secret1")
	require.NoError(t, err)
	userSession, err := svc.Login("alice", "secret1")
	require.NoError(t, err)

	t.Run("admin lists users without hashes", func(t *testing.T) {
		users, err := svc.ListUsers(adminSession)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		_, err := svc.ListUsers(userSession)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		_, err = svc.ListLoginLogs(userSession)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("nil session is forbidden", func(t *testing.T) {
		_, err := svc.ListUsers(nil)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("admin reads login log most recent first", func(t *testing.T) {
		entries, err := svc.ListLoginLogs(adminSession)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "alice", entries[0].Username)
		assert.Equal(t, "root", entries[1].Username)
	})
}

func TestEnsureBootstrapAdmin(t *testing.T) {
	svc, userRepo, _ := newAuthService()

	require.NoError(t, svc.EnsureBootstrapAdmin("admin", "admin123"))
	user, err := userRepo.GetByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)

	// A second call with different credentials is a no-op
	require.NoError(t, svc.EnsureBootstrapAdmin("admin2", "otherpass"))
	_, err = userRepo.GetByUsername("admin2")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
