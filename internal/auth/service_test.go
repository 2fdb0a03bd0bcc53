package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"conbi/internal/config"
	"conbi/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(db) })

	cfg := config.Config{
		DataDir:    t.TempDir(),
		SessionTTL: time.Hour,
		BcryptCost: 4, // keep the tests fast
	}
	svc, err := New(db, cfg)
	require.NoError(t, err)
	return svc
}

func signUpAndConfirm(t *testing.T, svc *Service, email, password string) User {
	t.Helper()
	result, err := svc.SignUp(context.Background(), SignUpInput{
		Email:    email,
		Password: password,
		FullName: "Test User",
	})
	require.NoError(t, err)
	require.NoError(t, svc.ConfirmEmail(context.Background(), email, result.VerifyCode))
	return result.User
}

func TestSignUpValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpInput{Email: "not-an-email", Password: "secret1"})
	require.Error(t, err)

	_, err = svc.SignUp(ctx, SignUpInput{Email: "a@b.c", Password: "short"})
	require.Error(t, err)

	_, err = svc.SignUp(ctx, SignUpInput{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	// Same email again, case-insensitively.
	_, err = svc.SignUp(ctx, SignUpInput{Email: "A@B.C", Password: "secret1"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignInBeforeConfirmation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpInput{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, "a@b.c", "secret1")
	require.ErrorIs(t, err, ErrEmailNotConfirmed)
}

func TestSignInWrongPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	signUpAndConfirm(t, svc, "a@b.c", "secret1")

	_, err := svc.SignIn(ctx, "a@b.c", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, "nobody@b.c", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestConfirmEmailBadCode(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	result, err := svc.SignUp(ctx, SignUpInput{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	require.Error(t, svc.ConfirmEmail(ctx, "a@b.c", "WRONG0"))
	require.NoError(t, svc.ConfirmEmail(ctx, "a@b.c", result.VerifyCode))

	// Confirming twice is harmless.
	require.NoError(t, svc.ConfirmEmail(ctx, "a@b.c", "anything"))
}

func TestSessionRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user := signUpAndConfirm(t, svc, "a@b.c", "secret1")

	// No session before sign-in.
	session, err := svc.CurrentSession()
	require.NoError(t, err)
	require.Nil(t, session)

	signed, err := svc.SignIn(ctx, "a@b.c", "secret1")
	require.NoError(t, err)
	require.Equal(t, user.ID, signed.User.ID)

	// The persisted token restores the same identity.
	session, err = svc.CurrentSession()
	require.NoError(t, err)
	require.NotNil(t, session)
	require.Equal(t, user.ID, session.User.ID)
	require.Equal(t, "a@b.c", session.User.Email)

	require.NoError(t, svc.SignOut())
	session, err = svc.CurrentSession()
	require.NoError(t, err)
	require.Nil(t, session)
}

func TestExpiredSessionReadsAsSignedOut(t *testing.T) {
	svc := newTestService(t)
	svc.ttl = -time.Minute
	ctx := context.Background()

	signUpAndConfirm(t, svc, "a@b.c", "secret1")
	_, err := svc.SignIn(ctx, "a@b.c", "secret1")
	require.NoError(t, err)

	session, err := svc.CurrentSession()
	require.NoError(t, err)
	require.Nil(t, session)
}

func TestSubscribeNotifications(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	signUpAndConfirm(t, svc, "a@b.c", "secret1")

	var got []*Session
	unsubscribe := svc.Subscribe(func(s *Session) {
		got = append(got, s)
	})

	_, err := svc.SignIn(ctx, "a@b.c", "secret1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0])

	require.NoError(t, svc.SignOut())
	require.Len(t, got, 2)
	require.Nil(t, got[1])

	// After unsubscribing, nothing more arrives.
	unsubscribe()
	_, err = svc.SignIn(ctx, "a@b.c", "secret1")
	require.NoError(t, err)
	require.Len(t, got, 2)
}
