package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"yt-summarizer/internal/model"
	"yt-summarizer/internal/pkg/jwtutil"
)

type fakeAuthStore struct {
	byEmail map[string]*model.User
	byID    map[uint]*model.User
	nextID  uint
}

func newFakeAuthStore() *fakeAuthStore {
	return &fakeAuthStore{
		byEmail: map[string]*model.User{},
		byID:    map[uint]*model.User{},
		nextID:  1,
	}
}

func (f *fakeAuthStore) Create(user *model.User) error {
	user.ID = f.nextID
	f.nextID++
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeAuthStore) GetByEmail(email string) (*model.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeAuthStore) GetByID(id uint) (*model.User, error) {
	return f.byID[id], nil
}

func (f *fakeAuthStore) SetEmailOTP(userID uint, otp string) error {
	user := f.byID[userID]
	user.EmailOTP = otp
	now := time.Now()
	user.EmailOTPSentAt = &now
	return nil
}

func (f *fakeAuthStore) MarkEmailVerified(userID uint) error {
	user := f.byID[userID]
	user.EmailVerified = true
	user.EmailOTP = ""
	user.EmailOTPSentAt = nil
	return nil
}

func newAuthService(store *fakeAuthStore) *AuthService {
	return NewAuthService(store, "test-secret", time.Hour, 10*time.Minute)
}

func TestAuthenticate_SignupCreatesUnverifiedUser(t *testing.T) {
	t.Parallel()

	store := newFakeAuthStore()
	svc := newAuthService(store)

	result, err := svc.Authenticate(AuthInput{Email: "New@Example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)

	assert.True(t, result.Created)
	assert.Equal(t, "new@example.com", result.User.Email)
	assert.False(t, result.User.EmailVerified)
	assert.NotNil(t, result.User.SummarizeHistory)
	assert.Empty(t, result.User.SummarizeHistory)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(result.User.PasswordHash), []byte("hunter2hunter2")))

	claims, err := jwtutil.ParseToken("test-secret", result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "new@example.com", claims.Email)
}

func TestAuthenticate_LoginExistingUser(t *testing.T) {
	t.Parallel()

	store := newFakeAuthStore()
	svc := newAuthService(store)

	first, err := svc.Authenticate(AuthInput{Email: "a@b.co", Password: "correct-horse"})
	require.NoError(t, err)

	second, err := svc.Authenticate(AuthInput{Email: "a@b.co", Password: "correct-horse"})
	require.NoError(t, err)

	assert.False(t, second.Created)
	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	t.Parallel()

	store := newFakeAuthStore()
	svc := newAuthService(store)

	_, err := svc.Authenticate(AuthInput{Email: "a@b.co", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = svc.Authenticate(AuthInput{Email: "a@b.co", Password: "battery-staple"})
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestAuthenticate_RejectsShortPassword(t *testing.T) {
	t.Parallel()

	svc := newAuthService(newFakeAuthStore())

	_, err := svc.Authenticate(AuthInput{Email: "a@b.co", Password: "short"})

	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, KindInvalidInput, domainErr.Kind)
}

func TestVerifyEmail_Flow(t *testing.T) {
	t.Parallel()

	store := newFakeAuthStore()
	svc := newAuthService(store)

	result, err := svc.Authenticate(AuthInput{Email: "a@b.co", Password: "correct-horse"})
	require.NoError(t, err)
	userID := result.User.ID

	require.NoError(t, svc.SendVerificationOTP(userID))
	otp := store.byID[userID].EmailOTP
	require.Len(t, otp, 6)

	assert.ErrorIs(t, svc.VerifyEmail(userID, "000000"), ErrOTPMismatch)
	require.NoError(t, svc.VerifyEmail(userID, otp))
	assert.True(t, store.byID[userID].EmailVerified)

	// Further verification attempts are rejected once verified.
	assert.ErrorIs(t, svc.VerifyEmail(userID, otp), ErrAlreadyVerified)
	assert.ErrorIs(t, svc.SendVerificationOTP(userID), ErrAlreadyVerified)
}

func TestVerifyEmail_ExpiredOTP(t *testing.T) {
	t.Parallel()

	store := newFakeAuthStore()
	svc := NewAuthService(store, "test-secret", time.Hour, time.Nanosecond)

	result, err := svc.Authenticate(AuthInput{Email: "a@b.co", Password: "correct-horse"})
	require.NoError(t, err)
	userID := result.User.ID

	require.NoError(t, svc.SendVerificationOTP(userID))
	otp := store.byID[userID].EmailOTP

	time.Sleep(time.Millisecond)
	assert.ErrorIs(t, svc.VerifyEmail(userID, otp), ErrOTPMismatch)
}

func TestSendVerificationOTP_UserNotFound(t *testing.T) {
	t.Parallel()

	svc := newAuthService(newFakeAuthStore())

	err := svc.SendVerificationOTP(99)

	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, domainErr.Kind)
}
