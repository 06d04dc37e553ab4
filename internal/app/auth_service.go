package app

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"yt-summarizer/internal/model"
	"yt-summarizer/internal/pkg/jwtutil"
)

var (
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrOTPMismatch       = errors.New("verification code is wrong or expired")
	ErrAlreadyVerified   = errors.New("email is already verified")
)

// AuthUserStore is the persistence surface the auth flows need.
type AuthUserStore interface {
	Create(user *model.User) error
	GetByEmail(email string) (*model.User, error)
	GetByID(id uint) (*model.User, error)
	SetEmailOTP(userID uint, otp string) error
	MarkEmailVerified(userID uint) error
}

type AuthService struct {
	users         AuthUserStore
	jwtSecret     string
	jwtExpiration time.Duration
	otpExpiration time.Duration
}

type AuthInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token   string
	User    *model.User
	Created bool
}

func NewAuthService(users AuthUserStore, jwtSecret string, jwtExpiration, otpExpiration time.Duration) *AuthService {
	if otpExpiration <= 0 {
		otpExpiration = 10 * time.Minute
	}
	return &AuthService{
		users:         users,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		otpExpiration: otpExpiration,
	}
}

// Authenticate logs an existing user in or signs a new one up, keyed by
// email. A new account starts unverified with an empty history.
func (s *AuthService) Authenticate(input AuthInput) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)
	if email == "" || password == "" || len(password) < 8 {
		return nil, NewInvalidInput("email and a password of at least 8 characters are required")
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}

	created := false
	if user == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password failed: %w", err)
		}
		user = &model.User{
			Email:            email,
			PasswordHash:     string(hash),
			SummarizeHistory: []string{},
		}
		if err := s.users.Create(user); err != nil {
			return nil, err
		}
		created = true
	} else if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user, Created: created}, nil
}

// SendVerificationOTP stores a fresh 6-digit code on the user row.
// Delivery is a log line; there is no mail transport here.
func (s *AuthService) SendVerificationOTP(userID uint) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return NewNotFound(MsgHistoryUserNotFound)
	}
	if user.EmailVerified {
		return ErrAlreadyVerified
	}

	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generate otp failed: %w", err)
	}
	if err := s.users.SetEmailOTP(userID, otp); err != nil {
		return err
	}
	log.Printf("verification otp for %s issued", user.Email)
	return nil
}

// VerifyEmail redeems the stored OTP within its validity window.
func (s *AuthService) VerifyEmail(userID uint, otp string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return NewNotFound(MsgHistoryUserNotFound)
	}
	if user.EmailVerified {
		return ErrAlreadyVerified
	}

	otp = strings.TrimSpace(otp)
	if otp == "" || user.EmailOTP == "" || otp != user.EmailOTP {
		return ErrOTPMismatch
	}
	if user.EmailOTPSentAt == nil || time.Since(*user.EmailOTPSentAt) > s.otpExpiration {
		return ErrOTPMismatch
	}

	return s.users.MarkEmailVerified(userID)
}

func (s *AuthService) GetUserByID(id uint) (*model.User, error) {
	if id == 0 {
		return nil, NewInvalidInput("invalid user id")
	}
	return s.users.GetByID(id)
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
