package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"yt-summarizer/internal/app"
	"yt-summarizer/internal/transport/http/middleware"
	"yt-summarizer/internal/transport/http/respond"
)

type AuthHandler struct {
	authService *app.AuthService
}

type AuthRequest struct {
	Email    string `json:"email" binding:"required,email,max=128"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type VerifyEmailRequest struct {
	OTP string `json:"otp" binding:"required,len=6"`
}

func NewAuthHandler(authService *app.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Authenticate handles POST /api/auth: login for a known email, signup
// otherwise.
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "a valid email and a password of 8-128 characters are required"})
		return
	}

	result, err := h.authService.Authenticate(app.AuthInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredential) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
			return
		}
		respond.Error(c, err, "Authentication failed, try again later!")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Authenticated successfully!",
		"token":   result.Token,
		"created": result.Created,
		"user": gin.H{
			"id":             result.User.ID,
			"email":          result.User.Email,
			"email_verified": result.User.EmailVerified,
		},
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token payload"})
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		respond.Error(c, err, "Fetching current user failed, try again later!")
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": app.MsgHistoryUserNotFound})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             user.ID,
		"email":          user.Email,
		"email_verified": user.EmailVerified,
	})
}

// SendVerificationOTP handles POST /api/auth/send-verification-otp.
func (h *AuthHandler) SendVerificationOTP(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token payload"})
		return
	}

	if err := h.authService.SendVerificationOTP(userID); err != nil {
		if errors.Is(err, app.ErrAlreadyVerified) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		respond.Error(c, err, "Sending verification code failed, try again later!")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent to your email."})
}

// VerifyEmail handles POST /api/auth/verify-email.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token payload"})
		return
	}

	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "a 6-digit verification code is required"})
		return
	}

	if err := h.authService.VerifyEmail(userID, req.OTP); err != nil {
		switch {
		case errors.Is(err, app.ErrOTPMismatch), errors.Is(err, app.ErrAlreadyVerified):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			respond.Error(c, err, "Email verification failed, try again later!")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully!"})
}
