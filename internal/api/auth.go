package api

import (
	"net/http" // HTTP status codes

	"cloudkitchen/internal/upstream" // Upstream API client

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Request struct for signup
type SignupRequest struct {
	FirstName string `json:"firstName"`                            // Optional first name
	LastName  string `json:"lastName"`                             // Optional last name
	Email     string `json:"email" binding:"required,email"`       // Email must be provided
	Password  string `json:"password" binding:"required,min=8"`    // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"` // Email must be provided
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token string `json:"token"` // Upstream bearer token
}

// SignupHandler registers a new account with the upstream
func SignupHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Forward the signup to the upstream; the upstream owns the credential store
		err := api.Signup(c.Request.Context(), upstream.SignupRequest{
			FirstName: req.FirstName, // Optional first name
			LastName:  req.LastName,  // Optional last name
			Email:     req.Email,     // Account email
			Password:  req.Password,  // Password is passed through, never stored here
		})
		if err != nil {
			failUpstream(c, err, "Signup failed") // Classify and surface the failure
			return
		}
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "Account created. Check your email to verify."})
	}
}

// LoginHandler exchanges credentials for the upstream bearer token
func LoginHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Authenticate with the upstream
		token, err := api.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			failUpstream(c, err, "Login failed") // Classify and surface the failure
			return
		}
		// Log successful login without the credential itself
		logrus.WithFields(logrus.Fields{
			"email": req.Email, // Account email
		}).Info("Login succeeded")
		// Return the token in the response; the web client persists it locally
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}

// ForgotPasswordHandler starts the OTP reset flow
func ForgotPasswordHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required,email"` // Email must be provided
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := api.ForgotPassword(c.Request.Context(), req.Email); err != nil {
			failUpstream(c, err, "Could not start password reset")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset code has been sent."})
	}
}

// VerifyOTPHandler checks a reset code before the new password is submitted
func VerifyOTPHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required,email"` // Email must be provided
			OTP   string `json:"otp" binding:"required"`         // Reset code must be provided
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := api.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
			failUpstream(c, err, "Code verification failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Code verified"})
	}
}

// ResetPasswordHandler completes the OTP reset flow
func ResetPasswordHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email       string `json:"email" binding:"required,email"`         // Email must be provided
			OTP         string `json:"otp" binding:"required"`                 // Reset code must be provided
			NewPassword string `json:"newPassword" binding:"required,min=8"`   // New password must be provided
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := api.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
			failUpstream(c, err, "Password reset failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password updated. Please log in."})
	}
}

// VerifyEmailHandler confirms an email verification token
func VerifyEmailHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Token string `json:"token" binding:"required"` // Verification token must be provided
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := api.VerifyEmail(c.Request.Context(), req.Token); err != nil {
			failUpstream(c, err, "Email verification failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
	}
}

// ResendVerificationHandler re-sends the verification email
func ResendVerificationHandler(api *upstream.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required,email"` // Email must be provided
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := api.ResendVerification(c.Request.Context(), req.Email); err != nil {
			failUpstream(c, err, "Could not resend verification")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Verification email sent"})
	}
}
