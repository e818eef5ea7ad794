package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	mw "github.com/quiz-framework/quiz-backend/pkg/apihelpers/middlewares"
	jwthandling "github.com/quiz-framework/quiz-backend/pkg/jwt-handling"
	"github.com/quiz-framework/quiz-backend/pkg/messaging/sms"
	usermanagement "github.com/quiz-framework/quiz-backend/pkg/user-management"
	umUtils "github.com/quiz-framework/quiz-backend/pkg/user-management/utils"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddQuizAuthAPI(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/request-otp", mw.RequirePayload(), h.requestOTP)
		authGroup.POST("/verify-otp", mw.RequirePayload(), h.verifyOTP)
	}
}

type RequestOTPReq struct {
	PhoneNumber string `json:"phoneNumber"`
}

func (h *HttpEndpoints) requestOTP(c *gin.Context) {
	var req RequestOTPReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	credential, err := usermanagement.RequestOTP(req.PhoneNumber, sms.SendOTPSMS)
	if err != nil {
		switch {
		case errors.Is(err, usermanagement.ErrInvalidPhoneNumber):
			slog.Warn("otp requested with invalid phone number")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phone number"})
			return
		case errors.Is(err, usermanagement.ErrDeliveryFailed):
			// the code is stored and stays valid, only delivery went wrong
			slog.Error("failed to deliver OTP", slog.String("error", err.Error()), slog.String("phone", umUtils.BlurPhoneNumber(req.PhoneNumber)))
			c.JSON(http.StatusOK, gin.H{"message": "OTP stored but could not be delivered, please retry"})
			return
		default:
			slog.Error("failed to request OTP", slog.String("error", err.Error()), slog.String("phone", umUtils.BlurPhoneNumber(req.PhoneNumber)))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
	}

	slog.Info("OTP requested", slog.String("subject", credential.ID.Hex()))

	resp := gin.H{"message": "OTP sent"}
	if h.debugMode {
		// harness convenience only, never enabled in a deployed configuration
		resp["otp"] = credential.OTP
	}
	c.JSON(http.StatusOK, resp)
}

type VerifyOTPReq struct {
	PhoneNumber string `json:"phoneNumber"`
	OTP         string `json:"otp"`
}

func (h *HttpEndpoints) verifyOTP(c *gin.Context) {
	var req VerifyOTPReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code := strings.TrimSpace(req.OTP)
	credential, err := usermanagement.VerifyOTP(req.PhoneNumber, code)
	if err != nil {
		blurredPhone := umUtils.BlurPhoneNumber(req.PhoneNumber)
		switch {
		case errors.Is(err, usermanagement.ErrInvalidPhoneNumber):
			slog.Warn("otp verification with invalid phone number")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phone number"})
		case errors.Is(err, usermanagement.ErrUnknownPrincipal):
			slog.Warn("otp verification for unknown phone number", slog.String("phone", blurredPhone))
			randomWait(1, 4)
			c.JSON(http.StatusNotFound, gin.H{"error": "no OTP was requested for this phone number"})
		case errors.Is(err, usermanagement.ErrNoPendingVerification):
			slog.Warn("otp verification without pending code", slog.String("phone", blurredPhone))
			c.JSON(http.StatusConflict, gin.H{"error": "no pending verification"})
		case errors.Is(err, usermanagement.ErrCodeMismatch):
			slog.Warn("otp verification with wrong code", slog.String("phone", blurredPhone))
			randomWait(1, 4)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid code"})
		case errors.Is(err, usermanagement.ErrCodeExpired):
			slog.Warn("otp verification with expired code", slog.String("phone", blurredPhone))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "code expired"})
		default:
			slog.Error("failed to verify OTP", slog.String("error", err.Error()), slog.String("phone", blurredPhone))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	// the OTP fields are durably cleared at this point, mint the session
	token, err := jwthandling.GenerateNewQuizUserToken(
		h.tokenExpiresIn,
		credential.ID.Hex(),
		credential.PhoneNumber,
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	slog.Info("otp verification successful", slog.String("subject", credential.ID.Hex()))

	c.JSON(http.StatusOK, gin.H{
		"token": gin.H{
			"accessToken": token,
			"expiresIn":   h.tokenExpiresIn.Seconds(),
			"issuedAt":    time.Now().Unix(),
		},
		"userId":      credential.ID.Hex(),
		"phoneNumber": credential.PhoneNumber,
		"message":     "verification successful",
	})
}
