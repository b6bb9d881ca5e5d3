package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Learnspoint11/moryastationery/internal/models"
	"github.com/Learnspoint11/moryastationery/internal/repository"
	"github.com/Learnspoint11/moryastationery/internal/sms"
	"github.com/Learnspoint11/moryastationery/internal/utils"
)

// OTPLimiter caps how often codes may be requested for one mobile number.
// A nil limiter disables the cap.
type OTPLimiter interface {
	Allow(ctx context.Context, mobile string) (bool, error)
}

// AuthService implements registration, login and the mobile OTP flow.
type AuthService struct {
	users   repository.UserRepository
	sender  sms.Sender
	limiter OTPLimiter
	otpTTL  time.Duration
	logger  *zap.SugaredLogger
}

// NewAuthService constructs an AuthService.
func NewAuthService(users repository.UserRepository, sender sms.Sender, limiter OTPLimiter, otpTTL time.Duration, logger *zap.SugaredLogger) *AuthService {
	return &AuthService{
		users:   users,
		sender:  sender,
		limiter: limiter,
		otpTTL:  otpTTL,
		logger:  logger,
	}
}

// Register creates a new account with a hashed password. Accounts start
// verified; the OTP flow re-drives the flag when a mobile number is added.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Errorw("user lookup failed", "username", username, "error", err)
		return nil, ErrPersistenceFailure
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		IsVerified:   true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateUsername
		}
		s.logger.Errorw("user create failed", "username", username, "error", err)
		return nil, ErrPersistenceFailure
	}

	return user, nil
}

// Login checks the credentials and returns the account. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Errorw("user lookup failed", "username", username, "error", err)
		return nil, ErrPersistenceFailure
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// SendOTP stores a fresh code with expiry on the user record and dispatches
// it by SMS. Any previous outstanding code is overwritten. The code is
// persisted before dispatch, so a delivery failure leaves a valid code
// behind; a repeated request simply replaces it.
func (s *AuthService) SendOTP(ctx context.Context, userID, mobile string) error {
	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, mobile)
		if err != nil {
			s.logger.Errorw("otp limiter failed", "mobile", mobile, "error", err)
			return ErrPersistenceFailure
		}
		if !allowed {
			return ErrOTPRateLimited
		}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		s.logger.Errorw("user lookup failed", "user_id", userID, "error", err)
		return ErrPersistenceFailure
	}

	code, err := utils.GenerateOTPCode()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(s.otpTTL)
	user.Mobile = mobile
	user.OTPCode = code
	user.OTPExpiresAt = &expiresAt

	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Errorw("otp persist failed", "user_id", userID, "error", err)
		return ErrPersistenceFailure
	}

	s.logger.Infow("otp issued", "user_id", userID, "mobile", mobile)

	if err := s.sender.Send(ctx, mobile, code); err != nil {
		s.logger.Errorw("otp dispatch failed", "mobile", mobile, "error", err)
		return ErrOTPSendFailed
	}

	return nil
}

// VerifyOTP checks the submitted code against the stored one. On a match
// within the validity window the account is marked verified and the code is
// cleared, so the same code cannot be replayed. A failed attempt against an
// expired code purges it; re-verification then requires a fresh SendOTP.
func (s *AuthService) VerifyOTP(ctx context.Context, userID, submitted string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidOrExpiredOTP
		}
		s.logger.Errorw("user lookup failed", "user_id", userID, "error", err)
		return ErrPersistenceFailure
	}

	if !user.HasPendingOTP() {
		return ErrInvalidOrExpiredOTP
	}

	if time.Now().After(*user.OTPExpiresAt) {
		user.ClearOTP()
		if err := s.users.Update(ctx, user); err != nil {
			s.logger.Errorw("stale otp purge failed", "user_id", userID, "error", err)
		}
		return ErrInvalidOrExpiredOTP
	}

	if strings.TrimSpace(submitted) != user.OTPCode {
		return ErrInvalidOrExpiredOTP
	}

	user.IsVerified = true
	user.ClearOTP()

	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Errorw("verification persist failed", "user_id", userID, "error", err)
		return ErrPersistenceFailure
	}

	return nil
}
