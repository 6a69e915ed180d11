package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/donorhub/donorhub/internal/audit"
	"github.com/donorhub/donorhub/internal/domain"
	"github.com/donorhub/donorhub/internal/mailer"
	"github.com/donorhub/donorhub/internal/repository"
	"github.com/donorhub/donorhub/pkg/jwt"
	"github.com/donorhub/donorhub/pkg/log"
)

const otpTTL = 10 * time.Minute

type authService struct {
	users  repository.UserRepository
	otps   repository.OTPRepository
	mail   mailer.Mailer
	tokens *jwt.Manager
}

func NewAuthService(
	users repository.UserRepository,
	otps repository.OTPRepository,
	mail mailer.Mailer,
	tokens *jwt.Manager,
) AuthService {
	return &authService{
		users:  users,
		otps:   otps,
		mail:   mail,
		tokens: tokens,
	}
}

// SendOTP generates a one-time code for the email and mails it. An
// unexpired code for the same email blocks a new one, so a client cannot
// request codes in a tight loop.
func (s *authService) SendOTP(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return fmt.Errorf("%w: email already registered", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	if _, err := s.otps.GetActiveByEmail(ctx, email); err == nil {
		return fmt.Errorf("%w: a code was already sent", domain.ErrRateLimited)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	code, err := generateOTPCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	otp := &domain.OTP{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(otpTTL),
	}
	if err := s.otps.Create(ctx, otp); err != nil {
		return err
	}

	body := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(otpTTL.Minutes()))
	if err := s.mail.Send(ctx, email, "Your verification code", body); err != nil {
		// A code we could not deliver must not block the next attempt.
		if delErr := s.otps.Delete(ctx, otp.ID); delErr != nil {
			l := log.Ctx(ctx)
			l.Error().Err(delErr).Msg("failed to clean up undelivered code")
		}
		return fmt.Errorf("failed to deliver code: %w", err)
	}

	audit.Log(ctx, audit.ActionSendOTP, "", "verification code sent")
	return nil
}

// Register creates an account after verifying the one-time code, then
// returns a signed token so the client is logged in immediately.
func (s *authService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	otp, err := s.otps.GetActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid or expired verification code", domain.ErrValidation)
		}
		return nil, err
	}
	if otp.Code != req.OTP {
		return nil, fmt.Errorf("%w: invalid or expired verification code", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		BloodGroup:   strings.ToUpper(strings.TrimSpace(req.BloodGroup)),
		Role:         domain.RoleUser,
	}
	if !domain.ValidBloodGroup(user.BloodGroup) {
		return nil, fmt.Errorf("%w: unknown blood group %q", domain.ErrValidation, req.BloodGroup)
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.otps.Consume(ctx, otp.ID); err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Msg("failed to consume verification code")
	}

	audit.Log(ctx, audit.ActionRegister, user.ID, "account registered")
	return s.issueToken(user)
}

// Login verifies credentials and returns a signed token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			audit.Log(ctx, audit.ActionLoginFailed, "", "login failed")
			return nil, fmt.Errorf("%w: invalid credentials", domain.ErrNotAuthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		audit.Log(ctx, audit.ActionLoginFailed, user.ID, "login failed")
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrNotAuthorized)
	}

	audit.Log(ctx, audit.ActionLogin, user.ID, "login succeeded")
	return s.issueToken(user)
}

func (s *authService) issueToken(user *domain.User) (*domain.AuthResponse, error) {
	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Email, user.FullName, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &domain.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.ID,
		FullName:  user.FullName,
		Role:      user.Role,
	}, nil
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
