package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"hrpay/internal/platform/cache"
	cryptoutil "hrpay/internal/platform/crypto"
)

const (
	mfaIssuer      = "hrpay"
	revokedKeyBase = "session:revoked:"
)

type Service struct {
	Store  *Store
	Crypto *cryptoutil.Service
	Cache  *cache.Client
	Secret string
	TTL    time.Duration
}

func NewService(store *Store, crypto *cryptoutil.Service, cacheClient *cache.Client, secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &Service{Store: store, Crypto: crypto, Cache: cacheClient, Secret: secret, TTL: ttl}
}

func (s *Service) Login(ctx context.Context, username, password, mfaCode string) (LoginResult, error) {
	user, err := s.Store.FindByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	if user.EmployeeStatus == employeeTerminated {
		return LoginResult{}, ErrInvalidCredentials
	}
	if user.MFAEnabled {
		if mfaCode == "" {
			return LoginResult{}, ErrMFARequired
		}
		secret, err := s.Crypto.OpenString(user.MFASecretEnc)
		if err != nil || secret == "" || !totp.Validate(mfaCode, secret) {
			return LoginResult{}, ErrMFAInvalid
		}
	}

	sessionID := NewSessionID()
	expires := time.Now().Add(s.TTL)
	if err := s.Store.CreateSession(ctx, user.ID, HashToken(sessionID), expires); err != nil {
		return LoginResult{}, err
	}

	uc := UserContext{
		UserID:     user.ID,
		EmployeeID: user.EmployeeID,
		Username:   user.Username,
		Role:       user.Role,
		SessionID:  sessionID,
	}
	token, err := GenerateToken(s.Secret, Claims{
		UserID:     uc.UserID,
		EmployeeID: uc.EmployeeID,
		Username:   uc.Username,
		Role:       uc.Role,
		SessionID:  uc.SessionID,
	}, s.TTL)
	if err != nil {
		return LoginResult{}, err
	}
	if err := s.Store.UpdateLastLogin(ctx, user.ID); err != nil {
		slog.Warn("update last_login failed", "userId", user.ID, "err", err)
	}
	return LoginResult{Token: token, ExpiresAt: expires, User: uc}, nil
}

func (s *Service) Logout(ctx context.Context, user UserContext) error {
	if user.SessionID == "" {
		return nil
	}
	hash := HashToken(user.SessionID)
	if err := s.Store.RevokeSession(ctx, user.UserID, hash); err != nil {
		return err
	}
	if err := s.Cache.SetJSONTTL(ctx, revokedKeyBase+hash, true, s.TTL); err != nil {
		slog.Warn("cache session revocation failed", "userId", user.UserID, "err", err)
	}
	return nil
}

// SessionActive is consulted by the auth middleware on every request. Revocations
// are answered from Redis when available so the database only sees live sessions.
func (s *Service) SessionActive(ctx context.Context, userID, sessionID string) (bool, error) {
	hash := HashToken(sessionID)
	revoked, err := s.Cache.Exists(ctx, revokedKeyBase+hash)
	if err != nil {
		slog.Warn("session cache lookup failed", "err", err)
	}
	if revoked {
		return false, nil
	}
	return s.Store.SessionActive(ctx, userID, hash)
}

func (s *Service) ChangePassword(ctx context.Context, userID, current, next, confirm string) error {
	user, err := s.Store.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := CheckPassword(user.PasswordHash, current); err != nil {
		return ErrPasswordMismatch
	}
	if next != confirm {
		return ErrPasswordConfirm
	}
	if err := ValidatePassword(next); err != nil {
		return err
	}
	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	return s.Store.UpdatePassword(ctx, userID, hash)
}

func (s *Service) SetupMFA(ctx context.Context, user UserContext) (MFASetup, error) {
	if !s.Crypto.Configured() {
		return MFASetup{}, ErrMFAUnavailable
	}
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      mfaIssuer,
		AccountName: user.Username,
		Period:      30,
		Digits:      otp.DigitsSix,
	})
	if err != nil {
		return MFASetup{}, err
	}
	sealed, err := s.Crypto.SealString(key.Secret())
	if err != nil {
		return MFASetup{}, err
	}
	if err := s.Store.UpdateMFASecret(ctx, user.UserID, sealed); err != nil {
		return MFASetup{}, err
	}
	return MFASetup{Secret: key.Secret(), OTPAuthURL: key.URL()}, nil
}

func (s *Service) SetMFA(ctx context.Context, userID, code string, enabled bool) error {
	if !s.Crypto.Configured() {
		return ErrMFAUnavailable
	}
	user, err := s.Store.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if len(user.MFASecretEnc) == 0 {
		return ErrMFANotSetup
	}
	secret, err := s.Crypto.OpenString(user.MFASecretEnc)
	if err != nil {
		return ErrMFAInvalid
	}
	if !totp.Validate(code, secret) {
		return ErrMFAInvalid
	}
	return s.Store.SetMFAEnabled(ctx, userID, enabled)
}
