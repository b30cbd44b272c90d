package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ms1708/academy-portal/internal/backend"
	"github.com/ms1708/academy-portal/internal/domain"
	"github.com/ms1708/academy-portal/internal/errorlog"
	"github.com/ms1708/academy-portal/internal/events"
	"github.com/ms1708/academy-portal/internal/storage"
)

// Store owns the authenticated-user context: access token, refresh token and
// the current user record, persisted synchronously under fixed storage keys.
// Observers subscribe through the event dispatcher instead of polling.
type Store struct {
	mu         sync.RWMutex
	gateway    *backend.Client
	storage    storage.Store
	dispatcher events.Dispatcher
	errs       *errorlog.Log
	logger     *zap.Logger
	current    *domain.Session
	now        func() time.Time
}

// NewStore builds the session store and runs startup initialization: a stored
// token and user that are present and still valid restore the authenticated
// state; anything else clears stale storage. The store registers itself as
// the gateway's bearer-token source.
func NewStore(gateway *backend.Client, store storage.Store, dispatcher events.Dispatcher, errs *errorlog.Log, logger *zap.Logger) *Store {
	s := &Store{
		gateway:    gateway,
		storage:    store,
		dispatcher: dispatcher,
		errs:       errs,
		logger:     logger,
		now:        time.Now,
	}
	gateway.SetTokenSource(s.StoredToken)
	s.initialize()
	return s
}

func (s *Store) initialize() {
	token := s.StoredToken()
	user := s.storedUser()

	if token != "" && user != nil && TokenValid(token, s.now()) {
		expiry, _ := TokenExpiry(token)
		s.mu.Lock()
		s.current = &domain.Session{
			Token:        token,
			RefreshToken: s.storedRefreshToken(),
			User:         *user,
			ExpiresAt:    expiry,
		}
		s.mu.Unlock()
		s.publish(events.EventSessionLoggedIn, user)
		return
	}
	s.clearAuthData(context.Background())
}

// Login authenticates with email and password. Stored state is only mutated
// on success; failures come back classified for display.
func (s *Store) Login(ctx context.Context, credentials LoginRequest) (*domain.Session, error) {
	var resp LoginResponse
	if err := s.gateway.Post(ctx, endpointLogin, credentials, &resp); err != nil {
		s.errs.RecordError("Login failed", err, map[string]interface{}{"email": credentials.Email})
		return nil, classifyAuthError(err)
	}

	sess := s.setAuthData(ctx, resp)
	s.errs.Record(errorlog.LevelInfo, "User logged in: "+resp.User.Email, nil)
	s.publish(events.EventSessionLoggedIn, &resp.User)
	return sess, nil
}

// Logout notifies the backend best-effort and always clears local state.
func (s *Store) Logout(ctx context.Context) {
	if user := s.CurrentUser(); user != nil {
		s.errs.Record(errorlog.LevelInfo, "User logged out: "+user.Email, nil)
	}

	if err := s.gateway.Post(ctx, endpointLogout, struct{}{}, nil); err != nil {
		// Local session clearing must succeed regardless of backend
		// reachability.
		s.errs.Record(errorlog.LevelWarn, "Logout API call failed", map[string]interface{}{"cause": err.Error()})
	}

	s.clearAuthData(ctx)
	s.publish(events.EventSessionLoggedOut, nil)
}

// Refresh exchanges the stored refresh token for a new session. Failure, or
// having no refresh token at all, clears the session.
func (s *Store) Refresh(ctx context.Context) (*domain.Session, error) {
	refreshToken := s.storedRefreshToken()
	if refreshToken == "" {
		s.clearAuthData(ctx)
		return nil, ErrNoRefreshToken
	}

	var resp LoginResponse
	if err := s.gateway.Post(ctx, endpointRefresh, refreshRequest{RefreshToken: refreshToken}, &resp); err != nil {
		s.errs.RecordError("Token refresh failed", err, nil)
		s.clearAuthData(ctx)
		return nil, err
	}

	sess := s.setAuthData(ctx, resp)
	s.publish(events.EventSessionRefreshed, &resp.User)
	return sess, nil
}

// Register creates a new account. Registration does not log the user in; the
// OTP verification flow follows.
func (s *Store) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := s.gateway.Post(ctx, endpointRegister, req, &resp); err != nil {
		s.errs.RecordError("Registration failed", err, map[string]interface{}{"email": req.Email})
		return nil, classifyAuthError(err)
	}
	s.errs.Record(errorlog.LevelInfo, "User registered: "+resp.Email, nil)
	return &resp, nil
}

// VerifyOTP confirms a registration with the emailed one-time code.
func (s *Store) VerifyOTP(ctx context.Context, userID, username, otp string) error {
	req := confirmOTPRequest{UserID: userID, Username: username, OTPText: otp}
	if err := s.gateway.Post(ctx, endpointConfirmOTP, req, nil); err != nil {
		s.errs.RecordError("OTP verification failed", err, map[string]interface{}{"username": username})
		return classifyAuthError(err)
	}
	return nil
}

// ResendOTP requests a fresh one-time code for the given email address.
func (s *Store) ResendOTP(ctx context.Context, email string) error {
	if err := s.gateway.Post(ctx, endpointResendOTP, nil, nil, backend.WithQuery("emailId", email)); err != nil {
		s.errs.RecordError("OTP resend failed", err, map[string]interface{}{"email": email})
		return classifyAuthError(err)
	}
	return nil
}

// ForgotPassword triggers the reset email.
func (s *Store) ForgotPassword(ctx context.Context, email string) error {
	if err := s.gateway.Post(ctx, endpointForgotPassword, forgotPasswordRequest{Email: email}, nil); err != nil {
		s.errs.RecordError("Forgot password failed", err, map[string]interface{}{"email": email})
		return classifyAuthError(err)
	}
	s.errs.Record(errorlog.LevelInfo, "Password reset email sent to: "+email, nil)
	return nil
}

// ChangePassword updates the password of the authenticated user.
func (s *Store) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	req := changePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}
	if err := s.gateway.Put(ctx, endpointChangePassword, req, nil); err != nil {
		s.errs.RecordError("Password change failed", err, nil)
		return classifyAuthError(err)
	}
	s.errs.Record(errorlog.LevelInfo, "Password changed successfully", nil)
	return nil
}

// UpdateProfile sends partial profile fields and replaces the stored user
// with the backend's updated record.
func (s *Store) UpdateProfile(ctx context.Context, updates UpdateProfileRequest) (*domain.User, error) {
	var updated domain.User
	if err := s.gateway.Put(ctx, endpointProfile, updates, &updated); err != nil {
		s.errs.RecordError("Profile update failed", err, nil)
		return nil, classifyAuthError(err)
	}

	s.mu.Lock()
	if s.current != nil {
		s.current.User = updated
	}
	s.mu.Unlock()
	s.persistUser(ctx, updated)

	s.errs.Record(errorlog.LevelInfo, "Profile updated: "+updated.Email, nil)
	s.publish(events.EventProfileUpdated, &updated)
	return &updated, nil
}

// CurrentUser returns the logged-in user, or nil.
func (s *Store) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	user := s.current.User
	return &user
}

// Current returns a copy of the active session, or nil.
func (s *Store) Current() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	sess := *s.current
	return &sess
}

// IsAuthenticated reports whether a session is active right now.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.Active(s.now())
}

// StoredToken reads the persisted access token; empty when absent.
func (s *Store) StoredToken() string {
	data, err := s.storage.Get(context.Background(), storage.KeyToken)
	if err != nil {
		return ""
	}
	return string(data)
}

func (s *Store) storedRefreshToken() string {
	data, err := s.storage.Get(context.Background(), storage.KeyRefreshToken)
	if err != nil {
		return ""
	}
	return string(data)
}

// storedUser treats corrupt stored JSON as absent, not fatal.
func (s *Store) storedUser() *domain.User {
	data, err := s.storage.Get(context.Background(), storage.KeyUser)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("stored user unreadable", zap.Error(err))
		}
		return nil
	}
	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		s.logger.Warn("stored user corrupt", zap.Error(err))
		return nil
	}
	return &user
}

func (s *Store) setAuthData(ctx context.Context, resp LoginResponse) *domain.Session {
	expiry, err := TokenExpiry(resp.Token)
	if err != nil && resp.ExpiresIn > 0 {
		expiry = s.now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}

	sess := &domain.Session{
		Token:        resp.Token,
		RefreshToken: resp.RefreshToken,
		User:         resp.User,
		ExpiresAt:    expiry,
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	s.persistString(ctx, storage.KeyToken, resp.Token)
	s.persistString(ctx, storage.KeyRefreshToken, resp.RefreshToken)
	s.persistUser(ctx, resp.User)

	out := *sess
	return &out
}

func (s *Store) clearAuthData(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	for _, key := range []string{storage.KeyToken, storage.KeyRefreshToken, storage.KeyUser} {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Warn("clearing auth data failed", zap.String("key", key), zap.Error(err))
		}
	}
}

func (s *Store) persistString(ctx context.Context, key, value string) {
	if err := s.storage.Set(ctx, key, []byte(value)); err != nil {
		s.logger.Warn("persisting auth data failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) persistUser(ctx context.Context, user domain.User) {
	data, err := json.Marshal(user)
	if err != nil {
		s.logger.Warn("encoding user failed", zap.Error(err))
		return
	}
	if err := s.storage.Set(ctx, storage.KeyUser, data); err != nil {
		s.logger.Warn("persisting user failed", zap.Error(err))
	}
}

func (s *Store) publish(eventType events.EventType, user *domain.User) {
	payload := events.SessionPayload{Authenticated: user != nil}
	if user != nil {
		payload.UserID = user.ID
		payload.Email = user.Email
		payload.Role = user.Role
	}
	_ = s.dispatcher.Publish(context.Background(), events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: s.now(),
		Payload:   payload,
	})
}
