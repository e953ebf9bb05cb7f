package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/sessionauth/schema"
	"github.com/viant/sessionauth/state"
	"github.com/viant/sessionauth/widget"
)

// Exchange trades a widget credential for a backend session. It is accepted only
// while Unauthenticated or Failed. On success the state becomes Authenticated and
// the root path is navigated to; on failure the state becomes Failed, and a
// configured widget is prompted again.
func (s *Service) Exchange(ctx context.Context, credential string) (*schema.User, error) {
	return s.submit(ctx, credential, "")
}

// submit runs an exchange; promptID correlates it with the widget prompt that
// delivered the credential, empty for direct calls.
func (s *Service) submit(ctx context.Context, credential, promptID string) (*schema.User, error) {
	select {
	case s.guard <- struct{}{}:
	default:
		s.logger.Warn("credential exchange rejected", "error", schema.ErrExchangeInFlight, "prompt", promptID)
		return nil, schema.ErrExchangeInFlight
	}
	if current := s.store.Get(); current.Kind != state.Unauthenticated && current.Kind != state.Failed {
		<-s.guard
		err := fmt.Errorf("%w: %v", schema.ErrUnexpectedCredential, current.Kind)
		s.logger.Warn("credential exchange rejected", "error", err, "prompt", promptID)
		return nil, err
	}
	user, err := s.exchange(ctx, credential, promptID)
	if err == nil {
		s.navigate(s.rootPath)
	}
	<-s.guard
	if err != nil {
		if s.isConfigured() {
			s.arm()
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) exchange(ctx context.Context, credential, promptID string) (*schema.User, error) {
	token := widget.NewToken(credential)
	if !token.Valid() {
		reason := "credential expired"
		if token.AccessToken == "" {
			reason = "credential was empty"
		}
		err := &schema.AuthError{Reason: reason}
		s.logger.Warn("credential exchange failed", "reason", reason, "prompt", promptID)
		s.store.Set(state.FailedWith(reason))
		return nil, err
	}
	s.store.Set(state.Of(state.Exchanging))
	callCtx, cancel := context.WithTimeout(ctx, s.exchangeTimeout)
	defer cancel()
	user, err := s.backend.Login(callCtx, token.AccessToken)
	if err != nil {
		reason := schema.Reason(err)
		var authErr *schema.AuthError
		if errors.As(err, &authErr) {
			s.logger.Warn("credential rejected", "reason", reason, "status", authErr.StatusCode, "prompt", promptID)
		} else {
			s.logger.Error("credential exchange failed", "error", err, "prompt", promptID)
		}
		s.store.Set(state.FailedWith(reason))
		return nil, err
	}
	s.logger.Info("authenticated", "user", user.ID, "prompt", promptID)
	s.store.Set(state.AuthenticatedAs(user))
	return user, nil
}
