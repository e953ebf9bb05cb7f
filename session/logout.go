package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/viant/sessionauth/schema"
	"github.com/viant/sessionauth/state"
)

// Logout ends the backend session after any exchange in flight settles. On success,
// or when the backend has no session, the state becomes Unauthenticated and the
// login path is navigated to. Other failures leave the state unchanged. A session
// restored by the probe never configured the widget, so the widget wait starts in
// the background.
func (s *Service) Logout(ctx context.Context) error {
	if !s.store.Initialized() {
		return schema.ErrNotInitialized
	}
	select {
	case s.guard <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	err := s.logout(ctx)
	if err == nil {
		s.navigate(s.loginPath)
	}
	<-s.guard
	if err != nil {
		return err
	}
	if s.isConfigured() {
		s.arm()
	} else {
		s.reconfigure()
	}
	return nil
}

func (s *Service) logout(ctx context.Context) error {
	callCtx, cancel := context.WithTimeout(ctx, s.logoutTimeout)
	defer cancel()
	if err := s.backend.Logout(callCtx); err != nil {
		var netErr *schema.NetworkError
		if !errors.As(err, &netErr) || netErr.StatusCode != http.StatusUnauthorized {
			s.logger.Error("logout failed", "error", err)
			return err
		}
		s.logger.Info("logout found no backend session")
	}
	s.store.Set(state.Of(state.Unauthenticated))
	return nil
}
