package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/viant/sessionauth/config"
	"github.com/viant/sessionauth/internal/future"
	"github.com/viant/sessionauth/logger"
	"github.com/viant/sessionauth/schema"
	"github.com/viant/sessionauth/state"
	"github.com/viant/sessionauth/widget"
)

const widgetCancelled = "widget wait cancelled"

// Backend is the session part of the dashboard backend.
type Backend interface {
	Probe(ctx context.Context) (*schema.User, error)
	Login(ctx context.Context, credential string) (*schema.User, error)
	Logout(ctx context.Context) error
}

// Service drives the session state machine.
type Service struct {
	store     *state.Store
	backend   Backend
	loader    *widget.Loader
	logger    *logger.Logger
	navigator Navigator

	clientID        string
	rootPath        string
	loginPath       string
	pollInterval    time.Duration
	widgetTimeout   time.Duration
	probeTimeout    time.Duration
	exchangeTimeout time.Duration
	logoutTimeout   time.Duration

	started atomic.Bool
	startup sync.Mutex
	// guard is held by an exchange or a logout in flight
	guard  chan struct{}
	ctx    context.Context
	cancel context.CancelFunc

	mux        sync.Mutex
	configured bool
	closed     bool
	prompt     *future.Future[string]
	background sync.WaitGroup
}

// New creates a session service writing transitions to store.
func New(store *state.Store, backend Backend, loader *widget.Loader, options ...Option) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	ret := &Service{
		store:           store,
		backend:         backend,
		loader:          loader,
		logger:          logger.Nop(),
		navigator:       nopNavigator{},
		rootPath:        config.DefaultRootPath,
		loginPath:       config.DefaultLoginPath,
		pollInterval:    config.DefaultPollInterval,
		probeTimeout:    config.DefaultCallTimeout,
		exchangeTimeout: config.DefaultCallTimeout,
		logoutTimeout:   config.DefaultCallTimeout,
		guard:           make(chan struct{}, 1),
		ctx:             ctx,
		cancel:          cancel,
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.navigator == nil {
		ret.navigator = nopNavigator{}
	}
	return ret
}

// Store returns the state store.
func (s *Service) Store() *state.Store {
	return s.store
}

// Start runs the startup sequence once. Later or concurrent calls wait until the
// first one has settled, or ctx ends, and return the current state.
func (s *Service) Start(ctx context.Context) state.State {
	if !s.started.CompareAndSwap(false, true) {
		select {
		case <-s.store.Ready():
		case <-ctx.Done():
		}
		return s.store.Get()
	}
	s.startup.Lock()
	defer s.startup.Unlock()
	s.run(ctx)
	if s.store.MarkInitialized() {
		s.logger.Info("session initialized", "state", s.store.Get().String())
	}
	return s.store.Get()
}

// Retry restarts a failed session. A configured widget goes straight back to
// awaiting a credential once any exchange in flight settles, otherwise the probe
// and widget wait run again.
func (s *Service) Retry(ctx context.Context) state.State {
	if !s.store.Initialized() {
		return s.Start(ctx)
	}
	s.startup.Lock()
	defer s.startup.Unlock()
	current := s.store.Get()
	if current.Kind != state.Failed {
		return current
	}
	if s.isConfigured() {
		// the failed exchange may still be releasing the guard
		select {
		case s.guard <- struct{}{}:
		case <-ctx.Done():
			return s.store.Get()
		}
		if s.store.Get().Kind == state.Failed {
			s.store.Set(state.Of(state.Unauthenticated))
		}
		<-s.guard
		s.arm()
		return s.store.Get()
	}
	s.run(ctx)
	return s.store.Get()
}

// Close cancels the widget wait and the pending credential prompt, then waits for
// background work to finish. It must not be called from a listener or navigator.
func (s *Service) Close() {
	s.mux.Lock()
	s.closed = true
	prompt := s.prompt
	s.prompt = nil
	s.mux.Unlock()
	s.cancel()
	if prompt != nil {
		prompt.Cancel()
	}
	s.background.Wait()
}

// spawn runs fn in a goroutine tracked by Close; it reports false once closed.
func (s *Service) spawn(fn func()) bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.closed {
		return false
	}
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		fn()
	}()
	return true
}

func (s *Service) run(ctx context.Context) {
	s.store.Set(state.Of(state.Checking))
	user, err := s.probe(ctx)
	if err != nil {
		s.logger.Error("session probe failed", "error", err)
		s.store.Set(state.FailedWith(schema.Reason(err)))
		return
	}
	if user != nil {
		s.store.Set(state.AuthenticatedAs(user))
		return
	}
	s.awaitWidget(ctx)
}

func (s *Service) probe(ctx context.Context) (*schema.User, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()
	return s.backend.Probe(callCtx)
}

func (s *Service) awaitWidget(ctx context.Context) {
	s.store.Set(state.Of(state.WidgetAwaited))
	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	capability, err := s.loader.AwaitReady(waitCtx, s.pollInterval, s.widgetTimeout)
	switch {
	case errors.Is(err, schema.ErrTimedOut):
		s.logger.Warn("identity widget unavailable", "timeout", s.widgetTimeout)
		s.store.Set(state.FailedWith(err.Error()))
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.logger.Info(widgetCancelled)
		s.store.Set(state.FailedWith(widgetCancelled))
		return
	case err != nil:
		s.store.Set(state.FailedWith(err.Error()))
		return
	}
	// a credential delivered during configuration resolves the prompt and is
	// exchanged once the state is Unauthenticated
	prompt := s.pending()
	if err = s.loader.Configure(capability, s.clientID, s.onCredential); err != nil {
		s.disarm()
		s.logger.Error("identity widget configuration failed", "error", err)
		s.store.Set(state.FailedWith(err.Error()))
		return
	}
	s.mux.Lock()
	s.configured = true
	s.mux.Unlock()
	s.store.Set(state.Of(state.Unauthenticated))
	if prompt != nil && !s.spawn(func() { s.await(prompt) }) {
		prompt.Cancel()
	}
}

// reconfigure waits for the widget in the background after a session restored by
// the probe has been logged out, so the next credential can be accepted.
func (s *Service) reconfigure() {
	s.spawn(func() {
		s.startup.Lock()
		defer s.startup.Unlock()
		if s.isConfigured() {
			s.arm()
			return
		}
		if s.store.Get().Kind != state.Unauthenticated {
			return
		}
		s.awaitWidget(s.ctx)
	})
}

func (s *Service) isConfigured() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.configured
}

// arm creates a credential prompt unless one is pending; the next widget
// callback resolves it and triggers an exchange.
func (s *Service) arm() {
	prompt := s.pending()
	if prompt != nil && !s.spawn(func() { s.await(prompt) }) {
		prompt.Cancel()
	}
}

// pending creates a prompt, or returns nil when one already exists or the
// service is closed.
func (s *Service) pending() *future.Future[string] {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.closed || s.prompt != nil {
		return nil
	}
	s.prompt = future.New[string]()
	return s.prompt
}

func (s *Service) disarm() {
	s.mux.Lock()
	prompt := s.prompt
	s.prompt = nil
	s.mux.Unlock()
	if prompt != nil {
		prompt.Cancel()
	}
}

func (s *Service) await(prompt *future.Future[string]) {
	credential, err := prompt.Wait(s.ctx)
	s.mux.Lock()
	if s.prompt == prompt {
		s.prompt = nil
	}
	s.mux.Unlock()
	if err != nil {
		return
	}
	_, _ = s.submit(s.ctx, credential, prompt.ID)
}

func (s *Service) onCredential(response widget.CredentialResponse) {
	s.mux.Lock()
	prompt := s.prompt
	s.mux.Unlock()
	if prompt == nil || !prompt.Resolve(response.Credential) {
		s.logger.Warn("credential delivered with no pending prompt", "state", s.store.Get().Kind.String())
		return
	}
	s.logger.Debug("credential received", "prompt", prompt.ID)
}

func (s *Service) navigate(path string) {
	s.logger.Debug("redirect", "path", path)
	s.navigator.Navigate(path)
}
