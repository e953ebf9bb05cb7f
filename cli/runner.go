package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	"github.com/jessevdk/go-flags"
	"github.com/viant/sessionauth/backend"
	"github.com/viant/sessionauth/config"
	"github.com/viant/sessionauth/logger"
	"github.com/viant/sessionauth/session"
	"github.com/viant/sessionauth/state"
	"github.com/viant/sessionauth/widget"
)

func Run(args []string) error {
	options := &Options{}
	_, err := flags.ParseArgs(options, args)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRunner(os.Stdin, os.Stdout).Run(ctx, options)
}

// Runner drives one session flow.
type Runner struct {
	in  io.Reader
	out io.Writer
}

// NewRunner creates a runner reading credentials from in and reporting to out.
func NewRunner(in io.Reader, out io.Writer) *Runner {
	return &Runner{in: in, out: &syncWriter{w: out}}
}

// syncWriter serialises writes from the terminal prompt and state listeners.
type syncWriter struct {
	mux sync.Mutex
	w   io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.w.Write(p)
}

// Run starts the session, waits for a credential exchange when signed out, and
// optionally logs out.
func (r *Runner) Run(ctx context.Context, options *Options) error {
	cfg, err := r.config(ctx, options)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Logging, "sessionauth")

	var backendOptions = []backend.Option{backend.WithLogger(log.Named("backend"))}
	if cfg.CookieJar != "" {
		jar, err := backend.NewFileJar(cfg.CookieJar)
		if err != nil {
			return fmt.Errorf("failed to open cookie jar %v: %w", cfg.CookieJar, err)
		}
		backendOptions = append(backendOptions, backend.WithCookieJar(jar))
	}
	client, err := backend.New(cfg.BaseURL, backendOptions...)
	if err != nil {
		return err
	}

	store := state.NewStore()
	terminal := NewTerminal(options.Credential, r.in, r.out)
	settled := make(chan state.State, 1)
	settle := func(s state.State) {
		select {
		case settled <- s:
		default:
		}
	}
	exchanging := false
	unsubscribe := store.Subscribe(func(s state.State) {
		_, _ = fmt.Fprintf(r.out, "state: %v\n", s)
		switch s.Kind {
		case state.Exchanging:
			exchanging = true
		case state.Failed:
			if exchanging {
				exchanging = false
				settle(s)
			}
		}
	})

	service := session.New(store, client, widget.NewLoader(widget.Static(terminal), widget.WithLogger(log.Named("widget"))),
		session.WithConfig(cfg),
		session.WithLogger(log.Named("session")),
		session.WithNavigator(session.NavigatorFunc(func(path string) {
			_, _ = fmt.Fprintf(r.out, "navigate: %v\n", path)
			// the root redirect is the last step of a successful exchange
			if path == cfg.RootPath {
				settle(store.Get())
			}
		})),
	)
	defer service.Close()
	defer terminal.Close()
	defer unsubscribe()

	current := service.Start(ctx)
	// a flag credential may already be exchanging when Start returns
	if current.Kind == state.Unauthenticated || current.Kind == state.Exchanging {
		select {
		case current = <-settled:
		case err := <-terminal.Errors():
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if current.Kind == state.Failed {
		return fmt.Errorf("session failed: %v", current.Reason)
	}
	if options.Logout {
		return service.Logout(ctx)
	}
	return nil
}

func (r *Runner) config(ctx context.Context, options *Options) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if options.ConfigURL != "" {
		cfg, err = config.Load(ctx, options.ConfigURL)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		return nil, err
	}
	if options.URL != "" {
		cfg.BaseURL = options.URL
	}
	if options.ClientID != "" {
		cfg.ClientID = options.ClientID
	}
	if options.CookieJar != "" {
		cfg.CookieJar = options.CookieJar
	}
	if options.WidgetTimeout > 0 {
		cfg.WidgetTimeout = options.WidgetTimeout
	}
	if options.LogLevel != "" {
		cfg.Logging.Level = options.LogLevel
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
