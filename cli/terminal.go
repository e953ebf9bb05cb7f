package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/viant/sessionauth/widget"
)

// ErrNoCredential is reported when stdin ends or yields an empty line instead of a credential.
var ErrNoCredential = errors.New("no credential entered")

// Terminal is an identity widget backed by a terminal.
type Terminal struct {
	credential string
	in         io.Reader
	out        io.Writer
	errs       chan error

	mux      sync.Mutex
	config   *widget.Config
	prompted bool
	closed   bool
}

// NewTerminal creates a terminal widget; an empty credential is read from in.
func NewTerminal(credential string, in io.Reader, out io.Writer) *Terminal {
	return &Terminal{credential: credential, in: in, out: out, errs: make(chan error, 1)}
}

func (t *Terminal) Initialize(config *widget.Config) error {
	if config == nil || config.Callback == nil {
		return errors.New("terminal: callback was nil")
	}
	t.mux.Lock()
	defer t.mux.Unlock()
	t.config = config
	return nil
}

// DisableAutoSelect completes configuration and starts the sign-in prompt.
func (t *Terminal) DisableAutoSelect() error {
	t.mux.Lock()
	defer t.mux.Unlock()
	if t.config == nil {
		return errors.New("terminal: not initialized")
	}
	if t.prompted || t.closed {
		return nil
	}
	t.prompted = true
	go t.prompt(t.config.Callback)
	return nil
}

// Errors reports a prompt that could not produce a credential.
func (t *Terminal) Errors() <-chan error {
	return t.errs
}

// Close stops the terminal from writing or delivering anything further.
func (t *Terminal) Close() {
	t.mux.Lock()
	defer t.mux.Unlock()
	t.closed = true
}

func (t *Terminal) prompt(callback widget.Callback) {
	credential := t.credential
	if credential == "" {
		var err error
		if credential, err = t.read(); err != nil {
			t.fail(err)
			return
		}
	}
	t.mux.Lock()
	closed := t.closed
	t.mux.Unlock()
	if !closed {
		callback(widget.CredentialResponse{Credential: credential})
	}
}

func (t *Terminal) read() (string, error) {
	if t.in == nil {
		return "", ErrNoCredential
	}
	t.mux.Lock()
	if !t.closed {
		_, _ = fmt.Fprint(t.out, "credential: ")
	}
	t.mux.Unlock()
	scanner := bufio.NewScanner(t.in)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read credential: %w", err)
		}
		return "", ErrNoCredential
	}
	credential := strings.TrimSpace(scanner.Text())
	if credential == "" {
		return "", ErrNoCredential
	}
	return credential, nil
}

func (t *Terminal) fail(err error) {
	select {
	case t.errs <- err:
	default:
	}
}
