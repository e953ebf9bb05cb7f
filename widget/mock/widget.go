package mock

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/viant/sessionauth/widget"
)

// Widget records how it was configured and delivers credentials on demand.
type Widget struct {
	InitializeErr        error
	DisableAutoSelectErr error

	mux         sync.Mutex
	config      *widget.Config
	calls       []string
	initialized atomic.Int32
	disabled    atomic.Int32
}

// New creates a mock widget.
func New() *Widget {
	return &Widget{}
}

func (w *Widget) Initialize(config *widget.Config) error {
	w.mux.Lock()
	defer w.mux.Unlock()
	w.calls = append(w.calls, "initialize")
	if w.InitializeErr != nil {
		return w.InitializeErr
	}
	w.config = config
	w.initialized.Add(1)
	return nil
}

func (w *Widget) DisableAutoSelect() error {
	w.mux.Lock()
	defer w.mux.Unlock()
	w.calls = append(w.calls, "disableAutoSelect")
	if w.DisableAutoSelectErr != nil {
		return w.DisableAutoSelectErr
	}
	w.disabled.Add(1)
	return nil
}

// Config returns the last successful Initialize config.
func (w *Widget) Config() *widget.Config {
	w.mux.Lock()
	defer w.mux.Unlock()
	return w.config
}

// Calls returns capability calls in order.
func (w *Widget) Calls() []string {
	w.mux.Lock()
	defer w.mux.Unlock()
	return append([]string(nil), w.calls...)
}

// Initialized returns the number of successful Initialize calls.
func (w *Widget) Initialized() int {
	return int(w.initialized.Load())
}

// AutoSelectDisabled returns the number of successful DisableAutoSelect calls.
func (w *Widget) AutoSelectDisabled() int {
	return int(w.disabled.Load())
}

// Deliver invokes the configured callback the way a user sign-in would.
func (w *Widget) Deliver(credential string) error {
	config := w.Config()
	if config == nil || config.Callback == nil {
		return errors.New("mock widget: not initialized")
	}
	config.Callback(widget.CredentialResponse{Credential: credential})
	return nil
}
