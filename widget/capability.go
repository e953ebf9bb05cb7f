package widget

// CredentialResponse is delivered by the widget once a user signs in.
type CredentialResponse struct {
	Credential string
}

// Callback receives widget credentials.
type Callback func(response CredentialResponse)

// Config configures the widget.
type Config struct {
	ClientID   string
	Callback   Callback
	AutoSelect bool
}

// Capability represents an available identity widget.
type Capability interface {
	Initialize(config *Config) error
	DisableAutoSelect() error
}

// Locator discovers the widget capability.
type Locator interface {
	Lookup() (Capability, bool)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func() (Capability, bool)

func (f LocatorFunc) Lookup() (Capability, bool) {
	return f()
}

// Static returns a locator for an always present capability.
func Static(capability Capability) Locator {
	return LocatorFunc(func() (Capability, bool) {
		return capability, capability != nil
	})
}
