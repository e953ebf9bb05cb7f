package session

// Navigator receives redirect targets.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) {
	f(path)
}

type nopNavigator struct{}

func (nopNavigator) Navigate(string) {}
