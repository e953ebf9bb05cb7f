// Package mock provides an in-memory identity widget for tests.
package mock
