// Package config loads session client settings.
//
// A document is fetched with viant/afs, so local paths as well as remote URLs work:
//
//	baseURL: https://dashboard.example.com
//	clientID: 1234.apps.googleusercontent.com
//	pollInterval: 100ms
//	widgetTimeout: 30s
//	logging:
//	  level: debug
//	  format: json
//
// Every field can be overridden with a SESSIONAUTH_* environment variable.
package config
