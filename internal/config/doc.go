// Package config loads taskboard settings from an optional config.yaml and
// TASKBOARD_-prefixed environment variables, then validates them. Sections
// cover the HTTP server, the backend task API, the toast notification store,
// and CORS for the JSON endpoints.
package config
