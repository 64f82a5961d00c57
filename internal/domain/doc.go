// Package domain contains the core task entities and value objects shared by
// the form, dashboard, and API client layers. It is independent of any
// transport or rendering concern.
package domain
