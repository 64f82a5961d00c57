// Package auth mints the bearer tokens taskboard presents to the backend
// task API and exposes them as an oauth2.TokenSource.
package auth
