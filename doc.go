// Package main provides the entry point of the user management service.
// It reads etc/main.toml, migrates and seeds the configured database and
// serves a JSON API built on fiber for users, groups, roles and permissions.
// Clients log in with a name and password and receive a JWT bearer token
// whose scopes are the permissions of the user's role.
package main
