// Package uniuri generates random strings from a fixed alphabet using crypto/rand.
// It backs the password generator and the bootstrap admin password.
package uniuri
