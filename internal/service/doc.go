// Package service implements the user account operations on top of the
// store interfaces. Services are stateless and safe for concurrent use.
package service
