// Package auth holds the credential primitives of the service: bcrypt
// password hashing and HMAC-signed JWT access tokens identifying the acting
// user.
package auth
