// Package domain contains the user account entity, its typed create and
// patch inputs, and the validation errors they produce. It is independent of
// any storage or transport.
package domain
