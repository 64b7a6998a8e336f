// Package store defines the persistence boundary for user accounts: the
// UserStore interface, the sentinel errors every implementation returns, and
// the transaction helpers services use to group a check with its write.
package store
