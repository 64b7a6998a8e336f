// Command hash-generator prints bcrypt hashes for the passwords given as
// arguments, for seeding databases and fixtures.
//
//	hash-generator -cost 10 secret1 secret2
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/userbase-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", auth.DefaultCost,
		fmt.Sprintf("bcrypt cost (%d-%d)", bcrypt.MinCost, bcrypt.MaxCost))
	flag.Parse()

	if err := run(os.Stdout, *cost, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(w io.Writer, cost int, passwords []string) error {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return fmt.Errorf("cost %d out of range %d-%d", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if len(passwords) == 0 {
		return fmt.Errorf("usage: hash-generator [-cost n] password...")
	}

	hasher := auth.NewBcryptHasher(cost)
	for _, password := range passwords {
		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		if _, err := fmt.Fprintf(w, "Password: %s\nHash: %s\n\n", password, hash); err != nil {
			return err
		}
	}
	return nil
}
