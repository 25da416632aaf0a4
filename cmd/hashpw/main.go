// Command hashpw prints the Argon2id hash for an admin password so it
// can be set as NOURFASHION_ADMIN_PASSWORD_HASH.
package main

import (
	"fmt"
	"os"

	"github.com/nourzaidi/nourfashion-backend/pkg/config"
	"github.com/nourzaidi/nourfashion-backend/pkg/security"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpw <password>")
		os.Exit(1)
	}

	hash, err := security.HashPassword(os.Args[1], config.PasswordConfig{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
