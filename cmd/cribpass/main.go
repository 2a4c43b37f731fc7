// Command cribpass hashes an operator password for the config file.
//
//	cribpass mypassword
//	auth:
//	  operators:
//	    - username: jdoe
//	      password_hash: "$2a$10$..."
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"toolcrib/auth"
)

func main() {
	var password string
	if len(os.Args) > 1 {
		password = os.Args[1]
	} else {
		fmt.Fprint(os.Stderr, "password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			log.Fatalf("read password: %v", err)
		}
		password = string(raw)
	}
	if password == "" {
		log.Fatal("empty password")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	fmt.Println(hash)
}
