// Package main implements the entry point for the accounts API server,
// which manages user accounts and issues authentication tokens.
package main

import (
	"log"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
