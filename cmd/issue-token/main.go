// Command issue-token prints a signed admin bearer token for the API.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	subject := flag.String("subject", "admin", "token subject")
	ttl := flag.Int("ttl", cfg.Auth.AccessTokenTTLMinutes, "lifetime in minutes")
	flag.Parse()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, *ttl)
	signed, token, err := tokens.GenerateToken(*subject, domain.RoleAdmin)
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}

	fmt.Fprintf(os.Stderr, "expires at %s\n", token.ExpiresAt.Format(time.RFC3339))
	fmt.Println(signed)
}
