// Admintoken signs an admin console JWT with the configured secret.
//
//	admintoken -sub ops@example.com -ttl 2h
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lingo_admin_console/internal/config"
	"lingo_admin_console/internal/model"
)

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	sub := flag.String("sub", "", "subject recorded as the acting admin (required)")
	email := flag.String("email", "", "optional email claim")
	ttl := flag.Duration("ttl", 0, "token lifetime (default jwt.access_token_ttl)")
	flag.Parse()

	if *sub == "" {
		log.Fatal("-sub is required")
	}
	if err := config.LoadConfig(*configDir); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if config.Cfg.JWT.SecretKey == "" {
		log.Fatal("jwt.secret_key (JWT_SECRET_KEY) is not set")
	}
	if *ttl <= 0 {
		*ttl = config.Cfg.JWT.AccessTokenTTL
	}

	token, err := signAdminToken(config.Cfg.JWT, *sub, *email, *ttl, time.Now())
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}

func signAdminToken(cfg config.JWTConfig, sub, email string, ttl time.Duration, now time.Time) (string, error) {
	claims := model.AdminClaims{
		Role:  model.RoleAdmin,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.SecretKey))
}
