package commands

import (
	"fmt"

	authService "github.com/allisson/tenantguard/internal/auth/service"
	"github.com/allisson/tenantguard/internal/config"
	cryptoService "github.com/allisson/tenantguard/internal/crypto/service"
)

// RunHashPassword hashes a password with Argon2id and prints the hash.
func RunHashPassword(password string) error {
	cfg := config.Load()
	svc, err := authService.NewPasswordService(cfg.PasswordMinLength)
	if err != nil {
		return err
	}

	hash, err := svc.HashPassword(password)
	if err != nil {
		return err
	}

	fmt.Println(hash)
	return nil
}

// RunCheckPassword checks a password against the strength policy and prints
// every violated rule.
func RunCheckPassword(password string) error {
	cfg := config.Load()
	svc, err := authService.NewPasswordService(cfg.PasswordMinLength)
	if err != nil {
		return err
	}

	result := svc.CheckPasswordStrength(password)
	if result.Valid {
		fmt.Println("password satisfies the strength policy")
		return nil
	}

	fmt.Println("password violates the strength policy:")
	for _, violation := range result.Violations {
		fmt.Printf("  - %s\n", violation)
	}
	return fmt.Errorf("%d violation(s)", len(result.Violations))
}

// RunGeneratePassword generates a random password and prints it.
func RunGeneratePassword(length int) error {
	password, err := cryptoService.GeneratePassword(length)
	if err != nil {
		return err
	}

	fmt.Println(password)
	return nil
}
