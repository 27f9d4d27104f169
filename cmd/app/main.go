// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/tenantguard/cmd/app/commands"
)

func main() {
	cmd := &cli.Command{
		Name:    "tenantguard",
		Usage:   "Capability authorization and tenant data encryption toolkit",
		Version: "1.0.0",
		Commands: []*cli.Command{
			{
				Name:  "create-master-key",
				Usage: "Generate a new master key for tenant key derivation",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "id",
						Aliases: []string{"i"},
						Value:   "",
						Usage:   "Master key ID (e.g., prod-master-key-2026)",
					},
					&cli.StringFlag{
						Name:  "kms-provider",
						Usage: "KMS provider (localsecrets, gcpkms, awskms, azurekeyvault, hashivault)",
					},
					&cli.StringFlag{
						Name:  "kms-key-uri",
						Usage: "URI of the KMS key that wraps the master key",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateMasterKey(
						ctx,
						cmd.String("id"),
						cmd.String("kms-provider"),
						cmd.String("kms-key-uri"),
					)
				},
			},
			{
				Name:  "mint-token",
				Usage: "Mint a capability-bound session credential",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "subject",
						Aliases:  []string{"s"},
						Required: true,
						Usage:    "Subject identifier for the credential",
					},
					&cli.StringFlag{
						Name:    "tenant",
						Aliases: []string{"t"},
						Usage:   "Tenant identifier (omit for platform-level principals)",
					},
					&cli.StringFlag{
						Name:    "principal-type",
						Aliases: []string{"p"},
						Value:   "tenant_user",
						Usage:   "Principal type: super_admin, tenant_admin, or tenant_user",
					},
					&cli.StringFlag{
						Name:     "capabilities",
						Aliases:  []string{"c"},
						Required: true,
						Usage:    "JSON array of capability grants",
					},
					&cli.DurationFlag{
						Name:  "ttl",
						Usage: "Credential lifetime (defaults to TOKEN_TTL_SECONDS)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMintToken(
						cmd.String("subject"),
						cmd.String("tenant"),
						cmd.String("principal-type"),
						cmd.String("capabilities"),
						cmd.Duration("ttl"),
					)
				},
			},
			{
				Name:  "verify-token",
				Usage: "Verify a session credential and print its payload",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "token",
						Required: true,
						Usage:    "The signed credential to verify",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunVerifyToken(cmd.String("token"))
				},
			},
			{
				Name:  "encrypt-value",
				Usage: "Encrypt a value with a tenant-derived key into an envelope string",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "tenant",
						Aliases:  []string{"t"},
						Required: true,
						Usage:    "Tenant whose derived key encrypts the value",
					},
					&cli.StringFlag{
						Name:     "value",
						Aliases:  []string{"v"},
						Required: true,
						Usage:    "Plaintext value to encrypt",
					},
					&cli.StringFlag{
						Name:    "algorithm",
						Aliases: []string{"alg"},
						Value:   "aes-gcm",
						Usage:   "Encryption algorithm (aes-gcm or chacha20-poly1305)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunEncryptValue(
						ctx,
						cmd.String("tenant"),
						cmd.String("value"),
						cmd.String("algorithm"),
					)
				},
			},
			{
				Name:  "decrypt-value",
				Usage: "Decrypt an envelope string with a tenant-derived key",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "tenant",
						Aliases:  []string{"t"},
						Required: true,
						Usage:    "Tenant whose derived key decrypts the envelope",
					},
					&cli.StringFlag{
						Name:     "envelope",
						Aliases:  []string{"e"},
						Required: true,
						Usage:    "Envelope string (nonce:tag:ciphertext)",
					},
					&cli.StringFlag{
						Name:    "algorithm",
						Aliases: []string{"alg"},
						Value:   "aes-gcm",
						Usage:   "Encryption algorithm (aes-gcm or chacha20-poly1305)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunDecryptValue(
						ctx,
						cmd.String("tenant"),
						cmd.String("envelope"),
						cmd.String("algorithm"),
					)
				},
			},
			{
				Name:  "hash-password",
				Usage: "Hash a password with Argon2id for credential storage",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Required: true,
						Usage:    "Plaintext password to hash",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunHashPassword(cmd.String("password"))
				},
			},
			{
				Name:  "check-password",
				Usage: "Check a password against the strength policy",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Required: true,
						Usage:    "Plaintext password to check",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCheckPassword(cmd.String("password"))
				},
			},
			{
				Name:  "generate-password",
				Usage: "Generate a random password satisfying the strength policy",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "length",
						Aliases: []string{"l"},
						Value:   16,
						Usage:   "Password length (minimum 4)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunGeneratePassword(cmd.Int("length"))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
