// Command cardadmin runs maintenance tasks against the card store.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/atinyakov/GophCards/internal/auth"
	"github.com/atinyakov/GophCards/internal/certgen"
	"github.com/atinyakov/GophCards/internal/db"
	"github.com/atinyakov/GophCards/internal/models"
	"github.com/atinyakov/GophCards/internal/render"
	"github.com/atinyakov/GophCards/internal/repository"
	"github.com/atinyakov/GophCards/internal/service"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	dsn       string
	jwtSecret string
}

type renderFlags struct {
	title    string
	content  string
	creator  string
	template string
	font     string
	bg       []int
	text     []int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := rootFlags{
		dsn:       os.Getenv("DATABASE_DSN"),
		jwtSecret: os.Getenv("JWT_SECRET"),
	}

	root := &cobra.Command{
		Use:          "cardadmin",
		Short:        "Maintenance tasks for the card service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flags.dsn, "dsn", flags.dsn, "Postgres DSN (default $DATABASE_DSN)")
	root.PersistentFlags().StringVar(&flags.jwtSecret, "jwt-secret", flags.jwtSecret, "HS256 secret (default $JWT_SECRET)")

	root.AddCommand(
		newMigrateCmd(&flags),
		newPurgeCmd(&flags),
		newRenderCmd(),
		newTokenCmd(&flags),
		newCertsCmd(),
	)
	return root
}

func newMigrateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.dsn == "" {
				return errors.New("--dsn is required")
			}
			conn, err := db.InitPostgres(flags.dsn)
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close() }()
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}

func newPurgeCmd(flags *rootFlags) *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Permanently remove cards soft-deleted longer ago than --older-than",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.dsn == "" {
				return errors.New("--dsn is required")
			}
			if err := service.CheckRetention(olderThan); err != nil {
				return fmt.Errorf("--older-than: %w", err)
			}
			conn, err := db.InitPostgres(flags.dsn)
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close() }()

			svc := service.NewCardService(repository.NewPostgresCardRepository(conn))
			removed, err := svc.PurgeExpired(cmd.Context(), olderThan)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d card(s)\n", removed)
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", service.RestoreWindow, "Minimum time since soft deletion")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the layout of a card as JSON without touching the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := models.CardInput{
				Title:       flags.title,
				Content:     flags.content,
				FontKey:     flags.font,
				TemplateKey: flags.template,
			}
			var err error
			if in.ColorR, in.ColorG, in.ColorB, err = channels("bg", flags.bg); err != nil {
				return err
			}
			if in.TextR, in.TextG, in.TextB, err = channels("text", flags.text); err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(render.Render(service.Draft(flags.creator, in)))
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.title, "title", "", "Card title")
	f.StringVar(&flags.content, "content", "", "Card body")
	f.StringVar(&flags.creator, "creator", "", "Creator display name")
	f.StringVar(&flags.template, "template", "", "Template key, unknown keys fall back to classic")
	f.StringVar(&flags.font, "font", "", "Font key, unknown keys fall back to modern")
	f.IntSliceVar(&flags.bg, "bg", nil, "Background color as r,g,b")
	f.IntSliceVar(&flags.text, "text", nil, "Text color as r,g,b")
	return cmd
}

// channels splits an r,g,b flag. An unset flag yields nil channels.
func channels(name string, v []int) (r, g, b *int, err error) {
	switch len(v) {
	case 0:
		return nil, nil, nil, nil
	case 3:
		return &v[0], &v[1], &v[2], nil
	default:
		return nil, nil, nil, fmt.Errorf("--%s wants 3 values, got %d", name, len(v))
	}
}

func newTokenCmd(flags *rootFlags) *cobra.Command {
	var (
		user  string
		email string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.jwtSecret == "" {
				return errors.New("--jwt-secret is required")
			}
			token, err := auth.GenerateToken(user, email, []byte(flags.jwtSecret), ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "User id placed in the subject claim")
	cmd.Flags().StringVar(&email, "email", "", "Email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newCertsCmd() *cobra.Command {
	var (
		dir   string
		hosts []string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "certs",
		Short: "Write a self-signed server certificate for -tls-cert and -tls-key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			certPath, keyPath, err := certgen.WriteServerCredentials(dir, hosts, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "-tls-cert %s -tls-key %s\n", certPath, keyPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "certs", "Output directory")
	cmd.Flags().StringSliceVar(&hosts, "host", []string{"localhost", "127.0.0.1"}, "DNS names or IPs the certificate is valid for")
	cmd.Flags().DurationVar(&ttl, "ttl", 365*24*time.Hour, "Certificate lifetime")
	return cmd
}
