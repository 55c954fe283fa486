package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Luyzz22/contract-analyzer-backend/internal/infrastructure/postgres"
	pgpkg "github.com/Luyzz22/contract-analyzer-backend/pkg/postgres"
	"github.com/Luyzz22/contract-analyzer-backend/pkg/tlsutil"
)

func newMigrateCmd() *cobra.Command {
	var dsn string
	cmd := &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(pgpkg.Up), string(pgpkg.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := pgpkg.Direction(args[0])
			if direction != pgpkg.Up && direction != pgpkg.Down {
				return fmt.Errorf("unknown direction %q", args[0])
			}
			if dsn == "" {
				return fmt.Errorf("--database-url or DATABASE_URL is required")
			}
			if err := pgpkg.RunMigrationsFS(dsn, postgres.Migrations, postgres.MigrationsDir, direction); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations %s: done\n", direction)
			return nil
		},
	}
	cmd.Flags().StringVar(&dsn, "database-url", os.Getenv("DATABASE_URL"), "postgres connection string")
	return cmd
}

func newCertsCmd() *cobra.Command {
	var (
		outDir   string
		hosts    string
		validFor time.Duration
	)
	cmd := &cobra.Command{
		Use:   "certs",
		Short: "Create a development CA and server certificate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := tlsutil.GenerateDevCertificates(splitList(hosts), outDir, validFor); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s, %s and %s to %s\n",
				tlsutil.CAFile, tlsutil.ServerCert, tlsutil.ServerKeyFile, outDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "certs", "output directory")
	cmd.Flags().StringVar(&hosts, "host", strings.Join([]string{"localhost", "127.0.0.1"}, ","), "comma separated DNS names and IPs")
	cmd.Flags().DurationVar(&validFor, "valid-for", 365*24*time.Hour, "certificate lifetime")
	return cmd
}
