package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/platform/sqldb"
	"github.com/phrazzld/roster-api/internal/service"
	"github.com/phrazzld/roster-api/internal/service/auth"
)

func newServeCmd(configFile *string) *cobra.Command {
	var migrateFirst bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadRuntime(*configFile)
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)

			app, err := newApplication(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer app.cleanup()

			if migrateFirst {
				if err := app.migrate(ctx); err != nil {
					return fmt.Errorf("failed to apply migrations: %w", err)
				}
			}

			return app.startHTTPServer(ctx, app.setupRouter())
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func newMigrateCmd(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate up|down|reset|status|version",
		Short:     "Manage database migrations",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down", "reset", "status", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadRuntime(*configFile)
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)

			db, err := sqldb.Open(ctx, cfg.Database, log)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = db.Close() }()

			migrator, err := sqldb.NewMigrator(db, log)
			if err != nil {
				return err
			}
			return runMigration(cmd, migrator, args[0], cmd.OutOrStdout())
		},
	}
	return cmd
}

func runMigration(cmd *cobra.Command, migrator *sqldb.Migrator, action string, out io.Writer) error {
	ctx := commandContext(cmd)

	switch action {
	case "up":
		return migrator.Up(ctx)
	case "down":
		return migrator.Down(ctx)
	case "reset":
		return migrator.Reset(ctx)
	case "version":
		version, err := migrator.Version(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "version %d\n", version)
		return err
	case "status":
		statuses, err := migrator.Status(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "VERSION\tSTATE\tFILE")
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Version, state, s.Path)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown migrate action %q (want up, down, reset, status or version)", action)
	}
}

func newCreateAdminCmd(configFile *string) *cobra.Command {
	var params service.CreateUserParams

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if params.Password == "" {
				params.Password = os.Getenv("ROSTER_ADMIN_PASSWORD")
			}
			if params.Password == "" {
				return errors.New("a password is required (--password or ROSTER_ADMIN_PASSWORD)")
			}

			cfg, log, err := loadRuntime(*configFile)
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)

			app, err := newApplication(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer app.cleanup()

			user, err := createAdmin(cmd, app.userService, params)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "created administrator %q with id %d\n", user.Username, user.ID)
			return err
		},
	}
	cmd.Flags().StringVar(&params.Username, "username", "admin", "administrator username")
	cmd.Flags().StringVar(&params.Password, "password", "", "administrator password")
	cmd.Flags().StringVar(&params.Email, "email", "admin@example.com", "administrator email")
	cmd.Flags().StringVar(&params.Name, "name", "Administrator", "administrator display name")
	return cmd
}

func createAdmin(cmd *cobra.Command, users service.UserService, params service.CreateUserParams) (*domain.User, error) {
	params.Roles = []string{string(domain.RoleUser), string(domain.RoleAdmin)}

	user, err := users.CreateUser(commandContext(cmd), params)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return nil, fmt.Errorf("cannot create administrator: %s", formatFieldErrors(verr))
		}
		return nil, err
	}
	return user, nil
}

func formatFieldErrors(verr *domain.ValidationError) string {
	parts := make([]string, 0, len(verr.Fields))
	for field, msgs := range verr.Fields {
		parts = append(parts, field+": "+strings.Join(msgs, " "))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

func newHashPasswordCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password PASSWORD",
		Short: "Print the bcrypt hash of a password using the configured cost",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadRuntime(*configFile)
			if err != nil {
				return err
			}
			hash, err := auth.NewBcryptHasher(cfg.Auth.BcryptCost).Hash(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
}
