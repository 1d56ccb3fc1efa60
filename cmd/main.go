package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"clinic-portal/cmd/bootstrap"
	"clinic-portal/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic",
		Short: "Clinic portal API server",
		// Running the binary without a subcommand serves the API.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(createStaffCmd())
	rootCmd.AddCommand(setDoctorPasswordCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	// Initialize application with all dependencies
	app, err := bootstrap.New(ctx)
	if err != nil {
		logrus.Errorf("Failed to initialize application: %v", err)
		return err
	}

	// Run the application
	app.Run()
	return nil
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *database.Migrator) error {
				if err := m.Up(); err != nil {
					return err
				}
				fmt.Println("Migrations applied.")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("steps must be a positive integer, got %q", args[0])
				}
				steps = n
			}
			return withMigrator(func(m *database.Migrator) error {
				if err := m.Down(steps); err != nil {
					return err
				}
				fmt.Printf("Rolled back %d migration(s).\n", steps)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *database.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Printf("version=%d dirty=%t\n", version, dirty)
				return nil
			})
		},
	})

	return cmd
}

func withMigrator(fn func(m *database.Migrator) error) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	return bootstrap.Migrate(cfg, fn)
}

func createStaffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-staff",
		Short: "Create a back-office staff account",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			fullName, _ := cmd.Flags().GetString("full-name")
			superuser, _ := cmd.Flags().GetBool("superuser")
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password are required")
			}

			app, err := bootstrap.New(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.AuthUsecase.CreateStaff(cmd.Context(), username, password, fullName, superuser)
			if err != nil {
				return err
			}
			fmt.Printf("Staff account %q created (id=%d).\n", user.Username, user.ID)
			return nil
		},
	}
	cmd.Flags().String("username", "", "Login name")
	cmd.Flags().String("password", "", "Initial password")
	cmd.Flags().String("full-name", "", "Display name")
	cmd.Flags().Bool("superuser", false, "Grant superuser rights")

	return cmd
}

func setDoctorPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-doctor-password",
		Short: "Set a doctor's login password and end their sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetInt64("id")
			password, _ := cmd.Flags().GetString("password")
			if id <= 0 || password == "" {
				return fmt.Errorf("--id and --password are required")
			}

			app, err := bootstrap.New(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.DoctorUsecase.SetPassword(cmd.Context(), id, password); err != nil {
				return err
			}
			fmt.Printf("Password updated for doctor %d.\n", id)
			return nil
		},
	}
	cmd.Flags().Int64("id", 0, "Doctor ID")
	cmd.Flags().String("password", "", "New password")

	return cmd
}
