package cmd

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/quillhq/quill/internal/auth"
	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/database"
)

var createAdminCmdFlags struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	Long:  `Create an administrator account. Registration through the API never grants admin rights, so the first administrator is seeded with this command.`,
	Run:   createAdmin,
}

func init() {
	createAdminCmd.Flags().StringVar(&createAdminCmdFlags.Email, "email", "", "Email address of the administrator")
	createAdminCmd.Flags().StringVar(&createAdminCmdFlags.Password, "password", "", "Password of the administrator")
	createAdminCmd.Flags().StringVar(&createAdminCmdFlags.FirstName, "first-name", "", "First name of the administrator")
	createAdminCmd.Flags().StringVar(&createAdminCmdFlags.LastName, "last-name", "", "Last name of the administrator")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(createAdminCmd)
}

func createAdmin(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close() //nolint:errcheck

	users := auth.NewService(db)
	user, err := users.Register(cmd.Context(), createAdminCmdFlags.Email, createAdminCmdFlags.Password, createAdminCmdFlags.FirstName, createAdminCmdFlags.LastName)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			log.Fatalf("an account with this email already exists")
		}
		log.Fatalf("failed to create administrator: %v", err)
	}

	if err := db.SetAdmin(context.Background(), user.ID, true); err != nil {
		log.Fatalf("failed to grant admin rights: %v", err)
	}

	log.Info("administrator created", "email", user.Email)
}
