package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"libris/internal/app"
	"libris/internal/config"
	"libris/internal/domain"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var createAdminPassword string

var createAdminCmd = &cobra.Command{
	Use:   "create-admin <username>",
	Short: "Create an account with the admin role",
	Long: `Create an account with the admin role. This is the only way to mint
an admin; registration over HTTP always yields the user role.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = st.close() }()

		password := createAdminPassword
		if password == "" {
			if password, err = readPassword("Password for " + args[0] + ": "); err != nil {
				return err
			}
		}
		if password == "" {
			return errors.New("password must not be empty")
		}

		authSvc := app.NewAuthService(st.users, st.sessions)
		user, err := authSvc.CreateAdmin(context.Background(), args[0], password)
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return fmt.Errorf("username %q is already taken", args[0])
		}
		if err != nil {
			return err
		}

		fmt.Printf("created admin %s (id %d)\n", user.Username, user.ID)
		return nil
	},
}

// readPassword reads a password from the terminal without echo.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func init() {
	createAdminCmd.Flags().StringVar(&createAdminPassword, "password", "", "password (prompts when omitted)")
	rootCmd.AddCommand(createAdminCmd)
}
