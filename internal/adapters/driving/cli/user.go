package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Administer the user directory (admin)",
	Long: `Manage user accounts. Every subcommand requires an admin session.

Examples:
  arsip user list
  arsip user create --name "Siti Rahma" --username siti --password rahasia1 --role staff
  arsip user delete U42`,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	RunE:  runUserList,
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	RunE:  runUserCreate,
}

var userUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserUpdate,
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserDelete,
}

// Flags for user create and update.
var (
	userName     string
	userUsername string
	userPassword string
	userRole     string
)

func init() {
	for _, cmd := range []*cobra.Command{userCreateCmd, userUpdateCmd} {
		cmd.Flags().StringVar(&userName, "name", "", "Display name")
		cmd.Flags().StringVar(&userUsername, "username", "", "Login name")
		cmd.Flags().StringVar(&userPassword, "password", "", "Password (empty on update keeps the current one)")
		cmd.Flags().StringVar(&userRole, "role", "staff", "Role (admin, staff)")
	}

	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userUpdateCmd)
	userCmd.AddCommand(userDeleteCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserList(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Users == nil {
		return errors.New("user service not configured")
	}
	session, err := currentSession()
	if err != nil {
		return err
	}

	users, err := services.Users.List(context.Background(), session)
	if err != nil {
		return err
	}

	cmd.Printf("Users (%d):\n", len(users))
	for _, user := range users {
		cmd.Printf("  %s  %s (@%s)  [%s]\n", user.ID, user.Name, user.Username, user.Role)
	}
	return nil
}

func runUserCreate(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Users == nil {
		return errors.New("user service not configured")
	}
	session, err := currentSession()
	if err != nil {
		return err
	}

	user, err := services.Users.Create(context.Background(), session, driven.NewUser{
		Name:     userName,
		Username: userUsername,
		Password: userPassword,
		Role:     domain.Role(userRole),
	})
	if err != nil {
		return err
	}

	cmd.Printf("Created %s (@%s)\n", user.ID, user.Username)
	return nil
}

func runUserUpdate(cmd *cobra.Command, args []string) error {
	if services == nil || services.Users == nil {
		return errors.New("user service not configured")
	}
	session, err := currentSession()
	if err != nil {
		return err
	}

	update := driven.NewUser{
		Name:     userName,
		Username: userUsername,
		Password: userPassword,
	}
	// Only touch the role when the flag was given, so its default
	// cannot silently demote an admin.
	if cmd.Flags().Changed("role") {
		update.Role = domain.Role(userRole)
	}

	user, err := services.Users.Update(context.Background(), session, args[0], update)
	if err != nil {
		return err
	}

	cmd.Printf("Updated %s (@%s)\n", user.ID, user.Username)
	return nil
}

func runUserDelete(cmd *cobra.Command, args []string) error {
	if services == nil || services.Users == nil {
		return errors.New("user service not configured")
	}
	session, err := currentSession()
	if err != nil {
		return err
	}

	if err := services.Users.Delete(context.Background(), session, args[0]); err != nil {
		return err
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}
