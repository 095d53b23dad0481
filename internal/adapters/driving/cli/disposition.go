package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var dispositionCmd = &cobra.Command{
	Use:   "disposition",
	Short: "Manage dispositions on archive documents",
	Long: `Create and follow dispositions. A disposition assigns an archive
document to one or more staff members; each target is an independent
record, so one failed target never blocks the others.

Examples:
  arsip disposition create --document D123 --user U1 --user U2
  arsip disposition list`,
}

var dispositionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Assign a document to staff members (admin)",
	RunE:  runDispositionCreate,
}

var dispositionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List dispositions you may see",
	RunE:  runDispositionList,
}

var dispositionDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Cancel a disposition (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runDispositionDelete,
}

// Flags for disposition create.
var (
	dispositionDocument string
	dispositionUsers    []string
)

func init() {
	dispositionCreateCmd.Flags().StringVar(
		&dispositionDocument, "document", "", "Archive document id")
	dispositionCreateCmd.Flags().StringArrayVarP(
		&dispositionUsers, "user", "u", nil, "Target user id (repeatable)")

	dispositionCmd.AddCommand(dispositionCreateCmd)
	dispositionCmd.AddCommand(dispositionListCmd)
	dispositionCmd.AddCommand(dispositionDeleteCmd)
	rootCmd.AddCommand(dispositionCmd)
}

func runDispositionCreate(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Orders == nil {
		return errors.New("order service not configured")
	}
	session, err := currentSession()
	if err != nil {
		return err
	}

	result, err := services.Orders.Create(context.Background(), session, dispositionDocument, dispositionUsers)
	if err != nil {
		return err
	}

	cmd.Printf("Created %d disposition(s)\n", len(result.Created))
	if result.PartialFailure() {
		cmd.Printf("Failed targets: %v\n", result.Failed)
	}
	return nil
}

func runDispositionList(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Orders == nil {
		return errors.New("order service not configured")
	}
	session, err := currentSession()
	if err != nil {
		return err
	}

	orders, err := services.Orders.List(context.Background(), session)
	if err != nil {
		return err
	}

	if len(orders) == 0 {
		cmd.Println("No dispositions")
		return nil
	}
	for _, order := range orders {
		// The gateway only denormalizes subject and target name on
		// some endpoints; fall back to the ids so rows stay traceable.
		doc := order.DocumentSubject
		if doc == "" {
			doc = order.DocumentID
		}
		target := order.TargetUserName
		if target == "" {
			target = order.TargetUserID
		}
		cmd.Printf("  %s  %s -> %s  (%s)\n",
			order.ID, doc, target,
			order.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runDispositionDelete(cmd *cobra.Command, args []string) error {
	if services == nil || services.Orders == nil {
		return errors.New("order service not configured")
	}
	session, err := currentSession()
	if err != nil {
		return err
	}

	if err := services.Orders.Delete(context.Background(), session, args[0]); err != nil {
		return err
	}
	cmd.Printf("Cancelled %s\n", args[0])
	return nil
}
