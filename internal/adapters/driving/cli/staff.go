package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
)

var staffCmd = &cobra.Command{
	Use:   "staff",
	Short: "Manage your personal staff documents",
	Long: `Browse and manage the personal staff collection. The backend scopes
every call to the signed-in account; admins see all staff documents.

Examples:
  arsip staff list --search laporan
  arsip staff upload --subject "Laporan bulanan" --file laporan.pdf`,
}

var staffListCmd = &cobra.Command{
	Use:   "list",
	Short: "List staff documents",
	RunE:  runStaffList,
}

var staffGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one staff document",
	Args:  cobra.ExactArgs(1),
	RunE:  runStaffGet,
}

var staffUploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a new staff document",
	RunE:  runStaffUpload,
}

var staffUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a staff document you own",
	Args:  cobra.ExactArgs(1),
	RunE:  runStaffUpdate,
}

var staffDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a staff document you own",
	Args:  cobra.ExactArgs(1),
	RunE:  runStaffDelete,
}

// Flags for staff commands.
var (
	staffListSearch  string
	staffListPage    int
	staffListOffline bool

	staffSubject  string
	staffFilePath string
)

func init() {
	staffListCmd.Flags().StringVar(&staffListSearch, "search", "", "Filter by subject")
	staffListCmd.Flags().IntVar(&staffListPage, "page", 1, "Page number")
	staffListCmd.Flags().BoolVar(&staffListOffline, "offline", false, "Show the cached snapshot instead of fetching")

	for _, cmd := range []*cobra.Command{staffUploadCmd, staffUpdateCmd} {
		cmd.Flags().StringVar(&staffSubject, "subject", "", "Subject line")
		cmd.Flags().StringVar(&staffFilePath, "file", "", "Path to the file")
	}

	staffCmd.AddCommand(staffListCmd)
	staffCmd.AddCommand(staffGetCmd)
	staffCmd.AddCommand(staffUploadCmd)
	staffCmd.AddCommand(staffUpdateCmd)
	staffCmd.AddCommand(staffDeleteCmd)
	rootCmd.AddCommand(staffCmd)
}

func runStaffList(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Archive == nil {
		return errors.New("archive service not configured")
	}
	ctx := context.Background()

	if staffListOffline {
		docs, err := services.Archive.ListStaffDocumentsOffline(ctx)
		if err != nil {
			return err
		}
		cmd.Printf("Cached staff snapshot (%d documents):\n", len(docs))
		for _, doc := range docs {
			cmd.Printf("  %s  %s  (%s)\n", doc.ID, doc.Subject, doc.OwnerName)
		}
		return nil
	}

	page, err := services.Archive.ListStaffDocuments(ctx, staffListSearch, staffListPage)
	if err != nil {
		return err
	}

	cmd.Printf("Staff documents (page %d, %d total):\n", page.Page, page.Total)
	for _, doc := range page.Documents {
		cmd.Printf("  %s  %s  (%s)\n", doc.ID, doc.Subject, doc.OwnerName)
	}
	return nil
}

func runStaffGet(cmd *cobra.Command, args []string) error {
	if services == nil || services.Archive == nil {
		return errors.New("archive service not configured")
	}

	doc, err := services.Archive.GetStaffDocument(context.Background(), args[0])
	if err != nil {
		return err
	}

	cmd.Printf("ID:      %s\n", doc.ID)
	cmd.Printf("Subject: %s\n", doc.Subject)
	cmd.Printf("File:    %s\n", doc.FileName)
	cmd.Printf("Owner:   %s\n", doc.OwnerName)
	return nil
}

func runStaffUpload(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Archive == nil {
		return errors.New("archive service not configured")
	}
	if staffFilePath == "" {
		return errors.New("--file is required")
	}

	file, err := os.Open(staffFilePath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", staffFilePath, err)
	}
	defer file.Close()

	doc, err := services.Archive.UploadStaffDocument(context.Background(), driven.StaffDocumentUpload{
		Subject:  staffSubject,
		FileName: filepath.Base(staffFilePath),
		File:     file,
	})
	if err != nil {
		return err
	}

	cmd.Printf("Uploaded %s (%s)\n", doc.ID, doc.Subject)
	return nil
}

func runStaffUpdate(cmd *cobra.Command, args []string) error {
	if services == nil || services.Archive == nil {
		return errors.New("archive service not configured")
	}
	session, err := currentSession()
	if err != nil {
		return err
	}

	upload := driven.StaffDocumentUpload{Subject: staffSubject}
	if staffFilePath != "" {
		file, err := os.Open(staffFilePath)
		if err != nil {
			return fmt.Errorf("opening %s: %w", staffFilePath, err)
		}
		defer file.Close()
		upload.File = file
		upload.FileName = filepath.Base(staffFilePath)
	} else {
		doc, err := services.Archive.GetStaffDocument(context.Background(), args[0])
		if err != nil {
			return err
		}
		upload.FileName = doc.FileName
	}

	doc, err := services.Archive.UpdateStaffDocument(context.Background(), session, args[0], upload)
	if err != nil {
		return err
	}

	cmd.Printf("Updated %s (%s)\n", doc.ID, doc.Subject)
	return nil
}

func runStaffDelete(cmd *cobra.Command, args []string) error {
	if services == nil || services.Archive == nil {
		return errors.New("archive service not configured")
	}
	session, err := currentSession()
	if err != nil {
		return err
	}

	if err := services.Archive.DeleteStaffDocument(context.Background(), session, args[0]); err != nil {
		return err
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}
