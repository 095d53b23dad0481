package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arsipkita/arsip-cli/internal/core/domain"
	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Browse and manage the administrative archive",
	Long: `Browse, upload and manage documents in the administrative archive.

'document get' looks the id up across both collections, so it also
finds personal staff documents when given a staff document id.

Examples:
  arsip document list --type masuk --search undangan
  arsip document get D123
  arsip document upload --sender "Dinas Pendidikan" --subject "Undangan" --type masuk --file undangan.pdf
  arsip document download D123 --out ./undangan.pdf`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archive documents",
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one document, from either collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentUploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a new archive document (admin)",
	RunE:  runDocumentUpload,
}

var documentUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update an archive document (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentUpdate,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an archive document (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

var documentDownloadCmd = &cobra.Command{
	Use:   "download [id]",
	Short: "Download a document's stored file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDownload,
}

// Flags for document commands.
var (
	documentListSearch  string
	documentListType    string
	documentListPage    int
	documentListOffline bool

	documentGetSource string

	documentSender   string
	documentSubject  string
	documentType     string
	documentFilePath string

	documentDownloadOut    string
	documentDownloadSource string
)

func init() {
	documentListCmd.Flags().StringVar(&documentListSearch, "search", "", "Filter by subject or sender")
	documentListCmd.Flags().StringVar(&documentListType, "type", "", "Filter by letter type (masuk, keluar)")
	documentListCmd.Flags().IntVar(&documentListPage, "page", 1, "Page number")
	documentListCmd.Flags().BoolVar(&documentListOffline, "offline", false, "Show the cached snapshot instead of fetching")

	documentGetCmd.Flags().StringVar(
		&documentGetSource, "source", "", "Collection hint (document, staff)")

	for _, cmd := range []*cobra.Command{documentUploadCmd, documentUpdateCmd} {
		cmd.Flags().StringVar(&documentSender, "sender", "", "Originating party")
		cmd.Flags().StringVar(&documentSubject, "subject", "", "Subject line")
		cmd.Flags().StringVar(&documentType, "type", "", "Letter type (masuk, keluar)")
		cmd.Flags().StringVar(&documentFilePath, "file", "", "Path to the file")
	}

	documentDownloadCmd.Flags().StringVar(&documentDownloadOut, "out", "", "Destination path")
	documentDownloadCmd.Flags().StringVar(
		&documentDownloadSource, "source", "", "Collection hint (document, staff)")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentUploadCmd)
	documentCmd.AddCommand(documentUpdateCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	documentCmd.AddCommand(documentDownloadCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Archive == nil {
		return errors.New("archive service not configured")
	}
	ctx := context.Background()

	if documentListOffline {
		docs, err := services.Archive.ListDocumentsOffline(ctx)
		if err != nil {
			return err
		}
		cmd.Printf("Cached archive snapshot (%d documents):\n", len(docs))
		for _, doc := range docs {
			printDocumentRow(cmd, doc)
		}
		return nil
	}

	page, err := services.Archive.ListDocuments(ctx, domain.DocumentFilter{
		Search:     documentListSearch,
		LetterType: domain.LetterType(documentListType),
		Page:       documentListPage,
	})
	if err != nil {
		return err
	}

	cmd.Printf("Documents (page %d, %d total):\n", page.Page, page.Total)
	for _, doc := range page.Documents {
		printDocumentRow(cmd, doc)
	}
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if services == nil || services.Resolver == nil {
		return errors.New("resolver not configured")
	}

	hint, _ := domain.ParseDocumentSource(documentGetSource)
	resolved, err := services.Resolver.Resolve(context.Background(), args[0], hint)
	if err != nil {
		return err
	}

	cmd.Printf("ID:       %s\n", resolved.ID())
	cmd.Printf("Source:   %s\n", resolved.Source)
	cmd.Printf("Subject:  %s\n", resolved.Subject())
	cmd.Printf("File:     %s\n", resolved.FileName())
	cmd.Printf("Path:     %s\n", resolved.DetailPath())
	if resolved.Source == domain.SourceAdmin {
		cmd.Printf("Sender:   %s\n", resolved.Admin.Sender)
		cmd.Printf("Type:     %s\n", resolved.Admin.LetterType)
	} else {
		cmd.Printf("Owner:    %s\n", resolved.Staff.OwnerName)
	}
	return nil
}

func runDocumentUpload(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Archive == nil {
		return errors.New("archive service not configured")
	}
	session, err := currentSession()
	if err != nil {
		return err
	}
	if documentFilePath == "" {
		return errors.New("--file is required")
	}

	file, err := os.Open(documentFilePath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", documentFilePath, err)
	}
	defer file.Close()

	doc, err := services.Archive.UploadDocument(context.Background(), session, driven.DocumentUpload{
		Sender:     documentSender,
		Subject:    documentSubject,
		LetterType: domain.LetterType(documentType),
		FileName:   filepath.Base(documentFilePath),
		File:       file,
	})
	if err != nil {
		return err
	}

	cmd.Printf("Uploaded %s (%s)\n", doc.ID, doc.Subject)
	return nil
}

func runDocumentUpdate(cmd *cobra.Command, args []string) error {
	if services == nil || services.Archive == nil {
		return errors.New("archive service not configured")
	}
	session, err := currentSession()
	if err != nil {
		return err
	}

	upload := driven.DocumentUpload{
		Sender:     documentSender,
		Subject:    documentSubject,
		LetterType: domain.LetterType(documentType),
	}
	if documentFilePath != "" {
		file, err := os.Open(documentFilePath)
		if err != nil {
			return fmt.Errorf("opening %s: %w", documentFilePath, err)
		}
		defer file.Close()
		upload.File = file
		upload.FileName = filepath.Base(documentFilePath)
	} else {
		// Keep the stored file; the name still travels for display.
		doc, err := services.Archive.GetDocument(context.Background(), args[0])
		if err != nil {
			return err
		}
		upload.FileName = doc.FileName
	}

	doc, err := services.Archive.UpdateDocument(context.Background(), session, args[0], upload)
	if err != nil {
		return err
	}

	cmd.Printf("Updated %s (%s)\n", doc.ID, doc.Subject)
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if services == nil || services.Archive == nil {
		return errors.New("archive service not configured")
	}
	session, err := currentSession()
	if err != nil {
		return err
	}

	if err := services.Archive.DeleteDocument(context.Background(), session, args[0]); err != nil {
		return err
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}

func runDocumentDownload(cmd *cobra.Command, args []string) error {
	if services == nil || services.Archive == nil || services.Resolver == nil {
		return errors.New("archive service not configured")
	}
	ctx := context.Background()

	hint, _ := domain.ParseDocumentSource(documentDownloadSource)
	resolved, err := services.Resolver.Resolve(ctx, args[0], hint)
	if err != nil {
		return err
	}

	dest := documentDownloadOut
	if dest == "" {
		dest = resolved.FileName()
	}
	if dest == "" {
		return errors.New("document has no stored file name, pass --out")
	}

	if err := services.Archive.Download(ctx, resolved, dest); err != nil {
		return err
	}
	cmd.Printf("Saved %s\n", dest)
	return nil
}

func printDocumentRow(cmd *cobra.Command, doc domain.Document) {
	cmd.Printf("  %s  [%s]  %s  (%s)\n", doc.ID, doc.LetterType, doc.Subject, doc.Sender)
}
