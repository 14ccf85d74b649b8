package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tendant/simple-document/pkg/simpledocument"
	"github.com/tendant/simple-document/pkg/simpledocument/config"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newService builds a service from environment configuration.
func newService(ctx context.Context) (simpledocument.Service, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	svc, err := cfg.BuildService(ctx)
	if err != nil {
		return nil, fmt.Errorf("building service: %w", err)
	}
	return svc, nil
}

func parseID(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid document id %q: %w", arg, err)
	}
	return id, nil
}

func printDocument(doc *simpledocument.Document) {
	fmt.Printf("ID:           %s\n", doc.ID)
	fmt.Printf("Client Ref:   %s\n", doc.ClientRef)
	fmt.Printf("Doc Type:     %s\n", doc.DocType)
	fmt.Printf("File Name:    %s\n", doc.FileName)
	fmt.Printf("Content Type: %s\n", doc.ContentType)
	fmt.Printf("Size:         %d bytes\n", doc.SizeBytes)
	fmt.Printf("Checksum:     %s\n", doc.Checksum)
	fmt.Printf("Status:       %s\n", doc.Status)
	if doc.Reason != "" {
		fmt.Printf("Reason:       %s\n", doc.Reason)
	}
	fmt.Printf("Created At:   %s\n", doc.CreatedAt)
	fmt.Printf("Updated At:   %s\n", doc.UpdatedAt)
}

var rootCmd = &cobra.Command{
	Use:   "docadmin",
	Short: "Administer a simple-document store",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, err := newService(ctx)
		if err != nil {
			return err
		}

		var filters simpledocument.ListDocumentsFilters
		if v, _ := cmd.Flags().GetString("status"); v != "" {
			status, err := simpledocument.ParseDocumentStatus(v)
			if err != nil {
				return err
			}
			filters.Status = &status
		}
		if v, _ := cmd.Flags().GetString("type"); v != "" {
			filters.DocType = &v
		}
		if v, _ := cmd.Flags().GetString("client"); v != "" {
			filters.ClientRef = &v
		}

		docs, err := svc.ListDocuments(ctx, filters)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			fmt.Println("No documents found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tTYPE\tCLIENT\tFILE\tSIZE")
		for _, doc := range docs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
				doc.ID, doc.Status, doc.DocType, doc.ClientRef, doc.FileName, doc.SizeBytes)
		}
		return w.Flush()
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one document record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, err := newService(ctx)
		if err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		doc, err := svc.GetDocument(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return fmt.Errorf("document %s not found", id)
		}

		printDocument(doc)
		return nil
	},
}

var catCmd = &cobra.Command{
	Use:   "cat <id>",
	Short: "Print document content (recorded in the audit trail)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, err := newService(ctx)
		if err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		result, err := svc.GetDocumentContent(ctx, id)
		if err != nil {
			return err
		}

		_, err = os.Stdout.Write(result.Content)
		return err
	},
}

var createCmd = &cobra.Command{
	Use:   "create <file>",
	Short: "Ingest a file as a new document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, err := newService(ctx)
		if err != nil {
			return err
		}

		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		clientRef, _ := cmd.Flags().GetString("client")
		docType, _ := cmd.Flags().GetString("type")
		contentType, _ := cmd.Flags().GetString("content-type")
		fileName, _ := cmd.Flags().GetString("name")
		if fileName == "" {
			fileName = args[0]
		}

		doc, err := svc.CreateDocument(ctx, simpledocument.CreateDocumentRequest{
			ClientRef:   clientRef,
			DocType:     docType,
			FileName:    fileName,
			ContentType: contentType,
			Content:     content,
		})
		if err != nil {
			return err
		}

		printDocument(doc)
		return nil
	},
}

var setStatusCmd = &cobra.Command{
	Use:   "set-status <id> <status>",
	Short: "Change a document's status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, err := newService(ctx)
		if err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		status, err := simpledocument.ParseDocumentStatus(args[1])
		if err != nil {
			return err
		}
		reason, _ := cmd.Flags().GetString("reason")

		doc, err := svc.ChangeDocumentStatus(ctx, simpledocument.ChangeStatusRequest{
			ID:     id,
			Status: status,
			Reason: reason,
		})
		if err != nil {
			return err
		}

		printDocument(doc)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a document (logical first, physical once rejected)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, err := newService(ctx)
		if err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		reason, _ := cmd.Flags().GetString("reason")

		result, err := svc.DeleteDocument(ctx, id, reason)
		if err != nil {
			return err
		}

		if result.Mode == simpledocument.DeleteModePhysical {
			fmt.Printf("Document %s permanently removed.\n", id)
			return nil
		}
		fmt.Printf("Document %s marked REJECTED (run rm again to remove permanently).\n", id)
		return nil
	},
}

func init() {
	listCmd.Flags().String("status", "", "filter by exact status")
	listCmd.Flags().String("type", "", "filter by exact document type")
	listCmd.Flags().String("client", "", "filter by client reference substring")

	createCmd.Flags().String("client", "", "client reference")
	createCmd.Flags().String("type", "", "document type")
	createCmd.Flags().String("content-type", "application/octet-stream", "content type")
	createCmd.Flags().String("name", "", "file name recorded on the document (defaults to the input path)")

	setStatusCmd.Flags().String("reason", "", "rejection reason (required when rejecting)")
	rmCmd.Flags().String("reason", "", "deletion reason")

	rootCmd.AddCommand(listCmd, getCmd, catCmd, createCmd, setStatusCmd, rmCmd)
}
