package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caseflowhq/caseflow/client"
)

func newDocumentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "document",
		Aliases: []string{"doc"},
		Short:   "Manage case documents",
	}
	cmd.AddCommand(documentCreateCmd())
	cmd.AddCommand(documentGetCmd())
	cmd.AddCommand(documentUpdateCmd())
	cmd.AddCommand(documentDeleteCmd())
	cmd.AddCommand(documentListCmd())
	return cmd
}

func documentCreateCmd() *cobra.Command {
	var filePath, mimeType string
	var fileSize int64
	cmd := &cobra.Command{
		Use:   "create <case-id> <title>",
		Short: "Register a document on a case",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			req := client.CreateDocumentRequest{
				Title:    args[1],
				FilePath: filePath,
				FileSize: fileSize,
				MimeType: mimeType,
			}
			doc, err := apiClient.Documents.Create(context.Background(), args[0], req)
			if err != nil {
				fatal("create document", err)
			}
			output(doc, doc.ID)
		},
	}
	cmd.Flags().StringVar(&filePath, "file-path", "", "Blob storage path")
	cmd.Flags().Int64Var(&fileSize, "file-size", 0, "File size in bytes")
	cmd.Flags().StringVar(&mimeType, "mime-type", "", "MIME type")
	return cmd
}

func documentGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <case-id> <doc-id>",
		Short: "Get a document by ID",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			doc, err := apiClient.Documents.Get(context.Background(), args[0], args[1])
			if err != nil {
				fatal("get document", err)
			}
			output(doc, doc.ID)
		},
	}
}

func documentUpdateCmd() *cobra.Command {
	var fieldsJSON string
	cmd := &cobra.Command{
		Use:   "update <case-id> <doc-id>",
		Short: "Update document fields",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			var fields map[string]any
			if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
				fatal("parse fields", err)
			}
			doc, err := apiClient.Documents.Patch(context.Background(), args[0], args[1], fields)
			if err != nil {
				fatal("update document", err)
			}
			output(doc, doc.ID)
		},
	}
	cmd.Flags().StringVar(&fieldsJSON, "fields", "", "Fields to update as JSON")
	cmd.MarkFlagRequired("fields")
	return cmd
}

func documentDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <case-id> <doc-id>",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			res, err := apiClient.Documents.Delete(context.Background(), args[0], args[1])
			if err != nil {
				fatal("delete document", err)
			}
			if res.Warning != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", res.Warning)
			}
			output(res, res.Method)
		},
	}
}

func documentListCmd() *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list <case-id>",
		Short: "List documents on a case",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			docs, hasMore, err := apiClient.Documents.List(context.Background(), args[0], limit, offset)
			if err != nil {
				fatal("list documents", err)
			}
			if flagFmt == "table" {
				rows := make([][]string, 0, len(docs))
				for _, d := range docs {
					rows = append(rows, []string{d.ID, d.Title, d.MimeType, fmt.Sprintf("%d", d.FileSize)})
				}
				formatTable([]string{"ID", "TITLE", "MIME", "SIZE"}, rows)
				return
			}
			output(map[string]any{"documents": docs, "has_more": hasMore}, "")
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum documents to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Pagination offset")
	return cmd
}
