package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caseflowhq/caseflow/client"
)

func newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage case notes",
	}
	cmd.AddCommand(noteCreateCmd())
	cmd.AddCommand(noteGetCmd())
	cmd.AddCommand(noteUpdateCmd())
	cmd.AddCommand(noteDeleteCmd())
	cmd.AddCommand(noteListCmd())
	return cmd
}

func noteCreateCmd() *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "create <case-id> <content>",
		Short: "Add a note to a case",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			req := client.CreateNoteRequest{
				Content: args[1],
				Source:  source,
			}
			note, err := apiClient.Notes.Create(context.Background(), args[0], req)
			if err != nil {
				fatal("create note", err)
			}
			output(note, note.ID)
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Note source tag")
	return cmd
}

func noteGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <case-id> <note-id>",
		Short: "Get a note by ID",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			note, err := apiClient.Notes.Get(context.Background(), args[0], args[1])
			if err != nil {
				fatal("get note", err)
			}
			output(note, note.ID)
		},
	}
}

func noteUpdateCmd() *cobra.Command {
	var content string
	cmd := &cobra.Command{
		Use:   "update <case-id> <note-id>",
		Short: "Update a note's content",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			note, err := apiClient.Notes.Patch(context.Background(), args[0], args[1], map[string]any{"content": content})
			if err != nil {
				fatal("update note", err)
			}
			output(note, note.ID)
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "New note content")
	cmd.MarkFlagRequired("content")
	return cmd
}

func noteDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <case-id> <note-id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			res, err := apiClient.Notes.Delete(context.Background(), args[0], args[1])
			if err != nil {
				fatal("delete note", err)
			}
			if res.Warning != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", res.Warning)
			}
			output(res, res.Method)
		},
	}
}

func noteListCmd() *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list <case-id>",
		Short: "List notes on a case",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			notes, hasMore, err := apiClient.Notes.List(context.Background(), args[0], limit, offset)
			if err != nil {
				fatal("list notes", err)
			}
			if flagFmt == "table" {
				rows := make([][]string, 0, len(notes))
				for _, n := range notes {
					content := n.Content
					if len(content) > 60 {
						content = content[:57] + "..."
					}
					rows = append(rows, []string{n.ID, content, n.Source})
				}
				formatTable([]string{"ID", "CONTENT", "SOURCE"}, rows)
				return
			}
			output(map[string]any{"notes": notes, "has_more": hasMore}, "")
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum notes to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Pagination offset")
	return cmd
}
