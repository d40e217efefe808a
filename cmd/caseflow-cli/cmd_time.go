package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/caseflowhq/caseflow/client"
)

func newTimeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Manage billable time entries",
	}
	cmd.AddCommand(timeLogCmd())
	cmd.AddCommand(timeGetCmd())
	cmd.AddCommand(timeUpdateCmd())
	cmd.AddCommand(timeDeleteCmd())
	cmd.AddCommand(timeListCmd())
	return cmd
}

func timeLogCmd() *cobra.Command {
	var minutes int
	var workedOn string
	cmd := &cobra.Command{
		Use:   "log <case-id> <description>",
		Short: "Log time against a case",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			worked := time.Now().UTC()
			if workedOn != "" {
				var err error
				worked, err = time.Parse("2006-01-02", workedOn)
				if err != nil {
					fatal("parse worked-on date", err)
				}
			}
			req := client.CreateTimeEntryRequest{
				Description: args[1],
				Minutes:     minutes,
				WorkedOn:    worked,
			}
			entry, err := apiClient.TimeEntries.Create(context.Background(), args[0], req)
			if err != nil {
				fatal("log time", err)
			}
			output(entry, entry.ID)
		},
	}
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Minutes worked (1-1440)")
	cmd.Flags().StringVar(&workedOn, "date", "", "Work date (YYYY-MM-DD, default today)")
	cmd.MarkFlagRequired("minutes")
	return cmd
}

func timeGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <case-id> <entry-id>",
		Short: "Get a time entry by ID",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			entry, err := apiClient.TimeEntries.Get(context.Background(), args[0], args[1])
			if err != nil {
				fatal("get time entry", err)
			}
			output(entry, entry.ID)
		},
	}
}

func timeUpdateCmd() *cobra.Command {
	var fieldsJSON string
	cmd := &cobra.Command{
		Use:   "update <case-id> <entry-id>",
		Short: "Update time entry fields",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			var fields map[string]any
			if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
				fatal("parse fields", err)
			}
			entry, err := apiClient.TimeEntries.Patch(context.Background(), args[0], args[1], fields)
			if err != nil {
				fatal("update time entry", err)
			}
			output(entry, entry.ID)
		},
	}
	cmd.Flags().StringVar(&fieldsJSON, "fields", "", "Fields to update as JSON")
	cmd.MarkFlagRequired("fields")
	return cmd
}

func timeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <case-id> <entry-id>",
		Short: "Delete a time entry",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			res, err := apiClient.TimeEntries.Delete(context.Background(), args[0], args[1])
			if err != nil {
				fatal("delete time entry", err)
			}
			if res.Warning != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", res.Warning)
			}
			output(res, res.Method)
		},
	}
}

func timeListCmd() *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list <case-id>",
		Short: "List time entries on a case",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			entries, hasMore, err := apiClient.TimeEntries.List(context.Background(), args[0], limit, offset)
			if err != nil {
				fatal("list time entries", err)
			}
			if flagFmt == "table" {
				rows := make([][]string, 0, len(entries))
				total := 0
				for _, e := range entries {
					total += e.Minutes
					rows = append(rows, []string{e.ID, e.Description, fmt.Sprintf("%d", e.Minutes), e.WorkedOn.Format("2006-01-02")})
				}
				formatTable([]string{"ID", "DESCRIPTION", "MINUTES", "DATE"}, rows)
				fmt.Printf("\nTotal: %d minutes\n", total)
				return
			}
			output(map[string]any{"time_entries": entries, "has_more": hasMore}, "")
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum entries to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Pagination offset")
	return cmd
}
