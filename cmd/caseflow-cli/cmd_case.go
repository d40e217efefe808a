package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/caseflowhq/caseflow/client"
)

func newCaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "case",
		Short: "Manage cases",
	}
	cmd.AddCommand(caseCreateCmd())
	cmd.AddCommand(caseGetCmd())
	cmd.AddCommand(caseListCmd())
	cmd.AddCommand(caseMemberCmd())
	return cmd
}

func caseCreateCmd() *cobra.Command {
	var clientName, description string
	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Open a new case",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			req := client.CreateCaseRequest{
				Title:       args[0],
				ClientName:  clientName,
				Description: description,
			}
			kase, err := apiClient.Cases.Create(context.Background(), req)
			if err != nil {
				fatal("create case", err)
			}
			output(kase, kase.ID)
		},
	}
	cmd.Flags().StringVar(&clientName, "client", "", "Client name")
	cmd.Flags().StringVar(&description, "description", "", "Case description")
	return cmd
}

func caseGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a case by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			kase, err := apiClient.Cases.Get(context.Background(), args[0])
			if err != nil {
				fatal("get case", err)
			}
			output(kase, kase.ID)
		},
	}
}

func caseListCmd() *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cases",
		Run: func(cmd *cobra.Command, args []string) {
			cases, hasMore, err := apiClient.Cases.List(context.Background(), limit, offset)
			if err != nil {
				fatal("list cases", err)
			}
			if flagFmt == "table" {
				rows := make([][]string, 0, len(cases))
				for _, k := range cases {
					rows = append(rows, []string{k.ID, k.Title, k.ClientName, k.Status})
				}
				formatTable([]string{"ID", "TITLE", "CLIENT", "STATUS"}, rows)
				return
			}
			output(map[string]any{"cases": cases, "has_more": hasMore}, "")
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum cases to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Pagination offset")
	return cmd
}

func caseMemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage the case roster",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <case-id> <user-id>",
		Short: "Add a user to a case",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			if err := apiClient.Cases.AddMember(context.Background(), args[0], args[1]); err != nil {
				fatal("add member", err)
			}
			output(map[string]string{"case_id": args[0], "user_id": args[1]}, args[1])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <case-id> <user-id>",
		Short: "Remove a user from a case",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			if err := apiClient.Cases.RemoveMember(context.Background(), args[0], args[1]); err != nil {
				fatal("remove member", err)
			}
			output(map[string]string{"case_id": args[0], "user_id": args[1]}, args[1])
		},
	})
	return cmd
}
