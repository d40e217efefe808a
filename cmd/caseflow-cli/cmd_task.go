package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/caseflowhq/caseflow/client"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage case tasks",
	}
	cmd.AddCommand(taskCreateCmd())
	cmd.AddCommand(taskGetCmd())
	cmd.AddCommand(taskUpdateCmd())
	cmd.AddCommand(taskDeleteCmd())
	cmd.AddCommand(taskListCmd())
	return cmd
}

func taskCreateCmd() *cobra.Command {
	var description, assignedTo, dueDate string
	cmd := &cobra.Command{
		Use:   "create <case-id> <title>",
		Short: "Create a task on a case",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			req := client.CreateTaskRequest{
				Title:       args[1],
				Description: description,
			}
			if assignedTo != "" {
				req.AssignedTo = &assignedTo
			}
			if dueDate != "" {
				due, err := time.Parse(time.RFC3339, dueDate)
				if err != nil {
					fatal("parse due date", err)
				}
				req.DueDate = &due
			}
			task, err := apiClient.Tasks.Create(context.Background(), args[0], req)
			if err != nil {
				fatal("create task", err)
			}
			output(task, task.ID)
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&assignedTo, "assign", "", "Assignee user ID")
	cmd.Flags().StringVar(&dueDate, "due", "", "Due date (RFC3339)")
	return cmd
}

func taskGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <case-id> <task-id>",
		Short: "Get a task by ID",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			task, err := apiClient.Tasks.Get(context.Background(), args[0], args[1])
			if err != nil {
				fatal("get task", err)
			}
			output(task, task.ID)
		},
	}
}

func taskUpdateCmd() *cobra.Command {
	var status, fieldsJSON string
	cmd := &cobra.Command{
		Use:   "update <case-id> <task-id>",
		Short: "Update task fields",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			fields := map[string]any{}
			if fieldsJSON != "" {
				if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
					fatal("parse fields", err)
				}
			}
			if status != "" {
				fields["status"] = status
			}
			if len(fields) == 0 {
				fatal("update task", fmt.Errorf("nothing to update, pass --status or --fields"))
			}
			task, err := apiClient.Tasks.Patch(context.Background(), args[0], args[1], fields)
			if err != nil {
				fatal("update task", err)
			}
			output(task, task.ID)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "New status: pending|in_progress|completed")
	cmd.Flags().StringVar(&fieldsJSON, "fields", "", "Fields to update as JSON")
	return cmd
}

func taskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <case-id> <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			res, err := apiClient.Tasks.Delete(context.Background(), args[0], args[1])
			if err != nil {
				fatal("delete task", err)
			}
			if res.Warning != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", res.Warning)
			}
			output(res, res.Method)
		},
	}
}

func taskListCmd() *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list <case-id>",
		Short: "List tasks on a case",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			tasks, hasMore, err := apiClient.Tasks.List(context.Background(), args[0], limit, offset)
			if err != nil {
				fatal("list tasks", err)
			}
			if flagFmt == "table" {
				rows := make([][]string, 0, len(tasks))
				for _, t := range tasks {
					assignee := ""
					if t.AssignedTo != nil {
						assignee = *t.AssignedTo
					}
					rows = append(rows, []string{t.ID, t.Title, t.Status, assignee})
				}
				formatTable([]string{"ID", "TITLE", "STATUS", "ASSIGNEE"}, rows)
				return
			}
			output(map[string]any{"tasks": tasks, "has_more": hasMore}, "")
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum tasks to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Pagination offset")
	return cmd
}
