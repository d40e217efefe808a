package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

func newTimelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeline <case-id>",
		Short: "Show the activity timeline for a case",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			res, err := apiClient.Timeline.Get(context.Background(), args[0])
			if err != nil {
				fatal("get timeline", err)
			}
			if flagFmt == "table" {
				rows := make([][]string, 0, len(res.Timeline))
				for _, e := range res.Timeline {
					rows = append(rows, []string{
						e.CreatedAt.Format(time.RFC3339),
						e.EffectiveOperation,
						e.Title,
						e.Actor.Email,
					})
				}
				formatTable([]string{"TIME", "EVENT", "TITLE", "ACTOR"}, rows)
				return
			}
			output(res, "")
		},
	}
}
