package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// NewLeaderboardCmd создаёт команду вывода таблицы лидеров.
func NewLeaderboardCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			entries, err := client.Leaderboard(limit)
			if err != nil {
				return err
			}

			headers := []string{"RANK", "NAME", "SKILL", "MU", "SIGMA", "MATCHES", "ID"}
			rows := make([][]string, len(entries))
			for i, e := range entries {
				rows[i] = []string{
					strconv.Itoa(e.Rank),
					e.Name,
					formatFloat(e.Skill), formatFloat(e.Mu), formatFloat(e.Sigma),
					strconv.Itoa(e.MatchCount),
					e.ID,
				}
			}

			out.Print(headers, rows, entries)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of entries (server default if not set)")

	return cmd
}
