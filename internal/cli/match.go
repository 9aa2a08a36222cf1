package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// NewMatchCmd создаёт группу команд для управления матчами.
func NewMatchCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Manage matches",
	}

	cmd.AddCommand(
		newMatchListCmd(clientFn, outputFn),
		newMatchCreateCmd(clientFn, outputFn),
		newMatchShowCmd(clientFn, outputFn),
	)

	return cmd
}

func newMatchListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var status string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			matches, err := client.ListMatches(ListMatchesOpts{
				Status: status,
				Limit:  limit,
			})
			if err != nil {
				return err
			}

			headers := []string{"ID", "PLAYERS", "STATUS", "RANKS", "CREATED"}
			rows := make([][]string, len(matches))
			for i, m := range matches {
				rows[i] = []string{
					m.ID,
					strconv.Itoa(len(m.PlayerIDs)),
					m.Status,
					formatInts(m.Ranks),
					m.CreatedAt,
				}
			}

			out.Print(headers, rows, matches)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (PENDING, RUNNING, PLAYED, FINISHED, ...)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of results")

	return cmd
}

func newMatchCreateCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var width, height int
	var seed int64
	var timeLimit float64
	var keepReplay, keepLogs bool

	cmd := &cobra.Command{
		Use:   "create PLAYER_ID...",
		Short: "Create a match and queue it for execution",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			req := CreateMatchRequest{
				PlayerIDs:    args,
				MapWidth:     width,
				MapHeight:    height,
				MapSeed:      seed,
				TimeLimitSec: timeLimit,
				KeepReplay:   keepReplay,
				KeepLogs:     keepLogs,
			}

			match, err := client.CreateMatch(req)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Match created: %s", match.ID))
			out.Print(
				[]string{"ID", "PLAYERS", "MAP", "STATUS"},
				[][]string{{
					match.ID,
					strconv.Itoa(len(match.PlayerIDs)),
					fmt.Sprintf("%dx%d", match.MapWidth, match.MapHeight),
					match.Status,
				}},
				match,
			)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Map width (server default if not set)")
	cmd.Flags().IntVar(&height, "height", 0, "Map height (server default if not set)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Map seed (random if not set)")
	cmd.Flags().Float64Var(&timeLimit, "time-limit", 0, "Wall-clock budget in seconds")
	cmd.Flags().BoolVar(&keepReplay, "keep-replay", false, "Keep the replay file")
	cmd.Flags().BoolVar(&keepLogs, "keep-logs", false, "Keep per-player error logs")

	return cmd
}

func newMatchShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show match details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			match, err := client.GetMatch(args[0])
			if err != nil {
				return err
			}

			out.Print(
				[]string{"ID", "STATUS", "RANKS", "SCORES", "REPLAY", "ERROR", "FINISHED"},
				[][]string{{
					match.ID,
					match.Status,
					formatInts(match.Ranks),
					formatInts(match.Scores),
					match.ReplayFile,
					match.Error,
					match.FinishedAt,
				}},
				match,
			)
			return nil
		},
	}
}

// formatInts форматирует ранги/очки как "2,0,1". Пустой срез — "-".
func formatInts(vals []int) string {
	if len(vals) == 0 {
		return "-"
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
