package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewPlayerCmd создаёт группу команд для управления игроками.
func NewPlayerCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Manage players",
	}

	cmd.AddCommand(
		newPlayerListCmd(clientFn, outputFn),
		newPlayerRegisterCmd(clientFn, outputFn),
		newPlayerShowCmd(clientFn, outputFn),
	)

	return cmd
}

func newPlayerListCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List players",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			players, err := client.ListPlayers()
			if err != nil {
				return err
			}

			headers := []string{"ID", "NAME", "MU", "SIGMA", "SKILL", "MATCHES"}
			rows := make([][]string, len(players))
			for i, p := range players {
				rows[i] = []string{
					p.ID, p.Name,
					formatFloat(p.Mu), formatFloat(p.Sigma), formatFloat(p.Skill),
					strconv.Itoa(p.MatchCount),
				}
			}

			out.Print(headers, rows, players)
			return nil
		},
	}
}

func newPlayerRegisterCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	var execPath string

	cmd := &cobra.Command{
		Use:   "register NAME",
		Short: "Register a new player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			player, err := client.CreatePlayer(args[0], execPath)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Player registered: %s", player.ID))
			out.Print(
				[]string{"ID", "NAME", "EXEC_PATH", "MU", "SIGMA", "SKILL"},
				[][]string{{
					player.ID, player.Name, player.ExecPath,
					formatFloat(player.Mu), formatFloat(player.Sigma), formatFloat(player.Skill),
				}},
				player,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&execPath, "exec", "", "Command that launches the player's bot (required)")
	cmd.MarkFlagRequired("exec")

	return cmd
}

func newPlayerShowCmd(clientFn func() *Client, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show player details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := clientFn()
			out := outputFn()

			player, err := client.GetPlayer(args[0])
			if err != nil {
				return err
			}

			out.Print(
				[]string{"ID", "NAME", "EXEC_PATH", "MU", "SIGMA", "SKILL", "MATCHES", "CREATED"},
				[][]string{{
					player.ID, player.Name, player.ExecPath,
					formatFloat(player.Mu), formatFloat(player.Sigma), formatFloat(player.Skill),
					strconv.Itoa(player.MatchCount), player.CreatedAt,
				}},
				player,
			)
			return nil
		},
	}
}

// formatFloat форматирует рейтинговые величины с двумя знаками после запятой.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
