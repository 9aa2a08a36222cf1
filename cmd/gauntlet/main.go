// Gauntlet CLI — инструмент командной строки для управления
// игроками, матчами и просмотра таблицы лидеров через HTTP API.
//
// Использование:
//
//	gauntlet [--api-url URL] [--json] <command> <subcommand> [flags]
//
// Команды:
//
//	player       Управление игроками
//	match        Управление матчами
//	leaderboard  Таблица лидеров
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/Gauntlet/internal/cli"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var apiURL string
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "gauntlet",
		Short:         "Gauntlet CLI — bot tournament tool",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	clientFn := func() *cli.Client { return cli.NewClient(apiURL) }
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewPlayerCmd(clientFn, outputFn),
		cli.NewMatchCmd(clientFn, outputFn),
		cli.NewLeaderboardCmd(clientFn, outputFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
