package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/voyago/concierge/internal/profile"
	"github.com/voyago/concierge/plugin/ai/traveltype"
	"github.com/voyago/concierge/server"
)

var rootCmd = &cobra.Command{
	Use:   "concierge",
	Short: "Travel concierge prompt pipeline",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		p := &profile.Profile{
			Mode: viper.GetString("mode"),
			Addr: viper.GetString("addr"),
			Port: viper.GetInt("port"),
		}
		p.FromEnv()
		if err := p.Validate(); err != nil {
			return err
		}

		level := slog.LevelInfo
		if p.IsDev() {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return server.NewServer(p).Start(ctx)
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score [answers.json]",
	Short: "Score quiz answers from a JSON file and print the travel type",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		var answers []traveltype.QuizAnswer
		if err := json.Unmarshal(data, &answers); err != nil {
			return fmt.Errorf("parse answers: %w", err)
		}

		code := traveltype.CalculateTravelTypeFromAnswers(answers)
		info, _ := traveltype.GetTravelTypeInfo(code)
		fmt.Printf("%s %s %s\n", code, info.Emoji, info.Name)
		return nil
	},
}

func init() {
	serveCmd.Flags().String("mode", "dev", `server mode: "prod", "dev", or "demo"`)
	serveCmd.Flags().String("addr", "", "binding address")
	serveCmd.Flags().Int("port", 8081, "binding port")

	viper.BindPFlag("mode", serveCmd.Flags().Lookup("mode"))
	viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	viper.SetEnvPrefix("concierge")
	viper.AutomaticEnv()

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoreCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
