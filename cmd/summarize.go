package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"notesum/internal/ai"
	"notesum/internal/model"
	"notesum/internal/service"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [FILE]",
	Short: "Summarize a file or stdin with the configured backend",
	Long: `Read text from FILE (or stdin when FILE is omitted or "-"),
summarize it with the configured backend and print the summary.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	flags := summarizeCmd.Flags()
	flags.IntP("sentences", "s", 0, "target sentence count (default from config)")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if err := cfg.Summarizer.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	text, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	summarizer, err := ai.NewSummarizer(&cfg.Summarizer)
	if err != nil {
		return err
	}
	defer summarizer.Close()

	ctx := context.Background()
	if err := summarizer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start summarizer: %w", err)
	}

	req := &model.SummarizeRequest{Text: text}
	if n, _ := cmd.Flags().GetInt("sentences"); n > 0 {
		req.MaxSentences = &n
	}

	resp, err := service.NewSummarizeService(summarizer, cfg.Summarizer.Bounds).Summarize(ctx, req)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), resp.Summary)
	return err
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}
