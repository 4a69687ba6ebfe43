package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Summarize the terms of service at a URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAnalyzer()
		if err != nil {
			return err
		}

		url := args[0]
		doc, err := a.Summarize(cmd.Context(), url)
		if err != nil {
			zap.L().Error("analyze failed", zap.String("url", url), zap.Error(err))
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode summary: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
