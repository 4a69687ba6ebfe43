package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var askCmd = &cobra.Command{
	Use:   "ask <url> [question]",
	Short: "Summarize a URL, then answer questions about it",
	Long: `Summarizes the terms at the URL, then answers the given question against
the extracted text. With no question argument it drops into an interactive
loop; each answer is appended to the conversation history, so later
questions see earlier ones. Session state lives only for this invocation.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAnalyzer()
		if err != nil {
			return err
		}

		url := args[0]
		if _, err := a.Summarize(cmd.Context(), url); err != nil {
			zap.L().Error("summarize failed", zap.String("url", url), zap.Error(err))
			return err
		}

		if len(args) == 2 {
			answer, err := a.Ask(cmd.Context(), url, args[1])
			if err != nil {
				return err
			}
			fmt.Println(answer)
			return nil
		}

		// Interactive loop: one question per line, empty line or EOF quits.
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 64*1024)
		for {
			fmt.Print("question> ")
			if !scanner.Scan() {
				break
			}
			question := strings.TrimSpace(scanner.Text())
			if question == "" {
				break
			}
			answer, err := a.Ask(cmd.Context(), url, question)
			if err != nil {
				zap.L().Error("ask failed", zap.String("url", url), zap.Error(err))
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				continue
			}
			fmt.Println(answer)
			fmt.Println()
		}
		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
