package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mkobayashi/tabiplan/internal/engine"
)

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// runOnce answers a single query and prints the planner's final message.
func runOnce(ctx context.Context, planner *engine.Planner, query string) error {
	answer, err := planner.Plan(ctx, query)
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}

// runREPL reads queries from stdin one line at a time. The planner and its
// account are reused, so the budget spans the whole session.
func runREPL(ctx context.Context, planner *engine.Planner) error {
	fmt.Println("tabiplan - Tokyo travel planner")
	fmt.Println("Type a travel question, or \"exit\" to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			break
		}

		answer, err := planner.Plan(ctx, query)
		if err != nil {
			if engine.IsRetryExhausted(err) {
				fmt.Fprintln(os.Stderr, "model endpoint unavailable after retries, try again later")
			} else {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}
			continue
		}
		fmt.Println(answer)
		fmt.Println()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	account := planner.Account()
	fmt.Printf("session total: %d tokens, cost %.4f\n", account.Totals.Total(), account.Cost)
	return nil
}
