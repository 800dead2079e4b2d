package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrei/cv-tailor/internal/history"
	"github.com/andrei/cv-tailor/internal/store"
)

var historyDBURL string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect saved generations",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved generations, most recent first",
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all saved generations (asks for confirmation)",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.PersistentFlags().StringVar(&historyDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

// openHistory connects to the database and loads the saved history.
func openHistory(ctx context.Context) (*history.Store, store.Store, error) {
	dbURL := historyDBURL
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		return nil, nil, fmt.Errorf("database URL is required (flag --db-url or DATABASE_URL)")
	}

	kv, err := store.ConnectPostgres(ctx, dbURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	hist := history.New(kv)
	hist.Load(ctx)
	return hist, kv, nil
}

func runHistoryList(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	hist, kv, err := openHistory(ctx)
	if err != nil {
		return err
	}
	defer kv.Close()

	items := hist.Items()
	if len(items) == 0 {
		fmt.Println("No saved generations.")
		return nil
	}

	for _, item := range items {
		preview := item.VacancyText
		if len([]rune(preview)) > 60 {
			preview = string([]rune(preview)[:60]) + "..."
		}
		preview = strings.ReplaceAll(preview, "\n", " ")
		fmt.Printf("%s  %s  %s\n", item.ID, item.Timestamp, preview)
	}
	return nil
}

func runHistoryClear(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	hist, kv, err := openHistory(ctx)
	if err != nil {
		return err
	}
	defer kv.Close()

	if hist.Len() == 0 {
		fmt.Println("History is already empty.")
		return nil
	}

	fmt.Printf("Delete all %d saved generations? [y/N] ", hist.Len())
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	confirmed := strings.TrimSpace(strings.ToLower(answer)) == "y"

	if !hist.Clear(ctx, confirmed) {
		fmt.Println("Aborted, history unchanged.")
		return nil
	}

	fmt.Println("History cleared.")
	return nil
}
