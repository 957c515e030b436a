package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"libris/internal/config"
	"libris/internal/domain"

	"github.com/spf13/cobra"
)

var importBooksCmd = &cobra.Command{
	Use:   "import-books <file.csv>",
	Short: "Bulk-load the catalog from a CSV of title,author,copies rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = st.close() }()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		ctx := context.Background()
		reader := csv.NewReader(f)
		reader.FieldsPerRecord = -1

		imported := 0
		for {
			record, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("read csv: %w", err)
			}
			if len(record) < 2 {
				return fmt.Errorf("line %d: want title,author[,copies]", imported+1)
			}

			title := strings.TrimSpace(record[0])
			author := strings.TrimSpace(record[1])
			copies := 1
			if len(record) >= 3 && strings.TrimSpace(record[2]) != "" {
				if copies, err = strconv.Atoi(strings.TrimSpace(record[2])); err != nil || copies < 0 {
					return fmt.Errorf("line %d: bad copies %q", imported+1, record[2])
				}
			}

			status := domain.Unavailable
			if copies > 0 {
				status = domain.Available
			}
			if _, err := st.books.AddBook(ctx, title, author, copies, status); err != nil {
				return fmt.Errorf("add %q: %w", title, err)
			}
			imported++
		}

		fmt.Printf("imported %d books\n", imported)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importBooksCmd)
}
