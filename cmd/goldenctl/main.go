//
// EvalForge is pleased to support the open source community by making tabeval available.
//
// Copyright (C) 2025 EvalForge.  All rights reserved.
//
// tabeval is licensed under the Apache License Version 2.0.
//
//

// goldenctl curates the golden dataset document from the command line.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/evalforge/tabeval/compare"
	"github.com/evalforge/tabeval/goldenset"
	"github.com/evalforge/tabeval/goldenset/local"
	"github.com/evalforge/tabeval/log"
	"github.com/evalforge/tabeval/tabular"
)

const envPrefix = "TABEVAL"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "goldenctl",
		Short:         "Curate the golden evaluation dataset",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			log.SetLevel(viper.GetString("log-level"))
		},
	}
	root.PersistentFlags().String("file", "golden_dataset.json", "golden dataset file path")
	root.PersistentFlags().String("log-level", log.LevelInfo, "log level (debug|info|warn|error|fatal)")
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.BindPFlag("file", root.PersistentFlags().Lookup("file"))
	viper.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))
	root.AddCommand(newShowCmd(), newGetCmd(), newUpsertCmd(), newClearCmd())
	return root
}

func newManager() goldenset.Manager {
	return local.New(goldenset.WithPath(viper.GetString("file")))
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the dataset document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := newManager().Read(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("generated_at: %s\n", doc.GeneratedAt)
			fmt.Printf("language: %s\n", doc.Language)
			fmt.Printf("total_questions: %d\n", doc.TotalQuestions)
			for _, entry := range doc.Entries {
				fmt.Printf("  %s [%s] %s\n",
					entry.Metadata.QuestionID, entry.QuestionDifficulty, entry.ResearchQuestion)
			}
			return nil
		},
	}
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <question-id>",
		Short: "Print a single entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := newManager().Load(cmd.Context(), args[0])
			if err != nil {
				// A missing entry is routine during curation; report and
				// continue with a zero exit.
				if isNotFound(err) {
					fmt.Printf("entry %s not found\n", args[0])
					return nil
				}
				return err
			}
			encoded, err := json.MarshalIndent(entry, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal entry: %w", err)
			}
			fmt.Println(string(encoded))
			return nil
		},
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, goldenset.ErrEntryNotFound)
}

func newUpsertCmd() *cobra.Command {
	var (
		questionID string
		question   string
		difficulty string
		text       string
		tablesPath string
		mode       string
		dropIndex  bool
		ignoreCols bool
	)
	cmd := &cobra.Command{
		Use:   "upsert",
		Short: "Insert or update an entry keyed by question id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := &goldenset.UpsertRequest{
				QuestionID:         questionID,
				ResearchQuestion:   question,
				QuestionDifficulty: goldenset.Difficulty(difficulty),
			}
			if cmd.Flags().Changed("text") {
				req.Text = &text
			}
			if tablesPath != "" {
				tables, err := readTables(tablesPath)
				if err != nil {
					return err
				}
				req.TabularObjects = tables
			}
			if cmd.Flags().Changed("mode") {
				parsed, err := compare.ParseMode(mode)
				if err != nil {
					return err
				}
				cfg, err := compare.NewConfig(parsed,
					compare.WithDropIndex(dropIndex),
					compare.WithIgnoreColumnNames(ignoreCols))
				if err != nil {
					return err
				}
				req.ComparisonConfig = cfg
			}
			if err := newManager().Upsert(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Printf("upserted entry %s\n", questionID)
			return nil
		},
	}
	cmd.Flags().StringVar(&questionID, "question-id", "", "unique question id (required)")
	cmd.Flags().StringVar(&question, "question", "", "research question text")
	cmd.Flags().StringVar(&difficulty, "difficulty", string(goldenset.DifficultyEasy), "question difficulty (Easy|Hard)")
	cmd.Flags().StringVar(&text, "text", "", "expected free-text answer")
	cmd.Flags().StringVar(&tablesPath, "tables", "", "path to a JSON array of interchange tabular objects")
	cmd.Flags().StringVar(&mode, "mode", string(compare.ModeExactMatch), "comparison mode")
	cmd.Flags().BoolVar(&dropIndex, "drop-index", true, "drop row indexes before comparison")
	cmd.Flags().BoolVar(&ignoreCols, "ignore-column-names", false, "ignore column names during comparison")
	cmd.MarkFlagRequired("question-id")
	return cmd
}

// readTables loads reference tables from a JSON array in interchange form.
// A table that cannot round-trip is a hard failure; a corrupted entry
// would silently invalidate all future comparisons against it.
func readTables(path string) ([]*tabular.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables file %s: %w", path, err)
	}
	var tables []*tabular.Table
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("decode tables file %s: %w", path, err)
	}
	return tables, nil
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Reset the dataset to the empty document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := newManager().Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("dataset cleared")
			return nil
		},
	}
}
