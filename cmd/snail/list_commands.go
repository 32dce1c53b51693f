package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"snail/internal/authoring"
	"snail/internal/language"
	"snail/internal/liststore"
	"snail/internal/logging"
	"snail/internal/schema"
	"snail/internal/word"
)

func newListCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newCreateListCommand(ctx),
		newFinalizeListCommand(ctx),
		newDumpListCommand(ctx),
		newExportListCommand(ctx),
		newReplaceFromDumpCommand(ctx),
		newValidateCommand(ctx),
	}
}

func newCreateListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "create-list LANG",
		Short: "Seed a word list from the basics file and a frequency list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := parseLanguageArg(args[0])
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			basics, err := authoring.ReadBasics(cfg.Paths.BasicsPath)
			if err != nil {
				return err
			}

			var frequency []string
			freqPath := cfg.FrequencyListPath(lang)
			f, err := os.Open(freqPath)
			switch {
			case errors.Is(err, os.ErrNotExist):
				logging.WarnWithContext(logger, "frequency list not found", "frequency_list_missing",
					logging.Path(freqPath),
					logging.Language(string(lang)),
					logging.Impact("list seeded from basics only"),
					logging.Hint("place one word per line in "+freqPath))
			case err != nil:
				return fmt.Errorf("open frequency list: %w", err)
			default:
				frequency, err = authoring.ReadFrequencyList(f, cfg.Deck.FrequencyListLength)
				f.Close()
				if err != nil {
					return err
				}
			}

			records := authoring.CreateList(basics, frequency, lang)
			dir := cfg.ListDir(lang)
			return withLock(cfg.Paths.ListsDir, func() error {
				shards, err := liststore.New(logger).Replace(records, dir, cfg.Deck.ChunkSize)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s list with %d words in %d shards at %s\n",
					language.DisplayName(lang), len(records), len(shards), dir)
				return nil
			})
		},
	}
}

func newFinalizeListCommand(ctx *commandContext) *cobra.Command {
	var trim int

	cmd := &cobra.Command{
		Use:   "finalize-list LANG",
		Short: "Assign keys, deduplicate and optionally trim a word list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := parseLanguageArg(args[0])
			if err != nil {
				return err
			}
			if trim < 0 {
				return fmt.Errorf("--trim must be zero or positive, got %d", trim)
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			store := liststore.New(logger)
			dir := cfg.ListDir(lang)
			return withLock(cfg.Paths.ListsDir, func() error {
				records, err := store.Load(dir, schema.Options{})
				if err != nil {
					return err
				}
				final := authoring.Finalize(records, lang, trim, uuid.NewString)
				if err := schema.ValidateRecords(final, schema.Options{}).Err(); err != nil {
					return fmt.Errorf("finalized list: %w", err)
				}
				if _, err := store.Replace(final, dir, cfg.Deck.ChunkSize); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Finalized %s list: %d of %d words kept\n",
					language.DisplayName(lang), len(final), len(records))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&trim, "trim", 0, "Keep only the first N words after deduplication (0 keeps all)")
	return cmd
}

func newDumpListCommand(ctx *commandContext) *cobra.Command {
	var wordType string

	cmd := &cobra.Command{
		Use:   "dump-list LANG",
		Short: "Copy a word list into the dump directory for manual refinement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := parseLanguageArg(args[0])
			if err != nil {
				return err
			}
			filter, err := word.ParseFilter(wordType)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			store := liststore.New(logger)
			records, err := store.Load(cfg.ListDir(lang), schema.Options{KeyRequired: true})
			if err != nil {
				return err
			}
			selected := authoring.FilterByType(records, filter)
			dumpDir := cfg.DumpListDir(lang)
			return withLock(cfg.Paths.DumpDir, func() error {
				if _, err := store.Replace(selected, dumpDir, cfg.Deck.ChunkSize); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Dumped %d %s words to %s\n", len(selected), filter, dumpDir)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&wordType, "word-type", string(word.TypeAll), "Only dump words of this type")
	return cmd
}

func newExportListCommand(ctx *commandContext) *cobra.Command {
	var wordType string

	cmd := &cobra.Command{
		Use:   "export-list LANG FILE",
		Short: "Write a word list as a single YAML file (\"-\" for stdout)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := parseLanguageArg(args[0])
			if err != nil {
				return err
			}
			filter, err := word.ParseFilter(wordType)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			records, err := liststore.New(logger).Load(cfg.ListDir(lang), schema.Options{KeyRequired: true})
			if err != nil {
				return err
			}
			selected := authoring.FilterByType(records, filter)

			if args[1] == "-" {
				return authoring.WriteExport(cmd.OutOrStdout(), selected)
			}
			return exportToFile(args[1], selected, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&wordType, "word-type", string(word.TypeAll), "Only export words of this type")
	return cmd
}

func exportToFile(path string, records []word.Record, out io.Writer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := authoring.WriteExport(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	fmt.Fprintf(out, "Exported %d words to %s\n", len(records), path)
	return nil
}

func newReplaceFromDumpCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "replace-from-dump LANG",
		Short: "Merge refined records from the dump directory back into a word list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := parseLanguageArg(args[0])
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			store := liststore.New(logger)
			dumpDir := cfg.DumpListDir(lang)
			dump, err := store.Load(dumpDir, schema.Options{KeyRequired: true})
			if err != nil {
				return fmt.Errorf("load dump: %w", err)
			}

			dir := cfg.ListDir(lang)
			return withLock(cfg.Paths.ListsDir, func() error {
				list, err := store.Load(dir, schema.Options{KeyRequired: true})
				if err != nil {
					return err
				}
				merged, replaced, err := authoring.ReplaceFromDump(list, dump)
				if err != nil {
					return err
				}
				if _, err := store.Replace(merged, dir, cfg.Deck.ChunkSize); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Replaced %d of %d words in %s list\n",
					replaced, len(list), language.DisplayName(lang))
				return nil
			})
		},
	}
}

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var allowMissingKey bool

	cmd := &cobra.Command{
		Use:   "validate LANG",
		Short: "Check every shard of a word list against the record schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := parseLanguageArg(args[0])
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			records, err := liststore.New(logger).Load(cfg.ListDir(lang), schema.Options{KeyRequired: !allowMissingKey})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s list valid: %d words\n", language.DisplayName(lang), len(records))
			return nil
		},
	}

	cmd.Flags().BoolVar(&allowMissingKey, "allow-missing-key", false, "Accept records without a key (lists not yet finalized)")
	return cmd
}
