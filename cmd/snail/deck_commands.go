package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"snail/internal/ankipkg"
	"snail/internal/config"
	"snail/internal/deck"
	"snail/internal/deckindex"
	"snail/internal/dedup"
	"snail/internal/language"
	"snail/internal/liststore"
	"snail/internal/localize"
	"snail/internal/media"
	"snail/internal/schema"
)

func newCreateDeckCommand(ctx *commandContext) *cobra.Command {
	var nativeFlag string

	cmd := &cobra.Command{
		Use:   "create-deck LANG",
		Short: "Package a finalized word list as an Anki deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parseLanguageArg(args[0])
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			native := cfg.NativeLanguage()
			if strings.TrimSpace(nativeFlag) != "" {
				if native, err = parseLanguageArg(nativeFlag); err != nil {
					return err
				}
			}
			if native == target {
				return fmt.Errorf("target language %s matches the native language", target)
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			records, err := liststore.New(logger).Load(cfg.ListDir(target), schema.Options{KeyRequired: true})
			if err != nil {
				return err
			}
			records = dedup.ByKey(records)

			catalog, err := localize.New(cfg.Paths.LocalesDir)
			if err != nil {
				return err
			}
			resolver := media.NewResolver(cfg.AudioDir(target), cfg.ImagesDir(), logger)
			resolver.AudioExt = cfg.Deck.AudioExt
			resolver.ImageExt = cfg.Deck.ImageExt

			assembler := &deck.Assembler{
				Loc:      catalog,
				Resolver: resolver,
				Packager: ankipkg.NewWriter(logger),
				Logger:   logger,
			}

			return withLock(cfg.Paths.DecksDir, func() error {
				result, err := assembler.Build(cmd.Context(), records, native, target, cfg.DeckDir(target))
				if err != nil {
					return err
				}
				if _, err := deckindex.NewStore(cfg.DeckIndexPath(), logger).Update(
					string(native), string(target), indexPath(cfg, result.Path)); err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Created %q (%s → %s) at %s\n", result.Title,
					language.DisplayName(native), language.DisplayName(target), result.Path)
				fmt.Fprintf(out, "Notes: %d  Media files: %d  Missing audio: %d  Missing images: %d\n",
					result.Notes, result.Media, result.MissingAudio, result.MissingImages)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&nativeFlag, "native", "", "Native language override (defaults to deck.native_language)")
	return cmd
}

// indexPath records deck paths relative to the decks directory so the index
// stays valid when the build tree moves.
func indexPath(cfg *config.Config, deckPath string) string {
	rel, err := filepath.Rel(cfg.Paths.DecksDir, deckPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return deckPath
	}
	return filepath.ToSlash(rel)
}
