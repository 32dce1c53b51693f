package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"snail/internal/authoring"
	"snail/internal/language"
)

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "languages",
		Short:       "List the languages snail knows about",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			required := map[language.Code]bool{}
			for _, code := range language.Supported() {
				required[code] = true
			}

			var rows [][]string
			for _, info := range language.All() {
				rows = append(rows, []string{
					string(info.Code),
					info.Name,
					info.Tag,
					yesNo(info.HasVoice()),
					yesNo(required[info.Code]),
				})
			}
			headers := []string{"Code", "Name", "Locale", "Voice", "Required"}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows))
			return nil
		},
	}
}

func newRefinementPromptCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "refinement-prompt LANG",
		Short: "Print the list refinement prompt for a language",
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
			tmpl, err := authoring.LoadPromptTemplate(cfg.Paths.TemplatePath)
			if err != nil {
				return err
			}
			prompt, err := authoring.RefinementPrompt(tmpl, lang, cfg.ListDir(lang))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), prompt)
			return nil
		},
	}
}
