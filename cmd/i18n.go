package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/herb-harvest/internal/i18n"
)

var i18nCmd = &cobra.Command{
	Use:   "i18n",
	Short: "Inspect and complete UI translations",
}

var i18nMissingCmd = &cobra.Command{
	Use:   "missing <lang>",
	Short: "List English keys a language still lacks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer env.Close()

		code := args[0]
		name := i18n.EnglishName(code)
		missing := env.Localizer.MissingKeys(code)
		out := cmd.OutOrStdout()
		if len(missing) == 0 {
			fmt.Fprintln(out, env.Localizer.Translate("All translations for {{languageName}} are complete!", map[string]any{"languageName": name}))
			return nil
		}
		fmt.Fprintln(out, env.Localizer.Translate("Missing Translations for {{languageName}}", map[string]any{"languageName": name}))
		for _, k := range missing {
			fmt.Fprintf(out, "  %s\n", k)
		}
		return nil
	},
}

var i18nTranslateCmd = &cobra.Command{
	Use:   "translate <lang>",
	Short: "Fill missing translations with the completion model",
	Long:  "Translations added here live for the duration of the process; print them with --print to keep them in a bundle.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx, true)
		if err != nil {
			return err
		}
		defer env.Close()

		code := args[0]
		res, err := env.Filler.Fill(ctx, code)
		t := env.Localizer.Translate
		if err != nil {
			return fmt.Errorf("%s %s: %w", t("Translation Failed", nil), t("Could not fetch translations from AI.", nil), err)
		}

		out := cmd.OutOrStdout()
		if res.UpToDate {
			fmt.Fprintln(out, t("All text for {{languageName}} is up to date.", map[string]any{"languageName": res.LanguageName}))
			return nil
		}
		fmt.Fprintln(out, t("{{count}} new translations for {{languageName}} have been added.", map[string]any{
			"count":        res.Added,
			"languageName": res.LanguageName,
		}))
		if len(res.Skipped) > 0 {
			fmt.Fprintf(out, "skipped (placeholder mismatch): %s\n", strings.Join(res.Skipped, ", "))
		}

		if p, _ := cmd.Flags().GetBool("print"); p {
			for _, k := range env.Localizer.Catalog().Keys(code) {
				v, _ := env.Localizer.Catalog().Lookup(code, k)
				fmt.Fprintf(out, "%q: %q\n", k, v)
			}
		}
		return nil
	},
}

var i18nLanguageCmd = &cobra.Command{
	Use:   "language [code]",
	Short: "Show or set the active language",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := initEnv(ctx, false)
		if err != nil {
			return err
		}
		defer env.Close()

		if len(args) == 1 {
			if err := env.Localizer.SetLanguage(ctx, args[0]); err != nil {
				return err
			}
		}
		out := cmd.OutOrStdout()
		active := env.Localizer.Language()
		for _, l := range i18n.Languages() {
			marker := " "
			if l.Code == active {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %-3s %s (%s)\n", marker, l.Code, l.Name, l.NativeName)
		}
		return nil
	},
}

var i18nLookupCmd = &cobra.Command{
	Use:   "lookup <key> [name=value...]",
	Short: "Resolve a key in the active language",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer env.Close()

		subs := make(map[string]any, len(args)-1)
		for _, kv := range args[1:] {
			if name, value, ok := strings.Cut(kv, "="); ok {
				subs[name] = value
			}
		}
		if lang, _ := cmd.Flags().GetString("lang"); lang != "" {
			fmt.Fprintln(cmd.OutOrStdout(), env.Localizer.TranslateIn(lang, args[0], subs))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), env.Localizer.Translate(args[0], subs))
		return nil
	},
}

func init() {
	i18nTranslateCmd.Flags().Bool("print", false, "print the full dictionary after merging")
	i18nLookupCmd.Flags().String("lang", "", "language to resolve in (default: active)")

	i18nCmd.AddCommand(i18nMissingCmd, i18nTranslateCmd, i18nLanguageCmd, i18nLookupCmd)
	rootCmd.AddCommand(i18nCmd)
}
