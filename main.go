// docx-translator rewrites Traditional Chinese Word documents into
// bilingual documents: every Chinese block keeps its original text and
// gains an English rendering, with flowchart tables cloned instead of
// mutated. See the translate, extract-terms and check subcommands.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"docx-translator/internal/bilingual"
	"docx-translator/internal/config"
	"docx-translator/internal/docx"
	"docx-translator/internal/logger"
	"docx-translator/internal/terms"
	"docx-translator/internal/translator"
	"docx-translator/internal/types"
)

var version = "0.1.0"

func main() {
	if err := logger.Init(logger.DefaultConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
	}
	defer logger.Close()

	rootCmd := &cobra.Command{
		Use:   "docx-translator",
		Short: "Bilingual Chinese-to-English docx rewriter",
		Long: `docx-translator rewrites a Traditional Chinese .docx in place so every
Chinese paragraph, table cell, header and flowchart is paired with its
English translation. Layout, embedded graphics and document structure
survive unchanged; flowchart tables are cloned after a page break so the
original diagram is kept next to its translation.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(translateCmd())
	rootCmd.AddCommand(extractTermsCmd())
	rootCmd.AddCommand(checkCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func translateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate <input.docx>",
		Short: "Translate a document into bilingual form",
		Long: `Translate a Traditional Chinese .docx into a bilingual document.

The term dictionary and fixed-translation map are optional; without them
translation falls back to the backend alone.

Example:
  docx-translator translate manual.docx -o manual_bilingual.docx
  docx-translator translate manual.docx --terms pcb_terms.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			output, _ := cmd.Flags().GetString("output")
			configPath, _ := cmd.Flags().GetString("config")
			termPath, _ := cmd.Flags().GetString("terms")
			fixedPath, _ := cmd.Flags().GetString("fixed")

			if output == "" {
				ext := filepath.Ext(input)
				output = strings.TrimSuffix(input, ext) + "_bilingual" + ext
			}
			return runTranslate(cmd.Context(), input, output, configPath, termPath, fixedPath)
		},
	}

	cmd.Flags().StringP("output", "o", "", "output path (default: <input>_bilingual.docx)")
	cmd.Flags().String("config", "", "config file path")
	cmd.Flags().String("terms", "", "term dictionary JSON (overrides config)")
	cmd.Flags().String("fixed", "", "fixed translations JSON (overrides config)")
	return cmd
}

func runTranslate(ctx context.Context, input, output, configPath, termPath, fixedPath string) error {
	if _, err := os.Stat(input); err != nil {
		return types.NewAppError(types.ErrFileNotFound, fmt.Sprintf("input file not found: %s", input), err)
	}

	manager, err := config.NewConfigManager(configPath)
	if err != nil {
		return err
	}
	if err := manager.Load(); err != nil {
		return err
	}
	cfg := manager.GetConfig()

	logger.Info("translating document",
		logger.String("input", input), logger.String("output", output))

	doc, err := docx.Open(input)
	if err != nil {
		return err
	}

	backend, err := translator.NewOpenAIBackend(ctx, manager.GetAPIKey(), manager.GetBaseURL(), manager.GetModel())
	if err != nil {
		return err
	}
	engine := translator.NewEngine(backend)

	state := bilingual.NewDocumentState()
	if termPath == "" {
		termPath = cfg.TermDictionaryPath
	}
	if fixedPath == "" {
		fixedPath = cfg.FixedTranslationPath
	}
	state.LoadDictionaries(termPath, fixedPath)
	engine.SetDictionary(state.Dictionary)
	engine.SetFixedTranslations(state.Fixed)

	bilingual.NewOrchestrator(state, engine, cfg).Run(ctx, doc)

	if err := doc.Save(output); err != nil {
		return err
	}

	result := state.Result
	result.InputPath = input
	result.OutputPath = output
	result.BackendCalls = engine.BackendCalls()
	result.BackendFailures = engine.BackendFailures()
	logger.Info("translation complete",
		logger.String("output", output),
		logger.Int("merged", result.ParagraphsMerged),
		logger.Int("inserted", result.ParagraphsInserted),
		logger.Int("flowcharts", result.FlowchartsCloned),
		logger.Int("backendCalls", result.BackendCalls),
		logger.Int("backendFailures", result.BackendFailures))

	fmt.Printf("Saved %s\n", output)
	fmt.Printf("  merged groups:      %d\n", result.ParagraphsMerged)
	fmt.Printf("  inserted paragraphs: %d\n", result.ParagraphsInserted)
	fmt.Printf("  flowcharts cloned:  %d\n", result.FlowchartsCloned)
	if result.BackendFailures > 0 {
		fmt.Printf("  untranslated units: %d (original text kept)\n", result.BackendFailures)
	}
	return nil
}

func extractTermsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract-terms <glossary.pdf>",
		Short: "Build a term dictionary from a bilingual glossary PDF",
		Long: `Extract English/Chinese term pairs from a glossary PDF and write them
as a term dictionary usable by the translate command.

Example:
  docx-translator extract-terms ipc_glossary.pdf -o pcb_terms.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")

			dictionary, err := terms.Extract(args[0])
			if err != nil {
				return err
			}
			if err := terms.SaveDictionary(dictionary, output); err != nil {
				return err
			}
			fmt.Printf("Extracted %d terms to %s\n", dictionary.Len(), output)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "terms.json", "output dictionary path")
	return cmd
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the translation backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			manager, err := config.NewConfigManager(configPath)
			if err != nil {
				return err
			}
			if err := manager.Load(); err != nil {
				return err
			}

			backend, err := translator.NewOpenAIBackend(cmd.Context(),
				manager.GetAPIKey(), manager.GetBaseURL(), manager.GetModel())
			if err != nil {
				return err
			}
			if err := translator.NewEngine(backend).CheckConnection(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("Backend reachable, model %s responds\n", manager.GetModel())
			return nil
		},
	}

	cmd.Flags().String("config", "", "config file path")
	return cmd
}
