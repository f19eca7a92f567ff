package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/Conceptual-Machines/verse-api/internal/config"
	"github.com/Conceptual-Machines/verse-api/internal/llm"
	"github.com/Conceptual-Machines/verse-api/internal/models"
	"github.com/Conceptual-Machines/verse-api/internal/prompt"
	"github.com/Conceptual-Machines/verse-api/internal/services"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is set via ldflags during build
var version = "dev"

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(config.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	var sel models.Selection
	var language string

	rootCmd := &cobra.Command{
		Use:          "verse-cli",
		Version:      version,
		Short:        "Medieval verse generator",
		Long:         "Build medieval poem prompts and generate poems from the command line",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&sel.Character, "character", "c", "", "Character code (hero, noble, commoner)")
	rootCmd.PersistentFlags().StringVarP(&sel.Location, "location", "l", "", "Location code (castle, forest, village)")
	rootCmd.PersistentFlags().StringVarP(&sel.Event, "event", "e", "", "Event code (battle, love, treachery)")
	rootCmd.PersistentFlags().StringVarP(&sel.Emotion, "emotion", "m", "", "Emotion code (joy, sorrow, rage)")
	rootCmd.PersistentFlags().StringVarP(&sel.CustomEmotion, "custom-emotion", "C", "", "Free-text emotion, overrides --emotion")
	rootCmd.PersistentFlags().StringVarP(&language, "language", "L", string(models.LanguageEnglish), "Poem language (english, chinese)")

	selection := func() models.Selection {
		s := sel
		s.Language = models.Language(language)
		return s
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a titled poem using the configured upstream",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runGenerate(ctx, cfg, selection(), cmd.OutOrStdout())
		},
	}
	generateCmd.Flags().StringVar(&cfg.UpstreamBaseURL, "url", cfg.UpstreamBaseURL, "Upstream base URL")
	generateCmd.Flags().StringVar(&cfg.PrimaryTransport, "transport", cfg.PrimaryTransport, "Primary transport (payload, openai)")
	generateCmd.Flags().DurationVar(&cfg.UpstreamTimeout, "timeout", cfg.UpstreamTimeout, "Timeout per transport attempt")

	promptCmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the poem and title prompts without calling the upstream",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPrompt(selection(), cmd.OutOrStdout())
		},
	}

	optionsCmd := &cobra.Command{
		Use:   "options",
		Short: "List the selectable codes",
		Run: func(cmd *cobra.Command, _ []string) {
			printOptions(cmd.OutOrStdout())
		},
	}

	rootCmd.AddCommand(generateCmd, promptCmd, optionsCmd)
	return rootCmd
}

func runGenerate(ctx context.Context, cfg *config.Config, sel models.Selection, out io.Writer) error {
	builder, err := prompt.NewPromptBuilder()
	if err != nil {
		return err
	}
	client, err := llm.NewClientFromConfig(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := services.NewVerseService(builder, client, nil, nil).Generate(ctx, sel)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s\n\n%s\n\n(%s)\n", result.Title, result.Poem, time.Since(start).Round(time.Millisecond))
	return nil
}

func runPrompt(sel models.Selection, out io.Writer) error {
	if err := sel.Validate(); err != nil {
		return err
	}

	builder, err := prompt.NewPromptBuilder()
	if err != nil {
		return err
	}

	poemPrompt, err := builder.BuildPoemPrompt(sel)
	if err != nil {
		return err
	}
	titlePrompt, err := builder.BuildTitlePrompt(sel, builder.ResolveEmotion(sel))
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "# poem\n%s\n\n# title\n%s\n", poemPrompt, titlePrompt)
	return nil
}

func printOptions(out io.Writer) {
	catalogue := prompt.Options()
	groups := []struct {
		name    string
		options []prompt.Option
	}{
		{"characters", catalogue.Characters},
		{"locations", catalogue.Locations},
		{"events", catalogue.Events},
		{"emotions", catalogue.Emotions},
		{"languages", catalogue.Languages},
	}
	for _, group := range groups {
		fmt.Fprintf(out, "%s:\n", group.name)
		for _, o := range group.options {
			fmt.Fprintf(out, "  %-10s %s\n", o.Code, o.Label)
		}
	}
}
