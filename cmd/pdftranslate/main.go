package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/pdftranslate/internal"
	"codeberg.org/snonux/pdftranslate/internal/cli"
	"codeberg.org/snonux/pdftranslate/internal/logging"
	"codeberg.org/snonux/pdftranslate/internal/models"
	"codeberg.org/snonux/pdftranslate/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd.Context(), args, flags)
	}

	// Ctrl-C cancels the step in flight
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, args []string, flags *cli.Flags) error {
	cli.ApplyConfig(flags)

	log := logging.New(logging.Config{
		Level:  flags.LogLevel,
		Format: flags.LogFormat,
	})

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(processor.TranslationConfig(flags), os.Stdout)
		return lister.ListAvailableModels(ctx)
	}

	// Create processor
	proc, err := processor.NewProcessor(ctx, flags, log)
	if err != nil {
		return err
	}

	// Handle batch processing
	if flags.BatchFile != "" {
		results, err := proc.ProcessBatch(ctx)
		if err != nil {
			return err
		}
		for _, result := range results {
			fmt.Printf("Translation saved to %s (%d paragraphs)\n", result.Output, result.Paragraphs)
		}
		return nil
	}

	source := internal.DefaultSourceURL
	if len(args) > 0 {
		source = args[0]
	}

	result, err := proc.ProcessSource(ctx, source, flags.Output)
	if err != nil {
		return err
	}

	fmt.Printf("Translation saved to %s (%d paragraphs in %s)\n",
		result.Output, result.Paragraphs, result.Duration.Round(time.Second))
	return nil
}
