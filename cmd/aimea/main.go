package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"aimea/cmd/aimea/tui"
	"aimea/internal/backend"
	"aimea/internal/config"
	"aimea/internal/logging"
)

var (
	// Global flags
	serverURL  string
	configPath string
	verbose    bool

	// Logger for non-interactive commands
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "aimea",
	Short: "aimea - live-transcript companion",
	Long: `aimea follows a live speech transcript and acts on what it hears.

It polls a transcription backend for new spoken lines, classifies each line
for intent, and walks you through confirming the actions it detects:
scheduling calendar events and sending messages. Nothing is ever sent or
scheduled without an explicit confirmation.

Run without arguments to start the interactive companion.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for interactive mode (it has its own UI)
		if cmd.Use == "aimea" && cmd.CalledAs() == "aimea" {
			return nil
		}

		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// devicesCmd lists capture devices without starting the UI
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the backend's audio capture devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg := mustClient()
		ctx, cancel := callCtx(cfg)
		defer cancel()

		devices, err := client.ListDevices(ctx)
		if err != nil {
			return err
		}
		for _, d := range devices {
			fmt.Println(d.Name)
		}
		return nil
	},
}

// contactsCmd prints the contact catalog
var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List the contacts available for messaging",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg := mustClient()
		ctx, cancel := callCtx(cfg)
		defer cancel()

		contacts, err := client.ListContacts(ctx)
		if err != nil {
			return err
		}
		for _, c := range contacts {
			fmt.Println(c)
		}
		return nil
	},
}

// summaryCmd fetches a one-shot conversation summary
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print a summary of the conversation so far",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg := mustClient()
		ctx, cancel := callCtx(cfg)
		defer cancel()

		text, err := client.FetchSummary(ctx)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

// classifyCmd classifies a line of text, for poking at the backend
var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Classify a line of text for intent",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg := mustClient()
		ctx, cancel := callCtx(cfg)
		defer cancel()

		text := strings.Join(args, " ")
		logger.Debug("classifying", zap.String("text", text))
		result, err := client.Classify(ctx, text)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

// statusCmd probes every backend endpoint the companion depends on
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check connectivity to the transcription backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg := mustClient()
		ctx, cancel := callCtx(cfg)
		defer cancel()

		g, ctx := errgroup.WithContext(ctx)
		probes := []struct {
			name string
			call func(context.Context) error
		}{
			{"devices", func(ctx context.Context) error {
				_, err := client.ListDevices(ctx)
				return err
			}},
			{"languages", func(ctx context.Context) error {
				_, err := client.ListLanguages(ctx)
				return err
			}},
			{"buffer", func(ctx context.Context) error {
				_, err := client.FetchBuffer(ctx)
				return err
			}},
			{"contacts", func(ctx context.Context) error {
				_, err := client.ListContacts(ctx)
				return err
			}},
		}

		results := make([]error, len(probes))
		start := time.Now()
		for i, p := range probes {
			i, p := i, p
			g.Go(func() error {
				results[i] = p.call(ctx)
				return nil
			})
		}
		_ = g.Wait()

		ok := true
		for i, p := range probes {
			if results[i] != nil {
				ok = false
				fmt.Printf("  %-10s FAIL  %v\n", p.name, results[i])
			} else {
				fmt.Printf("  %-10s ok\n", p.name)
			}
		}
		logger.Debug("status probe finished", zap.Duration("elapsed", time.Since(start)))
		if !ok {
			return fmt.Errorf("backend at %s is not fully reachable", cfg.ServerURL)
		}
		fmt.Printf("backend at %s is reachable\n", cfg.ServerURL)
		return nil
	},
}

func runInteractive() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := logging.Initialize(config.StateDir(), cfg.Logging.Debug || verbose); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	defer logging.CloseAll()

	client := backend.New(cfg.ServerURL, cfg.RequestTimeoutFor())

	watcher, err := config.Watch(resolvedConfigPath())
	if err != nil {
		logging.Boot("config watcher unavailable: %v", err)
		watcher = nil
	}
	if watcher != nil {
		defer watcher.Close()
	}

	return tui.Run(client, cfg, watcher)
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(resolvedConfigPath())
	if err != nil {
		return config.Config{}, err
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	return cfg, nil
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

// mustClient builds a backend client for one-shot subcommands, exiting on a
// config error.
func mustClient() (*backend.Client, config.Config) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return backend.New(cfg.ServerURL, cfg.RequestTimeoutFor()), cfg
}

func callCtx(cfg config.Config) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cfg.RequestTimeoutFor())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "transcription backend URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(contactsCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
