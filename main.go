package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"bookscraper/applog"
	"bookscraper/browse"
	"bookscraper/mirror"
)

const defaultBaseURL = "http://books.toscrape.com/"

type Config struct {
	baseURL   string
	outputDir string
	timeout   time.Duration
	open      bool
	verbose   bool
}

// loadConfig layers defaults, bookscraper.yaml, BOOKSCRAPER_* env vars and flags
func loadConfig(args []string) (Config, error) {
	flags := pflag.NewFlagSet("bookscraper", pflag.ContinueOnError)
	flags.StringP("base-url", "u", defaultBaseURL, "home page of the book site")
	flags.StringP("output", "o", "ScrapedPages", "folder to save pages into")
	flags.DurationP("timeout", "t", 0, "HTTP timeout per request (0 uses transport defaults)")
	flags.Bool("open", false, "open the chosen book in the system browser")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigName("bookscraper")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("BOOKSCRAPER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return Config{}, err
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	outputDir, err := homedir.Expand(v.GetString("output"))
	if err != nil {
		return Config{}, err
	}

	return Config{
		baseURL:   v.GetString("base-url"),
		outputDir: outputDir,
		timeout:   v.GetDuration("timeout"),
		open:      v.GetBool("open"),
		verbose:   v.GetBool("verbose"),
	}, nil
}

func run(ctx context.Context, config Config, log *applog.Loggers) error {
	if err := os.MkdirAll(config.outputDir, 0755); err != nil {
		return err
	}

	cfg := &browse.Config{
		BaseURL: config.baseURL,
		Root:    config.outputDir,
		Fetcher: mirror.NewHTTPFetcher(config.timeout),
		In:      os.Stdin,
		Out:     os.Stdout,
		Log:     log,
	}
	if config.open {
		cfg.Open = browse.OpenBrowser
	}
	return browse.New(cfg).Run(ctx)
}

// report prints a top-level error the way the user should see it
func report(log *applog.Loggers, err error) {
	var netErr *mirror.NetworkError
	var statusErr *mirror.StatusError
	switch {
	case errors.As(err, &netErr), errors.As(err, &statusErr):
		log.Error.Printf("An error occurred while fetching data from the website: %v", err)
	case errors.Is(err, browse.ErrInvalidSelection):
		log.Error.Printf("Invalid %v", err)
	default:
		log.Error.Printf("An error occurred: %v", err)
	}
}

func main() {
	config, err := loadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := applog.New(os.Stdout, os.Stderr, config.verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, config, log)
	stop()
	if err != nil {
		report(log, err)
		os.Exit(1)
	}
}
