package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"synprobe/internal/config"
	"synprobe/internal/forge"
	"synprobe/internal/gitx"
	"synprobe/internal/httpx"
	"synprobe/internal/progress"
	"synprobe/internal/report"
	"synprobe/internal/scenario"
)

const (
	ExitSuccess     = 0
	ExitStepsFailed = 1
	ExitError       = 2
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	apiURL := flag.String("api-url", "", "control-plane base URL (overrides config and API_URL)")
	giteaURL := flag.String("gitea-url", "", "git host base URL (overrides config and GITEA_URL)")
	output := flag.String("output", "text", "summary format: text, json")
	quiet := flag.Bool("quiet", false, "suppress step narration")
	verbose := flag.Bool("verbose", false, "enable debug output (request/response logging)")
	scratch := flag.String("scratch", "", "scratch directory root (default: system temp dir)")
	flag.Parse()

	if *output != "text" && *output != "json" {
		fmt.Fprintf(os.Stderr, "error: --output must be 'text' or 'json', got %q\n", *output)
		os.Exit(ExitError)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(ExitError)
		}
		cfg = *loaded
	}
	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}
	if *giteaURL != "" {
		cfg.GiteaURL = *giteaURL
	}
	if *scratch != "" {
		cfg.ScratchRoot = *scratch
	}

	client := httpx.NewClient(cfg.HTTPTimeout)
	if cfg.RPS > 0 {
		client.SetRate(cfg.RPS)
	}
	if *verbose {
		client.SetDebug(httpx.NewDebugLogger(os.Stderr))
	}

	runCtx, err := scenario.NewContext(cfg.ScratchRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(ExitError)
	}
	defer runCtx.Cleanup()

	log := progress.New(os.Stdout, *quiet)
	log.Printf("%s", "")
	log.Printf("SynStack End-to-End Probe")
	log.Printf("API URL: %s", cfg.APIURL)
	log.Printf("Gitea URL: %s", cfg.GiteaURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	runner := scenario.NewRunner(&scenario.Env{
		Ctx:   runCtx,
		Forge: forge.NewClient(cfg.APIURL, client),
		Gitea: forge.NewGiteaClient(cfg.GiteaURL, client),
		Git:   &gitx.Runner{},
		Cfg:   &cfg,
		Log:   log,
	})
	ledger := runner.Run(ctx)

	summary := report.Summary{Results: ledger}
	if *output == "json" {
		if err := summary.WriteJSON(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(ExitError)
		}
	} else {
		summary.WriteText(os.Stdout)
	}

	os.Exit(summary.ExitCode())
}
