// Command multichat is an interactive terminal chat that sends every message
// to several LLM backends at once and renders their answers side by side,
// together with a latency/token comparison table.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/leofalp/multichat/config"
	"github.com/leofalp/multichat/core/aggregate"
	"github.com/leofalp/multichat/core/dispatch"
	"github.com/leofalp/multichat/core/session"
	"github.com/leofalp/multichat/providers/ai"
	"github.com/leofalp/multichat/providers/ai/gemini"
	"github.com/leofalp/multichat/providers/ai/groq"
	"github.com/leofalp/multichat/providers/ai/openai"
	"github.com/leofalp/multichat/providers/observability"
	"github.com/leofalp/multichat/providers/observability/slogobs"
)

func main() {
	var (
		providersFlag = flag.String("providers", "", "comma-separated provider subset (default: all of openai,groq,gemini)")
		envFile       = flag.String("env", "", "path to a .env file (default ./.env)")
		timeout       = flag.Duration("timeout", config.DefaultTimeout, "per-provider call timeout")
		temperature   = flag.Float64("temperature", config.DefaultTemperature, "sampling temperature in [0,2]")
		maxTokens     = flag.Int("max-tokens", config.DefaultMaxOutputTokens, "max output tokens per response")
		logLevel      = flag.String("log-level", "", "log level: trace, debug, info, warn, error (default from MULTICHAT_LOG_LEVEL)")
	)
	flag.Parse()

	if err := config.LoadEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load env file: %v\n", err)
		os.Exit(1)
	}

	level := slogobs.GetLogLevelFromEnv()
	if *logLevel != "" {
		level = slogobs.ParseLogLevel(*logLevel)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	observer := slogobs.New(logger)
	ctx := observability.ContextWithObserver(context.Background(), observer)

	selection := config.DefaultSelection()
	if *providersFlag != "" {
		selection = splitList(*providersFlag)
	}

	adapterConfigs := config.Defaults()
	for id, cfg := range adapterConfigs {
		cfg.Timeout = *timeout
		cfg.Temperature = temperature
		cfg.MaxOutputTokens = *maxTokens
		adapterConfigs[id] = cfg
	}

	registry, err := buildRegistry(selection, adapterConfigs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	chat := session.New(registry)

	fmt.Println(renderBanner(selection, adapterConfigs))
	fmt.Println(renderHelp())

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print(promptStyle.Render("you> "))
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch input {
		case "/quit", "/exit":
			return
		case "/reset":
			chat.Reset()
			fmt.Println(dimStyle.Render("conversation cleared"))
			continue
		case "/keys":
			fmt.Println(renderKeys(config.CheckKeys(selection, adapterConfigs)))
			continue
		case "/history":
			fmt.Println(renderHistory(chat.History().Recent(6), chat.History().Len()))
			continue
		case "/help":
			fmt.Println(renderHelp())
			continue
		}

		results, err := chat.Send(ctx, input, selection)
		if err != nil {
			// Only a selection/registry mismatch lands here; it is a bug,
			// not a provider failure.
			fmt.Fprintf(os.Stderr, "dispatch failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(renderResults(aggregate.Display(results), aggregate.Summarize(results), adapterConfigs))
	}
}

// buildRegistry constructs one adapter per selected provider. Unknown
// provider ids are rejected up front; missing credentials are not an error
// here, the adapter will report itself unavailable per dispatch.
func buildRegistry(selection []string, adapterConfigs map[string]config.Adapter) (*dispatch.Registry, error) {
	registry := dispatch.NewRegistry()
	for _, id := range selection {
		cfg, ok := adapterConfigs[id]
		if !ok {
			return nil, fmt.Errorf("unknown provider %q (known: %s)", id, strings.Join(config.DefaultSelection(), ", "))
		}

		var provider ai.Provider
		switch id {
		case "openai":
			provider = openai.New()
		case "groq":
			provider = groq.New()
		case "gemini":
			provider = gemini.New()
		default:
			return nil, fmt.Errorf("unknown provider %q (known: %s)", id, strings.Join(config.DefaultSelection(), ", "))
		}

		registry.Register(dispatch.NewProviderAdapter(id, provider, cfg))
	}
	return registry, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
