// Command yasmin is an Arabic-first terminal client for the Yasmin chat
// service.
//
// Usage:
//
//	yasmin [flags]
//
// Flags:
//
//	-url string          Service base URL (default: $YASMIN_URL or http://localhost:5000)
//	-config string       Path to preferences file (default: user config dir)
//	-model string        Model ID override for this run
//	-temperature float   Sampling temperature override for this run
//	-max-tokens int      Max-token budget override for this run
//	-speak               Speak replies aloud for this run
//	-listen-cmd string   Shell command whose stdout is a voice transcript (enables Ctrl+G)
//	-send string         Send one message, print the reply, and exit
//	-list                Print the conversation list and exit
//	-models              Print the model roster and exit
//	-export string       Export a conversation transcript by id and exit
//	-out string          Output path for -export
//	-import string       Open an exported transcript instead of the last conversation
//	-log string          Write debug logs to this file
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/yasmin-chat/yasmin"
	"github.com/yasmin-chat/yasmin/api"
	bt "github.com/yasmin-chat/yasmin/bubbletea"
	yasminjson "github.com/yasmin-chat/yasmin/json"
	"github.com/yasmin-chat/yasmin/offline"
	"github.com/yasmin-chat/yasmin/probe"
	"github.com/yasmin-chat/yasmin/speech"
	yasmintoml "github.com/yasmin-chat/yasmin/toml"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "yasmin: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		urlFlag    = flag.String("url", "", "Service base URL (default: $YASMIN_URL or "+api.DefaultBaseURL+")")
		configPath = flag.String("config", "", "Path to preferences file (default: user config dir)")
		modelFlag  = flag.String("model", "", "Model ID override for this run")
		tempFlag   = flag.Float64("temperature", -1, "Sampling temperature override for this run")
		maxTokFlag = flag.Int("max-tokens", 0, "Max-token budget override for this run")
		speakFlag  = flag.Bool("speak", false, "Speak replies aloud for this run")
		listenCmd  = flag.String("listen-cmd", "", "Shell command whose stdout is a voice transcript (enables Ctrl+G)")
		sendText   = flag.String("send", "", "Send one message, print the reply, and exit")
		listFlag   = flag.Bool("list", false, "Print the conversation list and exit")
		modelsFlag = flag.Bool("models", false, "Print the model roster and exit")
		exportID   = flag.String("export", "", "Export a conversation transcript by id and exit")
		outPath    = flag.String("out", "", "Output path for -export")
		importPath = flag.String("import", "", "Open an exported transcript instead of the last conversation")
		logPath    = flag.String("log", "", "Write debug logs to this file")
	)
	flag.Parse()

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, closeLog, err := newLogger(*logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath, err = yasmintoml.DefaultPath()
		if err != nil {
			return err
		}
	}
	prefs, err := yasmintoml.Load(cfgPath)
	if err != nil {
		return err
	}
	prefs = applyFlags(prefs, *modelFlag, *tempFlag, *maxTokFlag, *speakFlag)

	baseURL := resolveBaseURL(*urlFlag, os.Getenv("YASMIN_URL"))
	client := api.New(baseURL)

	target, err := probe.TargetFromURL(baseURL)
	if err != nil {
		return err
	}
	monitor := probe.New(target, probe.WithLogger(logger))
	go monitor.Run(ctx)

	synth := speech.NewSynthesizer()

	ctl := yasmin.NewController(client, yasmin.NewSessionStore(),
		yasmin.WithPresence(monitor),
		yasmin.WithResponder(offline.NewTable()),
		yasmin.WithSynthesizer(synth),
		yasmin.WithLogger(logger),
		yasmin.WithPrefs(prefs),
	)

	// One-shot scripting modes bypass the TUI.
	switch {
	case *sendText != "":
		return oneShotSend(ctx, ctl, *sendText)
	case *listFlag:
		return oneShotList(ctx, ctl)
	case *modelsFlag:
		return oneShotModels(ctx, ctl)
	case *exportID != "":
		return oneShotExport(ctx, ctl, *exportID, *outPath)
	}

	if *importPath != "" {
		if err := openTranscript(ctl, *importPath); err != nil {
			return err
		}
	} else if id := prefs.LastConversation; id != "" {
		// Best effort: a 404 already falls back to a fresh thread, and
		// an unreachable service should not block startup.
		if _, err := ctl.Load(ctx, id); err != nil {
			logger.Warn("could not resume last conversation", "conversation", id, "error", err)
		}
	}

	var rec yasmin.Recognizer
	if *listenCmd != "" {
		rec = speech.NewRecognizer(*listenCmd)
	}

	m := bt.New(ctl, bt.Config{
		ModelName:  prefs.Model,
		ExportDir:  filepath.Join(filepath.Dir(cfgPath), "exports"),
		Recognizer: rec,
		Presence:   monitor.Events(),
	})
	if err := bt.Run(ctx, m); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	synth.Stop()

	// Toggles flipped inside the TUI and the thread to reopen next time
	// both live in prefs.
	p := ctl.Prefs()
	p.LastConversation = ctl.Store().ActiveID()
	if err := yasmintoml.Save(cfgPath, p); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// resolveBaseURL picks the service URL: flag over environment over the
// local default.
func resolveBaseURL(flagValue, envValue string) string {
	switch {
	case flagValue != "":
		return flagValue
	case envValue != "":
		return envValue
	}
	return api.DefaultBaseURL
}

// applyFlags overlays per-run flag overrides on the persisted
// preferences. Overrides are not written back on exit unless the user
// changes them again inside the TUI.
func applyFlags(p yasmin.Prefs, model string, temperature float64, maxTokens int, speak bool) yasmin.Prefs {
	if model != "" {
		p.Model = model
	}
	if temperature >= 0 {
		p.Temperature = temperature
	}
	if maxTokens > 0 {
		p.MaxTokens = maxTokens
	}
	if speak {
		p.Speech = true
	}
	return p
}

// newLogger opens a debug logger on path, or a discard logger when no
// path was given.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}

// openTranscript loads an exported transcript and makes it the active
// conversation. A transcript with a service id lands in the cache like
// a fetched thread; one without is rebuilt as a fresh unsaved thread.
func openTranscript(ctl *yasmin.Controller, path string) error {
	conv, err := yasminjson.Load(path)
	if err != nil {
		return fmt.Errorf("import transcript: %w", err)
	}
	store := ctl.Store()
	if conv.ID != "" {
		if err := store.Upsert(conv); err != nil {
			return err
		}
		if _, err := store.SetActive(conv.ID); err != nil {
			return err
		}
		return nil
	}
	store.StartNew()
	store.SetActiveTitle(conv.Title)
	for _, msg := range conv.Messages {
		store.AppendActive(msg)
	}
	return nil
}
