package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	stdnet "net"
	"os"
	"strconv"

	"PageInk/internal/config"
	"PageInk/internal/document"
	"PageInk/internal/engine"
	"PageInk/internal/logging"
	"PageInk/internal/net"
	"PageInk/internal/ui"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to the TOML config file")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn or error (overrides config)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: pageink [-config file] [-log-level level] [document.pdf]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pageink:", err)
		os.Exit(2)
	}
	level := cfg.Log.Level
	if *logLevel != "" {
		level = *logLevel
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logging.ParseLevel(level)})))
	log := logging.Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := engine.New(cfg)
	if path := flag.Arg(0); path != "" {
		if err := openDocument(ctx, e, cfg, path); err != nil {
			fmt.Fprintln(os.Stderr, "pageink:", err)
			os.Exit(1)
		}
	}

	shareAddr := ""
	if cfg.Bridge.Enabled {
		shareAddr = startBridge(ctx, e, cfg.Bridge)
	}

	log.Info("starting PageInk", "config", *configPath, "document", e.Document().URI)
	ui.RunApp(e, cfg.Gesture.ZoomStep, shareAddr)
}

func openDocument(ctx context.Context, e *engine.Engine, cfg config.Config, path string) error {
	info, err := document.Open(path)
	if err != nil {
		return err
	}
	e.Open(info)
	if !cfg.Document.Watch {
		return nil
	}
	go func() {
		if err := document.Watch(ctx, info.URI, e.Refresh); err != nil {
			logging.WithComponent("document").Warn("document watch stopped", "error", err)
		}
	}()
	return nil
}

// startBridge serves tablet input in the background and returns the
// address a tablet should connect to.
func startBridge(ctx context.Context, e *engine.Engine, cfg config.Bridge) string {
	log := logging.WithComponent("bridge")
	bridge := net.NewBridge(e)
	go func() {
		if err := bridge.ListenAndServe(ctx, cfg.Addr); err != nil {
			log.Error("input bridge stopped", "error", err)
		}
	}()

	ip := net.OutgoingIP()
	_, portStr, err := stdnet.SplitHostPort(cfg.Addr)
	if err != nil {
		log.Warn("bad bridge address", "addr", cfg.Addr, "error", err)
		return ""
	}
	share := fmt.Sprintf("ws://%s%s", stdnet.JoinHostPort(ip.String(), portStr), net.InputPath)

	if cfg.Advertise {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			log.Warn("bad bridge port", "port", portStr, "error", err)
			return share
		}
		server, err := net.Advertise(cfg.Name, port, []stdnet.IP{ip})
		if err != nil {
			log.Warn("mDNS advertisement unavailable", "error", err)
			return share
		}
		go func() {
			<-ctx.Done()
			_ = server.Shutdown()
		}()
	}
	log.Info("tablets can connect", "url", share)
	return share
}
