package main

import (
	"context"
	"flag"
	tea "github.com/charmbracelet/bubbletea"
	"log"
	"os"
	"os/signal"
	"projekt/connectivity/cmd/base"
	"projekt/connectivity/lib/connectivity"
	"projekt/connectivity/lib/lifecycle"
	"syscall"
)

func init() {
	log.SetFlags(log.Ltime)
}

func main() {
	configPath := flag.String("config", "", "path to a yaml configuration file")
	state := flag.String("state", "", "lifecycle state in which the network is observed")
	flag.Parse()

	cfg, err := base.Load(*configPath)
	if err != nil {
		log.Fatalln("failed to load configuration:", err)
	}
	if *state != "" {
		cfg.Observe.State, err = lifecycle.ParseState(*state)
		if err != nil {
			log.Fatalln(err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pctx, closePlatform, err := base.Open(ctx, cfg)
	if err != nil {
		log.Fatalln("failed to open platform:", err)
	}
	defer closePlatform()

	registry := lifecycle.NewRegistry()
	holder := NewHolder()
	binding, err := connectivity.Bind(pctx, registry, cfg.Observe.State, holder,
		connectivity.WithBindingErrorHandler(holder.OnError))
	if err != nil {
		log.Fatalln("failed to bind observer:", err)
	}
	defer binding.Close()

	model := NewModel(ctx, registry, holder, cfg.Observe.State)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Fatalln(err)
	}
	// the program may exit on a signal without passing through destroy
	_ = registry.MoveTo(lifecycle.Destroyed)
}
