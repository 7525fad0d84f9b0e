package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"golang.org/x/sync/errgroup"
	"log"
	"os"
	"os/signal"
	"projekt/connectivity/cmd/base"
	"projekt/connectivity/lib/connectivity"
	"projekt/connectivity/lib/platform"
	"syscall"
)

func init() {
	log.SetFlags(log.Ltime)
}

func main() {
	configPath := flag.String("config", "", "path to a yaml configuration file")
	check := flag.Bool("check", false, "print the current connectivity and exit")
	flag.Parse()

	cfg, err := base.Load(*configPath)
	if err != nil {
		log.Fatalln("failed to load configuration:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pctx, closePlatform, err := base.Open(ctx, cfg)
	if err != nil {
		log.Fatalln("failed to open platform:", err)
	}
	defer closePlatform()

	if *check {
		if err := printCheck(pctx); err != nil {
			log.Fatalln("check failed:", err)
		}
		return
	}

	if err := watch(ctx, pctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalln(err)
	}
}

func printCheck(ctx platform.Context) error {
	predicates := []struct {
		name string
		f    func(platform.Context) (bool, error)
	}{
		{"connected", connectivity.IsConnected},
		{"wifi", connectivity.IsWifi},
		{"mobile", connectivity.IsMobile},
		{"ethernet", connectivity.IsEthernet},
		{"bluetooth", connectivity.IsBluetooth},
	}
	for _, p := range predicates {
		value, err := p.f(ctx)
		if err != nil {
			return fmt.Errorf("%v: %w", p.name, err)
		}
		fmt.Printf("%-10v %v\n", p.name, value)
	}
	m, err := ctx.Service()
	if err != nil {
		return err
	}
	typ, err := connectivity.CurrentType(m)
	if err != nil {
		return err
	}
	fmt.Printf("%-10v %v\n", "type", typ)
	fmt.Printf("%-10v %v\n", "level", m.Level())
	return nil
}

func watch(ctx context.Context, pctx platform.Context) error {
	errs := make(chan error, 1)
	observer, err := connectivity.NewObserver(pctx,
		connectivity.HandlerFunc(func(state connectivity.NetworkState, typ connectivity.NetworkType) {
			log.Printf("%v %v\n", state, typ)
		}),
		connectivity.WithErrorHandler(func(err error) {
			select {
			case errs <- err:
			default:
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create observer: %w", err)
	}
	if err := observer.Start(); err != nil {
		return fmt.Errorf("failed to start observing: %w", err)
	}
	log.Println("observing via", observer.Mechanism())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case err := <-errs:
				log.Println("failed to query network type:", err)
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Println("stopping...")
		return observer.Stop()
	})
	return g.Wait()
}
