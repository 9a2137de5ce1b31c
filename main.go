package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/nstehr/elerium/elerium-core/agent"
	"github.com/nstehr/elerium/elerium-core/config"
	"github.com/nstehr/elerium/elerium-core/ipc"
	"github.com/nstehr/elerium/elerium-core/reportdb"
	"github.com/nstehr/elerium/elerium-core/rules"
	"github.com/nstehr/elerium/elerium-core/tuning"
)

const banner = `
███████╗██╗     ███████╗██████╗ ██╗██╗   ██╗███╗   ███╗
██╔════╝██║     ██╔════╝██╔══██╗██║██║   ██║████╗ ████║
█████╗  ██║     █████╗  ██████╔╝██║██║   ██║██╔████╔██║
██╔══╝  ██║     ██╔══╝  ██╔══██╗██║██║   ██║██║╚██╔╝██║
███████╗███████╗███████╗██║  ██║██║╚██████╔╝██║ ╚═╝ ██║
╚══════╝╚══════╝╚══════╝╚═╝  ╚═╝╚═╝ ╚═════╝ ╚═╝     ╚═╝

Rule-Driven Drone Pilot`

func main() {
	configPath := flag.String("config", "", "path to config file (yaml)")
	socketFlag := flag.String("socket", "", "unix socket path (overrides config)")
	tuningFlag := flag.String("tuning", "", "policy tuning file (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *socketFlag != "" {
		cfg.Socket = *socketFlag
	}
	if *tuningFlag != "" {
		cfg.Tuning = *tuningFlag
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)
	slog.Info("starting elerium", "socket", cfg.Socket, "tuning", cfg.Tuning, "seed", cfg.Seed)

	t, err := loadTuning(cfg.Tuning)
	if err != nil {
		slog.Error("failed to load tuning", "path", cfg.Tuning, "error", err)
		os.Exit(1)
	}
	engine, err := rules.NewEngine(t)
	if err != nil {
		slog.Error("failed to compile policy", "error", err)
		os.Exit(1)
	}

	reporters := []agent.Reporter{agent.SlogReporter{}}
	if cfg.Reports.Enabled {
		store, err := reportdb.OpenSQLite(cfg.Reports.Path)
		if err != nil {
			slog.Error("failed to open report archive", "path", cfg.Reports.Path, "error", err)
			os.Exit(1)
		}
		defer store.Close()
		reporters = append(reporters, store)
		slog.Info("archiving reports", "path", cfg.Reports.Path)
	}

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(cfg.Socket); err != nil {
		slog.Error("failed to clean up socket", "path", cfg.Socket, "error", err)
		os.Exit(1)
	}

	listener, err := net.Listen("unix", cfg.Socket)
	if err != nil {
		slog.Error("failed to listen on socket", "path", cfg.Socket, "error", err)
		os.Exit(1)
	}
	defer listener.Close()
	defer os.Remove(cfg.Socket)

	slog.Info("listening on domain socket", "path", cfg.Socket)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go reloadOnHangup(ctx, engine, cfg.Tuning)

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
					slog.Error("failed to accept connection", "error", err)
					continue
				}
			}
			slog.Info("new connection accepted")
			go handleConn(conn, engine, cfg.Seed, reporters)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
}

func loadTuning(path string) (tuning.Tuning, error) {
	if path == "" {
		return tuning.Default(), nil
	}
	return tuning.Load(path)
}

// reloadOnHangup re-reads the tuning file on SIGHUP and swaps the rule set.
// Drones mid-match pick up the new numbers on their next callback.
func reloadOnHangup(ctx context.Context, engine *rules.Engine, path string) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			t, err := loadTuning(path)
			if err != nil {
				slog.Error("tuning reload failed", "path", path, "error", err)
				continue
			}
			if err := engine.Swap(t); err != nil {
				slog.Error("rule swap failed, keeping current rules", "error", err)
			}
		}
	}
}

func handleConn(conn net.Conn, engine *rules.Engine, seed int64, reporters []agent.Reporter) {
	c := ipc.NewConnection(conn, nil)
	a := agent.New(c, engine, seed, reporters...)
	c.RegisterHandler(ipc.TypeHello, a.HandleHello)
	c.RegisterHandler(ipc.TypeEvent, a.HandleEvent)
	c.ReadLoop()
}
