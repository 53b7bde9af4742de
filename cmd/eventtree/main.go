package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/casualjim/eventtree"
	"github.com/casualjim/eventtree/broker"
	"github.com/casualjim/eventtree/internal/msgfmt"
	"github.com/casualjim/eventtree/internal/repl"
	"github.com/casualjim/eventtree/node"
	"github.com/casualjim/eventtree/pkg/natsx"
	"github.com/casualjim/eventtree/pkg/slogx"
	"github.com/casualjim/eventtree/types"
	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	_ "github.com/joho/godotenv/autoload"
	"github.com/k0kubun/pp/v3"
	"github.com/phsym/zeroslog"
	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Stamp}
	log = zerolog.New(output).With().Timestamp().Logger()
	slog.SetDefault(slog.New(
		zeroslog.NewHandler(log, &zeroslog.HandlerOptions{Level: slog.LevelInfo}),
	))
}

type config struct {
	prefix      string
	forward     string
	publish     string
	context     string
	interactive bool
	dump        bool
	verbose     bool
}

// conn is the part of *nats.Conn the command uses.
type conn interface {
	broker.Publisher
	broker.Subscriber
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseFlags(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("eventtree", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.prefix, "prefix", envOr("EVENTTREE_PREFIX", "events"), "subject prefix to listen on (env EVENTTREE_PREFIX)")
	fs.StringVar(&cfg.forward, "forward", os.Getenv("EVENTTREE_FORWARD"), "republish every event below this prefix (env EVENTTREE_FORWARD)")
	fs.StringVar(&cfg.publish, "publish", "", "publish a single event for this path and exit")
	fs.StringVar(&cfg.context, "context", "", "JSON object sent as the context of -publish")
	fs.BoolVar(&cfg.interactive, "repl", false, "run an interactive shell on a local tree instead of listening")
	fs.BoolVar(&cfg.dump, "dump", false, "print the tree on exit")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.prefix == "" {
		return cfg, errors.New("prefix is required")
	}
	for _, p := range []string{cfg.prefix, cfg.forward, cfg.publish} {
		if err := node.ValidatePath(p); err != nil {
			return cfg, err
		}
	}
	if cfg.forward == cfg.prefix {
		return cfg, fmt.Errorf("forwarding to %q would republish every event it receives", cfg.prefix)
	}
	if cfg.context != "" && cfg.publish == "" {
		return cfg, errors.New("-context requires -publish")
	}
	if cfg.publish != "" && cfg.interactive {
		return cfg, errors.New("-publish and -repl are mutually exclusive")
	}
	return cfg, nil
}

// needsNATS reports whether the configuration talks to a server at all.
func (c config) needsNATS() bool {
	return !c.interactive || c.forward != ""
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		slog.Error("invalid arguments", slogx.Error(err))
		os.Exit(2)
	}
	if cfg.verbose {
		slog.SetDefault(slog.New(
			zeroslog.NewHandler(log, &zeroslog.HandlerOptions{Level: slog.LevelDebug}),
		))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var nc conn
	if cfg.needsNATS() {
		client, err := natsx.NewClient()
		if err != nil {
			slog.Error("failed to connect to nats", slogx.Error(err), slog.String("url", natsx.URL()))
			os.Exit(1)
		}
		defer client.Close()
		nc = client
	}

	if err := run(ctx, cfg, nc, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("eventtree failed", slogx.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, nc conn, stdin io.Reader, stdout io.Writer) error {
	if cfg.publish != "" {
		return publish(cfg, nc)
	}

	tree := eventtree.New(eventtree.WithName(cfg.prefix))
	if cfg.dump {
		defer dump(stdout, tree)
	}
	if cfg.forward != "" {
		if _, err := tree.On("", nil, broker.Forward(nc, cfg.forward)); err != nil {
			return err
		}
		slog.Info("forwarding events", slog.String("to", cfg.forward))
	}

	if cfg.interactive {
		session, err := repl.New(tree, stdout)
		if err != nil {
			return err
		}
		return session.Run(ctx, stdin)
	}

	if _, err := tree.On("", nil, msgfmt.Console(stdout, "nats")); err != nil {
		return err
	}
	in, err := broker.NewInbound(nc, cfg.prefix, tree)
	if err != nil {
		return err
	}
	defer in.Close()

	slog.Info("listening", slog.String("subject", broker.Subject(cfg.prefix, ">")))
	return in.Run(ctx)
}

func publish(cfg config, nc conn) error {
	var values types.Values
	if cfg.context != "" {
		var err error
		if values, err = types.ValuesOf(json.RawMessage(cfg.context)); err != nil {
			return fmt.Errorf("invalid context: %w", err)
		}
	}
	data, err := broker.EncodeEvent(node.Event{Path: cfg.publish, Context: values}, time.Now())
	if err != nil {
		return err
	}
	subject := broker.Subject(cfg.prefix, cfg.publish)
	if err := nc.Publish(subject, data); err != nil {
		return err
	}
	slog.Info("published event", slog.String("subject", subject))
	return nil
}

func dump(w io.Writer, tree *eventtree.Tree) {
	printer := pp.New()
	printer.SetOutput(w)
	printer.SetColoringEnabled(!color.NoColor)
	printer.Println(tree.Snapshot())
}
