package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/nikmy/userstore/internal/kv"
	"github.com/nikmy/userstore/internal/users"
	"github.com/nikmy/userstore/pkg/errors"
	"github.com/nikmy/userstore/pkg/logger"
)

const usage = `usage: userstore [-config file] [-env dev|prod] <command> [args]

commands:
  add -name NAME -dob YYYY-MM-DD -email EMAIL -phone "(NNN) NNN-NNNN"
  list
  get ID
  remove ID
`

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	env := flag.String("env", "", "environment (dev, prod)")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	cfg, err := loadConfig(*configPath, *env)
	if err != nil {
		stdlog.Fatal(err)
	}

	log, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		stdlog.Fatal(errors.WrapFail(err, "init logger"))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = run(ctx, log, cfg, flag.Args(), os.Stdout)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log logger.Logger, cfg *Config, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("no command given\n" + usage)
	}

	backend, err := kv.New(ctx, cfg.Storage, log)
	if err != nil {
		return errors.WrapFail(err, "open storage")
	}
	defer func() {
		log.Warn(backend.Close(ctx))
	}()

	api, err := users.New(ctx, log, backend, cfg.UsersKey)
	if err != nil {
		return errors.WrapFail(err, "init users")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "add":
		return runAdd(ctx, api, rest, out)
	case "list":
		return printJSON(out, api.List())
	case "get":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		user, err := api.Get(id)
		if err != nil {
			return err
		}
		return printJSON(out, user)
	case "remove":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		return api.Remove(ctx, id)
	default:
		return errors.Errorf("unknown command %q", cmd)
	}
}

func runAdd(ctx context.Context, api users.API, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var draft users.Draft
	fs.StringVar(&draft.Name, "name", "", "user name")
	fs.StringVar(&draft.DateOfBirth, "dob", "", "date of birth")
	fs.StringVar(&draft.Email, "email", "", "email address")
	fs.StringVar(&draft.PhoneNumber, "phone", "", "phone number")

	err := fs.Parse(args)
	if err != nil {
		return errors.WrapFail(err, "parse add arguments")
	}

	id, err := api.Add(ctx, draft)
	if err != nil {
		return err
	}
	return printJSON(out, map[string]int64{"id": id})
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.Errorf("expected exactly one id, got %d arguments", len(args))
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, errors.WrapFailf(err, "parse id %q", args[0])
	}
	return id, nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return errors.WrapFail(enc.Encode(v), "write output")
}
