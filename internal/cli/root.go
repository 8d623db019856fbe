// Package cli implements the shop command line client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"storefront_backend/internal/adapters"
	"storefront_backend/internal/cart/repository"
	cartsvc "storefront_backend/internal/cart/service"
	"storefront_backend/internal/catalog/client"
	catsvc "storefront_backend/internal/catalog/service"
	"storefront_backend/platform/apperr"
	"storefront_backend/platform/config"
	"storefront_backend/platform/db"
	"storefront_backend/platform/logger"
	"storefront_backend/platform/validator"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format     string // "text" | "json" | "yaml"
	Session    string
	CatalogURL string
	StateDir   string
	RedisURL   string
	Timeout    time.Duration
	Verbose    bool

	cfg *config.Config
	val *validator.Validator
	log *logger.Logger
	out io.Writer
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the shop CLI.
func NewRootCommand() *cobra.Command {
	cmd, _ := newRootCommand()
	return cmd
}

func newRootCommand() (*cobra.Command, *RootOptions) {
	opts := &RootOptions{val: validator.New()}

	cmd := &cobra.Command{
		Use:           "shop",
		Short:         "Browse the catalog and manage a cart from the terminal",
		Long:          "shop queries the remote product catalog and keeps a persisted cart per named session.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.prepare(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.Session, "session", "default", "cart session name")
	cmd.PersistentFlags().StringVar(&opts.CatalogURL, "catalog-url", "", "catalog API base URL (default $CATALOG_BASE_URL)")
	cmd.PersistentFlags().StringVar(&opts.StateDir, "state-dir", "", "directory for cart files (default user config dir)")
	cmd.PersistentFlags().StringVar(&opts.RedisURL, "redis-url", "", "store carts in redis instead of files (default $REDIS_URL)")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 0, "catalog request timeout (default $CATALOG_TIMEOUT)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log diagnostics to stderr")

	cmd.AddCommand(NewCategoriesCommand(opts))
	cmd.AddCommand(NewProductsCommand(opts))
	cmd.AddCommand(NewCartCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewIncrementCommand(opts))
	cmd.AddCommand(NewDecrementCommand(opts))
	cmd.AddCommand(NewClearCommand(opts))
	cmd.AddCommand(NewCheckoutCommand(opts))

	return cmd, opts
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd, opts := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	code := ExitCommandError
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
	}

	printer := &Printer{Format: opts.Format, Writer: stdout}
	if !isValidFormat(opts.Format) || opts.Format == "text" {
		printer = &Printer{Format: "text", Writer: stderr}
	}
	_ = printer.Failure(err)
	return code
}

func (o *RootOptions) prepare(cmd *cobra.Command) error {
	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}
	if err := o.val.Var(o.Session, "notblank,max=64"); err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid session name %q", o.Session))
	}

	cfg, err := config.Load()
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	if o.CatalogURL != "" {
		cfg.CatalogBaseURL = o.CatalogURL
	}
	if o.Timeout > 0 {
		cfg.CatalogTimeout = o.Timeout
	}
	if o.RedisURL != "" {
		cfg.RedisURL = o.RedisURL
	}
	if o.StateDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return WrapExitError(ExitCommandError, "resolve state dir", err)
		}
		o.StateDir = filepath.Join(base, "storefront")
	}

	env := "production"
	logOut := io.Discard
	if o.Verbose {
		env = "development"
		logOut = cmd.ErrOrStderr()
	}
	o.cfg = cfg
	o.log = logger.NewWithWriter(env, logOut)
	o.out = cmd.OutOrStdout()
	return nil
}

func (o *RootOptions) printer() *Printer {
	return &Printer{Format: o.Format, Writer: o.out}
}

func (o *RootOptions) catalog() *catsvc.Service {
	return catsvc.New(client.New(o.cfg, o.val, o.log), o.log)
}

// openStore loads the cart of the selected session. The returned func releases the backend.
func (o *RootOptions) openStore(ctx context.Context) (*cartsvc.Store, func(), error) {
	var kv repository.KV = repository.NewFileKV(o.StateDir)
	closeFn := func() {}

	if o.cfg.IsRedisEnabled() {
		rdb, err := db.NewRedisClient(ctx, o.cfg)
		if err != nil {
			return nil, nil, WrapExitError(ExitUnavailable, "connect to redis", err)
		}
		kv = repository.NewRedisKV(rdb, o.cfg.GetSessionTTL())
		closeFn = func() { _ = rdb.Close() }
	}

	store := cartsvc.NewStore(ctx, repository.NewAdapter(kv, o.Session, o.log), o.log)
	return store, closeFn, nil
}

// withStore runs fn against the session cart and prints its result.
func (o *RootOptions) withStore(cmd *cobra.Command, fn func(ctx context.Context, store *cartsvc.Store) (interface{}, error)) error {
	ctx := cmd.Context()
	store, closeFn, err := o.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := fn(ctx, store)
	if err != nil {
		return commandError(err)
	}
	return o.printer().Success(result)
}

func (o *RootOptions) productReader() *adapters.CatalogProductReader {
	return adapters.NewCatalogProductReader(o.catalog())
}

// commandError maps domain failures to exit codes.
func commandError(err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	message := err.Error()
	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	}

	switch apperr.GetKind(err) {
	case apperr.KindUnavailable:
		return NewExitError(ExitUnavailable, message)
	case apperr.KindNotFound, apperr.KindValidation, apperr.KindConflict:
		return NewExitError(ExitFailure, message)
	default:
		return WrapExitError(ExitFailure, "command failed", err)
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
