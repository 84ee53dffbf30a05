package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"maps"
	"net/http"
	"os"
	"slices"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hpungsan/folio/internal/catalog"
	"github.com/hpungsan/folio/internal/config"
	"github.com/hpungsan/folio/internal/errors"
	"github.com/hpungsan/folio/internal/metrics"
	"github.com/hpungsan/folio/internal/ops"
	"github.com/hpungsan/folio/internal/project"
	"github.com/hpungsan/folio/internal/web"
)

// appEnv carries what every command needs. The store is built in Before,
// once the --seed flag is known, unless a test has already set it.
type appEnv struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *catalog.Store
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(env *appEnv) *cli.App {
	app := &cli.App{
		Name:    "folio",
		Usage:   "Portfolio showcase catalog",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "seed", Usage: "Seed file (.json, .yaml, .yml); defaults to seed_path or the built-in projects"},
		},
		Before: func(c *cli.Context) error {
			if env == nil || env.store != nil {
				return nil
			}
			path := c.String("seed")
			if path == "" {
				path = env.cfg.SeedPath
			}
			store, err := openStore(path)
			if err != nil {
				return outputError(err)
			}
			env.store = store
			return nil
		},
		Commands: []*cli.Command{
			serveCmd(env),
			listCmd(env),
			categoriesCmd(env),
			addCmd(env),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// serveCmd creates the serve command.
func serveCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Usage: "Interface to listen on (default from config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port to listen on (default from config)"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := serveConfig(env.cfg, c.String("bind"), c.Int("port"))
			if err != nil {
				return outputError(err)
			}

			srv, err := web.NewServer(web.Deps{
				Store:   env.store,
				Config:  cfg,
				Metrics: metrics.NewCollector(),
				Logger:  env.logger,
				Version: Version,
			})
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			if err := web.Run(srv, env.logger); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// listCmd creates the list command.
func listCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List projects newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Case-insensitive match on title, description, or tags"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Value: catalog.AllCategories, Usage: "Category to keep"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.View(env.store, ops.ViewInput{
				Search:   c.String("search"),
				Category: c.String("category"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// categoriesCmd creates the categories command.
func categoriesCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "List the distinct categories in the catalog",
		Action: func(c *cli.Context) error {
			return outputJSON(ops.Categories(env.store))
		},
	}
}

// addOutput is the add command's result: the new record and the view after it.
type addOutput struct {
	ops.AddOutput
	View *ops.ViewOutput `json:"view"`
}

// addCmd creates the add command. The catalog lives only as long as the
// process, so the printed view is the only lasting trace of the add.
func addCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Validate a project and add it to this session's catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Project title"},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Project description"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Category (default from config)"},
			&cli.StringFlag{Name: "image", Aliases: []string{"i"}, Usage: "Image URL (http or https)"},
			&cli.StringFlag{Name: "tags", Usage: "Comma-separated tags"},
			&cli.StringFlag{Name: "date", Usage: "YYYY-MM or YYYY-MM-DD (default today)"},
		},
		Action: func(c *cli.Context) error {
			added, err := ops.Add(env.store, env.cfg, ops.AddInput{
				Draft: project.Draft{
					Title:       c.String("title"),
					Description: c.String("description"),
					Category:    c.String("category"),
					Image:       c.String("image"),
					Tags:        c.String("tags"),
					Date:        c.String("date"),
				},
			})
			if err != nil {
				return outputError(err)
			}

			env.logger.Info("project added", zap.String("id", string(added.Project.ID)))

			view, err := ops.View(env.store, ops.ViewInput{})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(addOutput{AddOutput: *added, View: view})
		},
	}
}

// Helper functions

// openStore loads the seed at path (empty means built-in) into a new store.
func openStore(path string) (*catalog.Store, error) {
	seed, err := catalog.LoadSeed(path)
	if err != nil {
		return nil, err
	}
	return catalog.NewStore(seed)
}

// serveConfig applies the serve flag overrides to a copy of cfg.
func serveConfig(cfg *config.Config, bind string, port int) (*config.Config, error) {
	out := *cfg
	if bind != "" {
		out.Bind = bind
	}
	if port != 0 {
		out.Port = port
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI. Validation failures list each field.
func outputError(err error) error {
	var fErr *errors.FolioError
	if !stderrors.As(err, &fErr) {
		return cli.Exit(err.Error(), 1)
	}

	msg := fmt.Sprintf("[%s] %s", fErr.Code, fErr.Message)
	if fields := errors.Fields(fErr); len(fields) > 0 {
		var b strings.Builder
		b.WriteString(msg)
		for _, name := range slices.Sorted(maps.Keys(fields)) {
			fmt.Fprintf(&b, "\n  %s: %s", name, fields[name])
		}
		msg = b.String()
	}
	return cli.Exit(msg, 1)
}
