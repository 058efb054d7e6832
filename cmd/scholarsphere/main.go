package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yigit/scholarsphere-cli/internal/app/session"
	"github.com/yigit/scholarsphere-cli/internal/client"
	"github.com/yigit/scholarsphere-cli/internal/config"
	"github.com/yigit/scholarsphere-cli/internal/pkg/logger"
	"github.com/yigit/scholarsphere-cli/internal/storage"
)

// runtime bundles the long-lived objects every command needs. It is built
// once in the app's Before hook and torn down in After, so the session
// scope and the state store have a single owning lifecycle.
type runtime struct {
	cfg     *config.Config
	store   *storage.SQLiteStore
	manager *session.Manager
	api     *client.Client
}

const runtimeKey = "runtime"

func getRuntime(c *cli.Context) *runtime {
	return c.App.Metadata[runtimeKey].(*runtime)
}

// resolveSession performs startup resolution against the backend. Failure
// silently yields the anonymous state; commands that require an identity
// check for it afterwards.
func (rt *runtime) resolveSession(c *cli.Context) {
	rt.manager.Resolve(c.Context, rt.api)
}

func (rt *runtime) requireIdentity(c *cli.Context) error {
	rt.resolveSession(c)
	if rt.manager.State() != session.StateAuthenticated {
		return cli.Exit("please sign in first: scholarsphere login", 1)
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:     "scholarsphere",
		Usage:    "command-line client for the ScholarSphere community platform",
		Metadata: map[string]interface{}{},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to the YAML config file",
				EnvVars: []string{"SCHOLARSPHERE_CONFIG"},
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return cli.Exit(fmt.Sprintf("configuration error: %v", err), 1)
			}

			logger.Configure(logger.Config{
				Level:  logger.LogLevel(cfg.Logging.Level),
				Pretty: cfg.Logging.Format != "json",
			})

			store, err := storage.NewSQLiteStore(cfg.State.Path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("state store error: %v", err), 1)
			}

			notifier := func(message string) {
				fmt.Fprintln(os.Stderr, message)
			}
			manager := session.NewManager(store, notifier, logger.Component("session"))

			api, err := client.New(cfg.API.BaseURL, cfg.API.Timeout, manager.Credential, logger.Component("client"))
			if err != nil {
				store.Close()
				return cli.Exit(fmt.Sprintf("client error: %v", err), 1)
			}

			c.App.Metadata[runtimeKey] = &runtime{
				cfg:     cfg,
				store:   store,
				manager: manager,
				api:     api,
			}
			return nil
		},
		After: func(c *cli.Context) error {
			rt, ok := c.App.Metadata[runtimeKey].(*runtime)
			if !ok {
				return nil
			}
			rt.manager.Close()
			return rt.store.Close()
		},
		Commands: []*cli.Command{
			loginCommand(),
			logoutCommand(),
			whoamiCommand(),
			feedCommand(),
			postCommand(),
			commentCommand(),
			circlesCommand(),
			notificationsCommand(),
			postersCommand(),
			journalCommand(),
			professorsCommand(),
			studentsCommand(),
			volunteersCommand(),
			ecProfilesCommand(),
			adminCommand(),
			payCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
