package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yigit/scholarsphere-cli/internal/app/session"
	"github.com/yigit/scholarsphere-cli/internal/pkg/logger"
)

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in through the browser",
		Action: func(c *cli.Context) error {
			rt := getRuntime(c)
			rt.resolveSession(c)

			if rt.manager.State() == session.StateAuthenticated {
				identity, _ := rt.manager.Identity()
				fmt.Printf("Already signed in as %s\n", identity.Name)
				return nil
			}

			listener := &session.RedirectListener{
				Port:    rt.cfg.Auth.CallbackPort,
				Manager: rt.manager,
				Logger:  logger.Component("login"),
			}

			state := session.NewState()
			loginURL := rt.api.LoginRedirectURL(listener.RedirectURI(), state)

			fmt.Println("Open this URL in your browser to sign in:")
			fmt.Println("  " + loginURL)

			if err := listener.Await(c.Context, state, rt.cfg.Auth.LoginTimeout); err != nil {
				return cli.Exit(fmt.Sprintf("sign-in failed: %v", err), 1)
			}
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "sign out and erase the stored credential",
		Action: func(c *cli.Context) error {
			rt := getRuntime(c)
			rt.resolveSession(c)
			return rt.manager.Logout()
		},
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the signed-in profile",
		Action: func(c *cli.Context) error {
			rt := getRuntime(c)
			if err := rt.requireIdentity(c); err != nil {
				return err
			}

			identity, _ := rt.manager.Identity()
			fmt.Printf("%s <%s>\n", identity.Name, identity.Email)
			if identity.University != "" {
				fmt.Printf("  %s", identity.University)
				if identity.Program != "" {
					fmt.Printf(", %s", identity.Program)
				}
				if identity.Year > 0 {
					fmt.Printf(" (year %d)", identity.Year)
				}
				fmt.Println()
			}
			if identity.UserType != "" {
				fmt.Printf("  role: %s\n", identity.UserType)
			}
			return nil
		},
	}
}
