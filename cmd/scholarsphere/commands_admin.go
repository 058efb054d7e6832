package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yigit/scholarsphere-cli/internal/app/models"
)

func adminCommand() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "admin console operations (admin credential required)",
		Subcommands: []*cli.Command{
			adminPostersCommand(),
			adminProfessorsCommand(),
			adminVolunteersCommand(),
			adminECProfilesCommand(),
		},
	}
}

func adminPostersCommand() *cli.Command {
	return &cli.Command{
		Name:  "posters",
		Usage: "review the poster queue",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Flags: []cli.Flag{&cli.StringFlag{Name: "status", Value: "pending"}},
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					if err := rt.requireIdentity(c); err != nil {
						return err
					}
					posters, err := rt.api.AdminListPosters(c.Context, models.PosterStatus(c.String("status")))
					if err != nil {
						return err
					}
					for _, poster := range posters {
						fmt.Printf("[%s] %s — %s [%s/%s]\n",
							poster.ID, poster.Title, poster.AuthorName, poster.Status, poster.PaymentStatus)
					}
					return nil
				},
			},
			{
				Name:      "review",
				ArgsUsage: "<poster-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "status", Required: true, Usage: "approved or rejected"},
					&cli.StringFlag{Name: "note"},
				},
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					if err := rt.requireIdentity(c); err != nil {
						return err
					}
					poster, err := rt.api.ReviewPoster(c.Context, c.Args().First(), models.ReviewPosterRequest{
						Status: models.PosterStatus(c.String("status")),
						Note:   c.String("note"),
					})
					if err != nil {
						return err
					}
					fmt.Printf("Poster %s is now %s\n", poster.ID, poster.Status)
					return nil
				},
			},
		},
	}
}

func adminProfessorsCommand() *cli.Command {
	return &cli.Command{
		Name:  "professors",
		Usage: "manage the professor network",
		Subcommands: []*cli.Command{
			{
				Name: "add",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "university", Required: true},
					&cli.StringFlag{Name: "department"},
					&cli.StringFlag{Name: "email"},
					&cli.StringSliceFlag{Name: "research-area"},
					&cli.BoolFlag{Name: "accepting-undergrads"},
				},
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					if err := rt.requireIdentity(c); err != nil {
						return err
					}
					created, err := rt.api.AdminCreateProfessor(c.Context, models.ProfessorProfile{
						Name:                c.String("name"),
						University:          c.String("university"),
						Department:          c.String("department"),
						Email:               c.String("email"),
						ResearchAreas:       c.StringSlice("research-area"),
						AcceptingUndergrads: c.Bool("accepting-undergrads"),
					})
					if err != nil {
						return err
					}
					fmt.Printf("Created professor entry %s\n", created.ID)
					return nil
				},
			},
			{
				Name:      "delete",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					if err := rt.requireIdentity(c); err != nil {
						return err
					}
					return rt.api.AdminDeleteProfessor(c.Context, c.Args().First())
				},
			},
		},
	}
}

func adminVolunteersCommand() *cli.Command {
	return &cli.Command{
		Name:  "volunteers",
		Usage: "manage volunteer listings",
		Subcommands: []*cli.Command{
			{
				Name: "add",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Required: true},
					&cli.StringFlag{Name: "organization", Required: true},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "type"},
					&cli.StringFlag{Name: "location"},
					&cli.StringFlag{Name: "link"},
				},
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					if err := rt.requireIdentity(c); err != nil {
						return err
					}
					created, err := rt.api.AdminCreateVolunteerOpportunity(c.Context, models.VolunteerOpportunity{
						Title:        c.String("title"),
						Organization: c.String("organization"),
						Description:  c.String("description"),
						Type:         c.String("type"),
						Location:     c.String("location"),
						Link:         c.String("link"),
					})
					if err != nil {
						return err
					}
					fmt.Printf("Created volunteer listing %s\n", created.ID)
					return nil
				},
			},
			{
				Name:      "delete",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					if err := rt.requireIdentity(c); err != nil {
						return err
					}
					return rt.api.AdminDeleteVolunteerOpportunity(c.Context, c.Args().First())
				},
			},
		},
	}
}

func adminECProfilesCommand() *cli.Command {
	return &cli.Command{
		Name:  "ec-profiles",
		Usage: "manage extracurricular profiles",
		Subcommands: []*cli.Command{
			{
				Name: "add",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Required: true},
					&cli.StringFlag{Name: "category", Required: true},
					&cli.StringFlag{Name: "university"},
					&cli.StringFlag{Name: "description"},
					&cli.IntFlag{Name: "hours"},
					&cli.StringSliceFlag{Name: "tag"},
				},
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					if err := rt.requireIdentity(c); err != nil {
						return err
					}
					created, err := rt.api.AdminCreateECProfile(c.Context, models.ECProfile{
						Title:       c.String("title"),
						Category:    c.String("category"),
						University:  c.String("university"),
						Description: c.String("description"),
						Hours:       c.Int("hours"),
						Tags:        c.StringSlice("tag"),
					})
					if err != nil {
						return err
					}
					fmt.Printf("Created EC profile %s\n", created.ID)
					return nil
				},
			},
			{
				Name:      "delete",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					if err := rt.requireIdentity(c); err != nil {
						return err
					}
					return rt.api.AdminDeleteECProfile(c.Context, c.Args().First())
				},
			},
		},
	}
}

func payCommand() *cli.Command {
	return &cli.Command{
		Name:  "pay",
		Usage: "pay the poster submission fee",
		Subcommands: []*cli.Command{
			{
				Name:      "checkout",
				Usage:     "open a checkout session for a poster",
				ArgsUsage: "<poster-id>",
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					if err := rt.requireIdentity(c); err != nil {
						return err
					}
					checkout, err := rt.api.CreateCheckout(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					fmt.Println("Complete the payment in your browser:")
					fmt.Println("  " + checkout.URL)
					fmt.Printf("then check: scholarsphere pay status %s\n", checkout.SessionID)
					return nil
				},
			},
			{
				Name:      "status",
				ArgsUsage: "<session-id>",
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					if err := rt.requireIdentity(c); err != nil {
						return err
					}
					status, err := rt.api.CheckoutStatus(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					fmt.Printf("payment: %s\n", status.Status)
					return nil
				},
			},
		},
	}
}
