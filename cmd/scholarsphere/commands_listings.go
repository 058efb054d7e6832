package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yigit/scholarsphere-cli/internal/app/listing"
	"github.com/yigit/scholarsphere-cli/internal/app/models"
	"github.com/yigit/scholarsphere-cli/internal/client"
)

func postersCommand() *cli.Command {
	return &cli.Command{
		Name:  "posters",
		Usage: "browse and submit research posters",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list posters",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "status", Usage: "pending, approved or rejected"},
					&cli.StringFlag{Name: "university"},
				},
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					rt.resolveSession(c)

					list := listing.NewPosterList(rt.api)
					if err := list.SetFilters(c.Context, models.PosterStatus(c.String("status")), c.String("university")); err != nil {
						return err
					}
					for _, poster := range list.Posters() {
						view := ""
						if poster.Viewable() {
							view = "  (viewable)"
						}
						fmt.Printf("[%s] %s — %s [%s/%s]%s\n",
							poster.ID, poster.Title, poster.AuthorName,
							poster.Status, poster.PaymentStatus, view)
					}
					return nil
				},
			},
			{
				Name:  "submit",
				Usage: "upload a poster file and create the submission",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Required: true},
					&cli.StringFlag{Name: "abstract"},
					&cli.StringFlag{Name: "university"},
					&cli.StringFlag{Name: "file", Required: true, Usage: "path to the poster file"},
				},
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					if err := rt.requireIdentity(c); err != nil {
						return err
					}

					file, err := os.Open(c.String("file"))
					if err != nil {
						return cli.Exit(fmt.Sprintf("cannot open %s: %v", c.String("file"), err), 1)
					}
					defer file.Close()

					upload, err := rt.api.UploadPosterFile(c.Context, file.Name(), file)
					if err != nil {
						return err
					}

					poster, err := rt.api.SubmitPoster(c.Context, models.SubmitPosterRequest{
						Title:      c.String("title"),
						Abstract:   c.String("abstract"),
						University: c.String("university"),
						PosterURL:  upload.FileID,
					})
					if err != nil {
						// No compensating delete of the uploaded file; the
						// orphan is left to server-side cleanup.
						return err
					}
					fmt.Printf("Submitted poster %s (status %s)\n", poster.ID, poster.Status)
					return nil
				},
			},
			{
				Name:      "delete",
				ArgsUsage: "<poster-id>",
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					if err := rt.requireIdentity(c); err != nil {
						return err
					}
					return rt.api.DeletePoster(c.Context, c.Args().First())
				},
			},
		},
	}
}

func journalCommand() *cli.Command {
	return &cli.Command{
		Name:  "journal",
		Usage: "browse and submit journal articles",
		Subcommands: []*cli.Command{
			{
				Name: "list",
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					rt.resolveSession(c)

					articles, err := rt.api.ListArticles(c.Context)
					if err != nil {
						return err
					}
					for _, article := range articles {
						fmt.Printf("[%s] %s — %s\n", article.ID, article.Title, article.AuthorName)
					}
					return nil
				},
			},
			{
				Name:      "get",
				ArgsUsage: "<identifier>",
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					rt.resolveSession(c)

					article, err := rt.api.GetArticle(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					fmt.Printf("%s\nby %s\n\n%s\n", article.Title, article.AuthorName, article.Abstract)
					if article.FileURL != "" {
						fmt.Printf("\nfile: %s\n", article.FileURL)
					}
					return nil
				},
			},
			{
				Name:  "submit",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Required: true},
					&cli.StringFlag{Name: "abstract"},
					&cli.StringFlag{Name: "file", Usage: "path to the manuscript"},
				},
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					if err := rt.requireIdentity(c); err != nil {
						return err
					}

					req := models.SubmitArticleRequest{
						Title:    c.String("title"),
						Abstract: c.String("abstract"),
					}

					if path := c.String("file"); path != "" {
						file, err := os.Open(path)
						if err != nil {
							return cli.Exit(fmt.Sprintf("cannot open %s: %v", path, err), 1)
						}
						defer file.Close()

						upload, err := rt.api.UploadArticleFile(c.Context, file.Name(), file)
						if err != nil {
							return err
						}
						req.FileURL = upload.FileID
					}

					article, err := rt.api.SubmitArticle(c.Context, req)
					if err != nil {
						return err
					}
					fmt.Printf("Submitted article %s\n", article.ID)
					return nil
				},
			},
		},
	}
}

func professorsCommand() *cli.Command {
	return &cli.Command{
		Name:  "professors",
		Usage: "browse the professor network",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "university"},
			&cli.StringFlag{Name: "department"},
			&cli.StringFlag{Name: "research-area"},
		},
		Action: func(c *cli.Context) error {
			rt := getRuntime(c)
			rt.resolveSession(c)

			list := listing.NewProfessorList(rt.api)
			err := list.SetFilter(c.Context, client.ProfessorFilter{
				University:   c.String("university"),
				Department:   c.String("department"),
				ResearchArea: c.String("research-area"),
			})
			if err != nil {
				return err
			}
			for _, professor := range list.Professors() {
				open := ""
				if professor.AcceptingUndergrads {
					open = "  (accepting undergrads)"
				}
				fmt.Printf("[%s] %s — %s, %s%s\n",
					professor.ID, professor.Name, professor.Department, professor.University, open)
			}
			return nil
		},
	}
}

func studentsCommand() *cli.Command {
	return &cli.Command{
		Name:  "students",
		Usage: "browse the student network",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "university"},
			&cli.StringFlag{Name: "program"},
			&cli.IntFlag{Name: "year"},
		},
		Action: func(c *cli.Context) error {
			rt := getRuntime(c)
			rt.resolveSession(c)

			list := listing.NewStudentList(rt.api)
			err := list.SetFilter(c.Context, client.StudentFilter{
				University: c.String("university"),
				Program:    c.String("program"),
				Year:       c.Int("year"),
			})
			if err != nil {
				return err
			}
			for _, student := range list.Students() {
				fmt.Printf("[%s] %s — %s, %s\n", student.ID, student.Name, student.Program, student.University)
			}
			return nil
		},
	}
}

func volunteersCommand() *cli.Command {
	return &cli.Command{
		Name:  "volunteers",
		Usage: "browse volunteer opportunities (filtered locally over one fetch)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search"},
			&cli.StringFlag{Name: "type"},
			&cli.StringFlag{Name: "location"},
		},
		Action: func(c *cli.Context) error {
			rt := getRuntime(c)
			rt.resolveSession(c)

			board := listing.NewVolunteerBoard(rt.api)
			if err := board.Refresh(c.Context); err != nil {
				return err
			}
			board.SetSearch(c.String("search"))
			board.SetType(c.String("type"))
			board.SetLocation(c.String("location"))

			for _, opp := range board.Matches() {
				fmt.Printf("[%s] %s — %s (%s, %s)\n",
					opp.ID, opp.Title, opp.Organization, opp.Type, opp.Location)
			}
			return nil
		},
	}
}

func ecProfilesCommand() *cli.Command {
	return &cli.Command{
		Name:  "ec-profiles",
		Usage: "browse extracurricular profiles",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category"},
			&cli.StringFlag{Name: "university"},
			&cli.StringFlag{Name: "search"},
			&cli.BoolFlag{Name: "stats", Usage: "show aggregate stats instead"},
		},
		Action: func(c *cli.Context) error {
			rt := getRuntime(c)
			rt.resolveSession(c)

			list := listing.NewECProfileList(rt.api)

			if c.Bool("stats") {
				if err := list.LoadStats(c.Context); err != nil {
					return err
				}
				stats, _ := list.Stats()
				fmt.Printf("%d profiles\n", stats.TotalProfiles)
				for category, count := range stats.ByCategory {
					fmt.Printf("  %s: %d\n", category, count)
				}
				return nil
			}

			err := list.SetFilter(c.Context, client.ECProfileFilter{
				Category:   c.String("category"),
				University: c.String("university"),
				Search:     c.String("search"),
			})
			if err != nil {
				return err
			}
			for _, profile := range list.Profiles() {
				fmt.Printf("[%s] %s — %s (%s, %dh)\n",
					profile.ID, profile.Title, profile.Category, profile.University, profile.Hours)
			}
			return nil
		},
	}
}
