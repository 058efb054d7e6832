package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yigit/scholarsphere-cli/internal/app/feed"
	"github.com/yigit/scholarsphere-cli/internal/app/models"
	"github.com/yigit/scholarsphere-cli/internal/app/notify"
	"github.com/yigit/scholarsphere-cli/internal/pkg/logger"
)

func printPost(post models.Post) {
	liked := " "
	if post.IsLiked {
		liked = "*"
	}
	fmt.Printf("%s [%s] %s — %s\n", liked, post.ID, post.AuthorName, post.Text)
	fmt.Printf("    likes: %d  comments: %d  posted: %s\n",
		post.Likes, post.Comments, post.CreatedAt.Format("2006-01-02 15:04"))
}

func feedCommand() *cli.Command {
	return &cli.Command{
		Name:  "feed",
		Usage: "show the social feed",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mode", Value: "global", Usage: "global, following, university or circle"},
			&cli.StringFlag{Name: "circle", Usage: "circle id (for circle mode)"},
			&cli.IntFlag{Name: "pages", Value: 1, Usage: "number of pages to fetch"},
		},
		Action: func(c *cli.Context) error {
			rt := getRuntime(c)
			rt.resolveSession(c)

			aggregator := feed.NewAggregator(rt.api, rt.cfg.API.PageLimit, logger.Component("feed"))
			if err := aggregator.Reset(c.Context, models.FeedMode(c.String("mode")), c.String("circle")); err != nil {
				return err
			}
			for page := 1; page < c.Int("pages") && aggregator.HasMore(); page++ {
				if err := aggregator.LoadMore(c.Context); err != nil {
					return err
				}
			}

			for _, post := range aggregator.Posts() {
				printPost(post)
			}
			if aggregator.HasMore() {
				fmt.Println("(more available — increase --pages)")
			}
			return nil
		},
	}
}

func postCommand() *cli.Command {
	return &cli.Command{
		Name:  "post",
		Usage: "create, delete or like posts",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "publish a post",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "text", Required: true},
					&cli.StringSliceFlag{Name: "tag"},
					&cli.StringFlag{Name: "visibility", Value: "public", Usage: "public or university"},
					&cli.StringFlag{Name: "circle", Usage: "post into a circle"},
				},
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					if err := rt.requireIdentity(c); err != nil {
						return err
					}

					post, err := rt.api.CreatePost(c.Context, models.CreatePostRequest{
						Text:       c.String("text"),
						Tags:       c.StringSlice("tag"),
						Visibility: models.Visibility(c.String("visibility")),
						CircleID:   c.String("circle"),
					})
					if err != nil {
						return err
					}
					fmt.Printf("Posted %s\n", post.ID)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a post by id",
				ArgsUsage: "<post-id>",
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					if err := rt.requireIdentity(c); err != nil {
						return err
					}
					return rt.api.DeletePost(c.Context, c.Args().First())
				},
			},
			{
				Name:      "like",
				Usage:     "toggle your like on a post",
				ArgsUsage: "<post-id>",
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					if err := rt.requireIdentity(c); err != nil {
						return err
					}

					aggregator := feed.NewAggregator(rt.api, rt.cfg.API.PageLimit, logger.Component("feed"))
					if err := aggregator.Reset(c.Context, models.FeedModeGlobal, ""); err != nil {
						return err
					}

					postID := c.Args().First()
					var target *models.Post
					for _, post := range aggregator.Posts() {
						if post.ID == postID {
							copied := post
							target = &copied
							break
						}
					}
					if target == nil {
						return cli.Exit("post not found in the current feed page", 1)
					}

					interactions := feed.NewInteractions(rt.api, logger.Component("feed"))
					if err := interactions.ToggleLike(c.Context, target); err != nil {
						return err
					}
					fmt.Printf("likes: %d (liked: %v)\n", target.Likes, target.IsLiked)
					return nil
				},
			},
		},
	}
}

func commentCommand() *cli.Command {
	return &cli.Command{
		Name:  "comment",
		Usage: "read and write comments",
		Subcommands: []*cli.Command{
			{
				Name:      "list",
				Usage:     "list a post's comments, newest first",
				ArgsUsage: "<post-id>",
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					rt.resolveSession(c)

					thread := feed.NewCommentThread(rt.api, c.Args().First())
					if err := thread.Load(c.Context); err != nil {
						return err
					}
					for _, comment := range thread.Comments() {
						fmt.Printf("[%s] %s: %s\n", comment.ID, comment.AuthorName, comment.Text)
					}
					return nil
				},
			},
			{
				Name:      "add",
				Usage:     "comment on a post",
				ArgsUsage: "<post-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "text", Required: true},
				},
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					if err := rt.requireIdentity(c); err != nil {
						return err
					}

					thread := feed.NewCommentThread(rt.api, c.Args().First())
					comment, err := thread.Add(c.Context, c.String("text"))
					if err != nil {
						return err
					}
					fmt.Printf("Commented %s\n", comment.ID)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a comment you authored",
				ArgsUsage: "<post-id> <comment-id>",
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					if err := rt.requireIdentity(c); err != nil {
						return err
					}

					thread := feed.NewCommentThread(rt.api, c.Args().Get(0))
					if err := thread.Load(c.Context); err != nil {
						return err
					}
					viewer, _ := rt.manager.Identity()
					return thread.Delete(c.Context, viewer, c.Args().Get(1))
				},
			},
		},
	}
}

func circlesCommand() *cli.Command {
	return &cli.Command{
		Name:  "circles",
		Usage: "list, join and leave circles",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list circles and your membership",
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					rt.resolveSession(c)

					circles := feed.NewCircles(rt.api, logger.Component("circles"))
					if err := circles.Refresh(c.Context); err != nil {
						return err
					}
					for _, circle := range circles.All() {
						member := " "
						if circle.IsMember {
							member = "*"
						}
						fmt.Printf("%s [%s] %s (%d members)\n", member, circle.ID, circle.Name, circle.MemberCount)
					}
					return nil
				},
			},
			{
				Name:      "join",
				ArgsUsage: "<circle-id>",
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					if err := rt.requireIdentity(c); err != nil {
						return err
					}
					circles := feed.NewCircles(rt.api, logger.Component("circles"))
					if err := circles.Refresh(c.Context); err != nil {
						return err
					}
					return circles.Join(c.Context, c.Args().First())
				},
			},
			{
				Name:      "leave",
				ArgsUsage: "<circle-id>",
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					if err := rt.requireIdentity(c); err != nil {
						return err
					}
					circles := feed.NewCircles(rt.api, logger.Component("circles"))
					if err := circles.Refresh(c.Context); err != nil {
						return err
					}
					return circles.Leave(c.Context, c.Args().First())
				},
			},
		},
	}
}

func notificationsCommand() *cli.Command {
	return &cli.Command{
		Name:  "notifications",
		Usage: "show notifications",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "watch", Usage: "keep polling until interrupted"},
			&cli.StringFlag{Name: "mark-read", Usage: "mark one notification read"},
		},
		Action: func(c *cli.Context) error {
			rt := getRuntime(c)
			if err := rt.requireIdentity(c); err != nil {
				return err
			}

			poller := notify.NewPoller(rt.api, notify.Config{
				Interval: rt.cfg.Notifications.PollInterval,
				Jitter:   rt.cfg.Notifications.PollJitter,
				Limit:    rt.cfg.Notifications.PageLimit,
			}, nil, logger.Component("notify"))

			if id := c.String("mark-read"); id != "" {
				poller.Poll(c.Context)
				return poller.MarkRead(c.Context, id)
			}

			if c.Bool("watch") {
				// The poller runs under the session scope, so it stops the
				// moment the session ends.
				poller.Run(rt.manager.Scope())
				return nil
			}

			poller.Poll(c.Context)
			for _, n := range poller.Notifications() {
				read := "*"
				if n.Read {
					read = " "
				}
				fmt.Printf("%s [%s] %s from %s\n", read, n.ID, n.Type, n.ActorName)
			}
			fmt.Printf("%d unread\n", poller.Unread())
			return nil
		},
	}
}
