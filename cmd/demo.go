package cmd

import (
	"context"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/Laisky/laisky-blog-content/internal/blog/dao"
	"github.com/Laisky/laisky-blog-content/internal/blog/dto"
	"github.com/Laisky/laisky-blog-content/internal/blog/service"
	mongoSDK "github.com/Laisky/laisky-blog-content/library/db/mongo"
	"github.com/Laisky/laisky-blog-content/library/log"
)

// demoCMD exercises the query engine against a live database; it is a thin
// caller around the service layer, nothing more.
var demoCMD = &cobra.Command{
	Use:   "demo",
	Short: "run a few content queries against the configured database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		if err := initialize(ctx, cmd); err != nil {
			return errors.Wrap(err, "initialize")
		}

		return runDemo(ctx)
	},
}

func init() {
	rootCMD.AddCommand(demoCMD)
}

func runDemo(ctx context.Context) error {
	db, err := mongoSDK.NewDB(ctx, mongoSDK.DialInfo{
		Addr:   gconfig.Shared.GetString("settings.db.blog.addr"),
		DBName: gconfig.Shared.GetString("settings.db.blog.db"),
		User:   gconfig.Shared.GetString("settings.db.blog.user"),
		Pwd:    gconfig.Shared.GetString("settings.db.blog.pwd"),
	})
	if err != nil {
		return errors.Wrap(err, "connect to blog db")
	}
	defer db.Close(ctx) //nolint:errcheck

	svc, err := service.New(ctx, log.Logger, dao.New(log.Logger, db))
	if err != nil {
		return errors.Wrap(err, "new blog service")
	}

	posts, err := svc.SearchPosts(ctx, &dto.SearchCriteria{
		Categories: []string{"Technology"},
	})
	if err != nil {
		return errors.Wrap(err, "search posts")
	}
	for _, p := range posts {
		log.Logger.Info("found post",
			zap.String("slug", p.Slug),
			zap.Int64("views", p.Views))
	}

	dashboard, err := svc.LoadDashboard(ctx)
	if err != nil {
		return errors.Wrap(err, "load dashboard")
	}
	for _, c := range dashboard.Categories {
		log.Logger.Info("category stats",
			zap.String("category", c.Category),
			zap.Int64("posts", c.PostCount),
			zap.Int64("views", c.TotalViews))
	}
	for _, p := range dashboard.Popular {
		log.Logger.Info("popular this week",
			zap.String("slug", p.Slug),
			zap.Int64("score", p.EngagementScore))
	}

	return nil
}
