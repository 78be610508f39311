package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hurttlocker/prospect/internal/analytics"
	"github.com/hurttlocker/prospect/internal/classify"
	"github.com/hurttlocker/prospect/internal/combine"
	"github.com/hurttlocker/prospect/internal/export"
	"github.com/hurttlocker/prospect/internal/match"
	prospectmcp "github.com/hurttlocker/prospect/internal/mcp"
	"github.com/hurttlocker/prospect/internal/server"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func newMatchCmd(flags *rootFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "match <idea>",
		Short: "Find catalog projects that resemble a free-text idea",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			defer a.log.Sync()

			idea := strings.Join(args, " ")
			matches := a.matcher.FindSimilar(cmd.Context(), idea, limit)

			if flags.jsonOut {
				return printJSON(matches)
			}
			printMatches(matches)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 5, "maximum number of matches")
	return cmd
}

func newSimilarCmd(flags *rootFlags) *cobra.Command {
	var id, limit int

	cmd := &cobra.Command{
		Use:   "similar",
		Short: "Find projects similar to an existing catalog project",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			defer a.log.Sync()

			rec, ok := a.store.ByID(cmd.Context(), id)
			if !ok {
				return fmt.Errorf("no project with id %d", id)
			}

			matches := a.ranker.SimilarTo(rec, a.store.Load(cmd.Context()), limit)
			if flags.jsonOut {
				return printJSON(matches)
			}
			fmt.Printf("Projects similar to %q:\n\n", rec.Name)
			printMatches(matches)
			return nil
		},
	}
	cmd.Flags().IntVar(&id, "id", 0, "project id to compare against")
	cmd.Flags().IntVar(&limit, "limit", 5, "maximum number of matches")
	cmd.MarkFlagRequired("id")
	return cmd
}

func newCombineCmd(flags *rootFlags) *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "combine",
		Short: "Suggest complementary projects and an integration plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			defer a.log.Sync()

			rec, ok := a.store.ByID(cmd.Context(), id)
			if !ok {
				return fmt.Errorf("no project with id %d", id)
			}

			combos := combine.Suggest(rec, a.store.Load(cmd.Context()))
			if flags.jsonOut {
				return printJSON(combos)
			}

			if len(combos) == 0 {
				fmt.Println("No complementary projects found.")
				return nil
			}
			for i, c := range combos {
				fmt.Printf("%d. %s + %s (score %.1f, %s)\n",
					i+1, c.PrimaryProject.Name, c.ComplementaryProjects[0].Name,
					c.TotalScore, c.EstimatedDevelopmentTime)
				if len(c.MissingComponents) > 0 {
					fmt.Printf("   Missing: %s\n", strings.Join(c.MissingComponents, ", "))
				}
				for _, step := range c.IntegrationSteps {
					fmt.Printf("   - %s\n", step)
				}
				fmt.Println()
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&id, "id", 0, "primary project id")
	cmd.MarkFlagRequired("id")
	return cmd
}

func newAnalyticsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show aggregate trends across the whole catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			defer a.log.Sync()

			snapshot := analytics.Aggregate(a.store.Load(cmd.Context()))
			if flags.jsonOut {
				return printJSON(snapshot)
			}

			fmt.Printf("Projects: %d  Stars: %d (avg %d)  Recent (6mo): %d\n\n",
				snapshot.Stats.TotalProjects, snapshot.Stats.TotalStars,
				snapshot.Stats.AvgStars, snapshot.Stats.RecentProjects)

			printAxis("Frameworks", snapshot.Frameworks)
			printAxis("AI models", snapshot.AIModels)
			printAxis("Vector DBs", snapshot.VectorDBs)
			printAxis("Infrastructure", snapshot.Infrastructure)

			if len(snapshot.Stats.TopCategories) > 0 {
				fmt.Println("Top categories:")
				for _, c := range snapshot.Stats.TopCategories {
					fmt.Printf("  %-28s %d\n", c.Category, c.Count)
				}
				fmt.Println()
			}

			printInsightList("Gaps", snapshot.Insights.Gaps)
			printInsightList("Opportunities", snapshot.Insights.Opportunities)
			printInsightList("Trending technologies", snapshot.Insights.TrendingTechs)
			printInsightList("Emerging categories", snapshot.Insights.EmergingCategories)
			return nil
		},
	}
}

func newClassifyCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <idea>",
		Short: "Classify a free-text idea into a structured profile",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis := classify.Classify(strings.Join(args, " "))
			if flags.jsonOut {
				return printJSON(analysis)
			}

			fmt.Printf("Category:       %s\n", analysis.Category)
			fmt.Printf("Complexity:     %s (%s)\n", analysis.Complexity, analysis.EstimatedTime)
			fmt.Printf("Technologies:   %s\n", joinOrNone(analysis.Technologies))
			fmt.Printf("Features:       %s\n", joinOrNone(analysis.Features))
			fmt.Printf("Key components: %s\n", strings.Join(analysis.KeyComponents, ", "))
			return nil
		},
	}
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the matching engine over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			defer a.log.Sync()

			// Warm the snapshot before accepting traffic.
			a.store.Load(cmd.Context())

			srv := server.New(a.cfg.ListenAddr.Value, a.store, a.matcher, a.log)
			a.log.Info("http server listening", zap.String("addr", srv.Addr))

			errCh := make(chan error, 1)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-stop:
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func newMCPCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the matching engine over MCP (stdio)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			defer a.log.Sync()

			a.store.Load(cmd.Context())

			s := prospectmcp.NewServer(prospectmcp.ServerConfig{
				Store:   a.store,
				Ranker:  a.ranker,
				Matcher: a.matcher,
				Version: version,
			})
			return mcpserver.ServeStdio(s)
		},
	}
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog and analytics snapshot to a SQLite file",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			defer a.log.Sync()

			res, err := export.WriteSnapshot(cmd.Context(), out, a.store.Load(cmd.Context()))
			if err != nil {
				return err
			}
			fmt.Printf("Exported %d projects, %d axis entries, %d insights to %s\n",
				res.Projects, res.Axes, res.Insights, res.Path)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "prospect-snapshot.db", "output SQLite file path")
	return cmd
}

// --- output helpers ---

func printMatches(matches []match.ProjectMatch) {
	if len(matches) == 0 {
		fmt.Println("No matches found.")
		return
	}
	for i, m := range matches {
		fmt.Printf("%d. %s (%.1f%%)\n", i+1, m.Project.Name, m.SimilarityScore)
		fmt.Printf("   %s | integration: %s", m.MatchReason, m.IntegrationComplexity)
		if m.Project.GithubStars > 0 {
			fmt.Printf(" | ★ %d", m.Project.GithubStars)
		}
		fmt.Println()
		if m.Project.AISummary != "" {
			fmt.Printf("   %s\n", truncate(m.Project.AISummary, 120))
		}
		fmt.Println()
	}
}

func printAxis(title string, entries []analytics.AxisEntry) {
	if len(entries) == 0 {
		return
	}
	fmt.Printf("%s:\n", title)
	for _, e := range entries {
		fmt.Printf("  %-24s %4d  %3d%%\n", e.Name, e.Count, e.Percentage)
	}
	fmt.Println()
}

func printInsightList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("%s:\n", title)
	for _, item := range items {
		fmt.Printf("  - %s\n", item)
	}
	fmt.Println()
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none detected)"
	}
	return strings.Join(items, ", ")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "…"
}
