package main

import (
	"time"

	"github.com/araddon/dateparse"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/Luismorlan/newsdash/collector"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	flagCountry  string
	flagCategory string
	flagQuery    string
	flagLanguage string
	flagSortBy   string
	flagFrom     string
	flagTo       string
	flagPageSize int
	flagPage     int
)

// printJson writes v indented to the command's stdout.
func printJson(cmd *cobra.Command, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func parseFlagTime(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}

var headlinesCmd = &cobra.Command{
	Use:   "headlines",
	Short: "Print enriched top headlines",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := buildServices(AppConfig)
		if err != nil {
			return err
		}
		news, err := svc.requireNews()
		if err != nil {
			return err
		}
		articles, err := news.GetTopHeadlines(cmd.Context(), collector.HeadlinesQuery{
			Country:  flagCountry,
			Category: flagCategory,
			Q:        flagQuery,
			PageSize: flagPageSize,
			Page:     flagPage,
		})
		if err != nil {
			return err
		}
		return printJson(cmd, articles)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search all articles and print them enriched",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseFlagTime(flagFrom)
		if err != nil {
			return err
		}
		to, err := parseFlagTime(flagTo)
		if err != nil {
			return err
		}
		svc, err := buildServices(AppConfig)
		if err != nil {
			return err
		}
		news, err := svc.requireNews()
		if err != nil {
			return err
		}
		articles, err := news.SearchEverything(cmd.Context(), collector.SearchQuery{
			Q:        args[0],
			From:     from,
			To:       to,
			Language: flagLanguage,
			SortBy:   flagSortBy,
			PageSize: flagPageSize,
			Page:     flagPage,
		})
		if err != nil {
			return err
		}
		return printJson(cmd, articles)
	},
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Print the news api sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := buildServices(AppConfig)
		if err != nil {
			return err
		}
		news, err := svc.requireNews()
		if err != nil {
			return err
		}
		sources, err := news.GetSources(cmd.Context(), collector.SourcesQuery{
			Category: flagCategory,
			Language: flagLanguage,
			Country:  flagCountry,
		})
		if err != nil {
			return err
		}
		return printJson(cmd, sources)
	},
}

var feedCmd = &cobra.Command{
	Use:   "feed <url>",
	Short: "Fetch an rss or atom feed and print its items enriched",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := buildServices(AppConfig)
		if err != nil {
			return err
		}
		articles, err := svc.feeds.FetchFeed(cmd.Context(), args[0], flagCategory)
		if err != nil {
			return err
		}
		return printJson(cmd, articles)
	},
}

func init() {
	headlinesCmd.Flags().StringVar(&flagCountry, "country", "", "ISO 3166-1 country code")
	headlinesCmd.Flags().StringVar(&flagCategory, "category", "", "news category")
	headlinesCmd.Flags().StringVar(&flagQuery, "q", "", "keywords to filter headlines")
	headlinesCmd.Flags().IntVar(&flagPageSize, "page_size", collector.DefaultPageSize, "articles per page")
	headlinesCmd.Flags().IntVar(&flagPage, "page", 1, "page number")

	searchCmd.Flags().StringVar(&flagFrom, "from", "", "oldest publication time")
	searchCmd.Flags().StringVar(&flagTo, "to", "", "newest publication time")
	searchCmd.Flags().StringVar(&flagLanguage, "language", "", "ISO 639-1 language code")
	searchCmd.Flags().StringVar(&flagSortBy, "sort_by", collector.DefaultSortBy, "relevancy, popularity or publishedAt")
	searchCmd.Flags().IntVar(&flagPageSize, "page_size", collector.DefaultPageSize, "articles per page")
	searchCmd.Flags().IntVar(&flagPage, "page", 1, "page number")

	sourcesCmd.Flags().StringVar(&flagCategory, "category", "", "news category")
	sourcesCmd.Flags().StringVar(&flagLanguage, "language", "", "ISO 639-1 language code")
	sourcesCmd.Flags().StringVar(&flagCountry, "country", "", "ISO 3166-1 country code")

	feedCmd.Flags().StringVar(&flagCategory, "category", "", "category assigned to every item")
}
