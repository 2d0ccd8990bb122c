package commands

import (
	"farescan/internal/search"
	"farescan/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(urlsCmd)
}

var urlsCmd = &cobra.Command{
	Use:   "urls",
	Short: "Lists the searches a scrape would run, without scraping.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		plan, err := search.Generate(cfg.SearchParams())
		if err != nil {
			serviceutil.Fatal("failed to generate searches", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"#", "Departure", "Return", "Days", "URL"})
		for i, req := range plan.Requests {
			t.AppendRow(table.Row{
				i,
				req.Departure.Format(search.DateLayout),
				req.Return.Format(search.DateLayout),
				int(req.Return.Sub(req.Departure).Hours() / 24),
				req.URL,
			})
		}
		t.Render()
	},
}
