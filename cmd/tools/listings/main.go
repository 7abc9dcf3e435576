// Prints every posting (drafts included) as a quick editorial overview.
package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jobsyde/jobsyde/internal/db"
)

func main() {
	ctx := context.Background()
	pool, err := db.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	store := db.NewStore(pool)
	opps, err := store.ListAllOpportunities(ctx)
	if err != nil {
		log.Fatal(err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Slug", "Status", "Deadline", "Categories", "Created"})

	for _, o := range opps {
		deadline := "-"
		if o.Deadline != nil {
			deadline = o.Deadline.Format("2006-01-02")
		}
		t.AppendRow(table.Row{
			o.Slug,
			o.Status,
			deadline,
			strings.Join(o.Category, ", "),
			o.CreatedAt.Format("2006-01-02"),
		})
	}
	t.Render()
}
