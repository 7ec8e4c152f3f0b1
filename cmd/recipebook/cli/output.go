package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"recipebook"
	"recipebook/state"
)

func printSearchPage(w io.Writer, search state.Search, results []recipebook.SearchResult) {
	if len(search.Results) == 0 {
		fmt.Fprintf(w, "No recipes found for %q\n", search.Query)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPUBLISHER")
	for _, r := range results {
		title := r.Title
		if r.Key != "" {
			title += " (yours)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, title, r.Publisher)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nPage %d of %d (%d results)\n", search.Page, search.NumPages(), len(search.Results))
}

func printRecipe(w io.Writer, r recipebook.Recipe) {
	marker := ""
	if r.Bookmarked {
		marker = " [bookmarked]"
	}
	fmt.Fprintf(w, "%s%s\n", r.Title, marker)
	fmt.Fprintf(w, "by %s\n", r.Publisher)
	fmt.Fprintf(w, "%d servings, %d minutes\n\n", r.Servings, r.CookingTime)

	for _, ing := range r.Ingredients {
		qty := ""
		if ing.Quantity != nil {
			qty = strconv.FormatFloat(*ing.Quantity, 'f', -1, 64)
		}
		fmt.Fprintf(w, "  - %s %s %s\n", qty, ing.Unit, ing.Description)
	}
	if r.SourceURL != "" {
		fmt.Fprintf(w, "\nDirections: %s\n", r.SourceURL)
	}
}

func printBookmarks(w io.Writer, bookmarks []recipebook.Recipe) {
	if len(bookmarks) == 0 {
		fmt.Fprintln(w, "No bookmarks yet")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPUBLISHER")
	for _, b := range bookmarks {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.ID, b.Title, b.Publisher)
	}
	tw.Flush()
}
