package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/mfaivrep/planif/core/model"
	"github.com/mfaivrep/planif/core/plan"
)

// WriteJSON writes the full planning result to w in JSON format.
func WriteJSON(w io.Writer, res *plan.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteCSV writes the assignments to w in CSV format.
func WriteCSV(w io.Writer, res *plan.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"item_id", "resource_id", "start", "end", "minutes"}); err != nil {
		return err
	}
	for _, a := range res.Assignments {
		rec := []string{
			a.ItemID,
			a.ResourceID,
			model.FormatStartTime(a.Start),
			model.FormatStartTime(a.End),
			strconv.Itoa(a.Minutes),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable writes a human readable assignment table to w. Item and
// resource names are resolved from the snapshot when available.
func WriteTable(w io.Writer, res *plan.Result, items []*model.WorkItem, resources []model.ResourceProfile) error {
	itemNames := make(map[string]string, len(items))
	for _, it := range items {
		name := it.Name
		if name == "" {
			name = it.TaskName
		}
		itemNames[it.ID] = name
	}
	resNames := make(map[string]string, len(resources))
	for _, r := range resources {
		resNames[r.ID] = r.Name
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tRESOURCE\tSTART\tEND\tMINUTES")
	for _, a := range res.Assignments {
		item := itemNames[a.ItemID]
		if item == "" {
			item = a.ItemID
		}
		resource := resNames[a.ResourceID]
		if resource == "" {
			resource = a.ResourceID
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
			item, resource,
			model.FormatStartTime(a.Start), model.FormatStartTime(a.End), a.Minutes)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, warn := range res.Warnings {
		if _, err := fmt.Fprintf(w, "warning: %s: %s\n", warn.Code, warn.Message); err != nil {
			return err
		}
	}
	return nil
}
