package output

import (
	"fmt"
	"strings"

	"sqj/internal/core"
)

// TextSummary formats a registry as a compact human-readable report.
// Example output:
//
//	Dump Summary
//	============
//
//	Tables:  2
//	Records: 150
//
//	Details:
//	  users    5 columns, 100 records
//	  orders   3 columns, 50 records
func TextSummary(reg *core.Registry) string {
	var sb strings.Builder

	sb.WriteString("Dump Summary\n")
	sb.WriteString("============\n\n")

	fmt.Fprintf(&sb, "Tables:  %d\n", reg.Len())
	fmt.Fprintf(&sb, "Records: %d\n", reg.TotalRecords())

	tables := reg.Tables()
	if len(tables) == 0 {
		return sb.String()
	}

	width := 0
	for _, t := range tables {
		if len(t.TableName) > width {
			width = len(t.TableName)
		}
	}

	sb.WriteString("\nDetails:\n")
	for _, t := range tables {
		fmt.Fprintf(&sb, "  %-*s %d columns, %d records\n", width, t.TableName, len(t.Columns), len(t.Data))
	}

	return sb.String()
}
