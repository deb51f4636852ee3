// Command debug_tables prints every table found in a PDF with each
// extraction strategy, followed by the course rows the parser keeps.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"

	classschedule "github.com/pyhub-apps/classschedule-golang"
	"github.com/pyhub-apps/classschedule-golang/pkg/pdf"
	"github.com/pyhub-apps/classschedule-golang/pkg/schedule"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: debug_tables <pdf_file>")
		os.Exit(1)
	}

	doc, err := classschedule.Open(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	fmt.Printf("Document has %d pages\n\n", doc.PageCount())

	strategies := []struct {
		name string
		opts []classschedule.TableExtractionOption
	}{
		{name: "Auto (default)"},
		{name: "Lattice", opts: []classschedule.TableExtractionOption{classschedule.WithTableStrategy(pdf.StrategyLattice)}},
		{name: "Stream", opts: []classschedule.TableExtractionOption{classschedule.WithTableStrategy(pdf.StrategyStream)}},
	}

	for _, page := range doc.Pages() {
		fmt.Printf("=== Page %d ===\n", page.Number())

		for _, strategy := range strategies {
			fmt.Printf("\nStrategy: %s\n", strategy.name)
			tables := page.ExtractTables(strategy.opts...)

			if len(tables) == 0 {
				fmt.Println("  No tables found")
				continue
			}

			fmt.Printf("  Found %d table(s)\n", len(tables))

			for j, table := range tables {
				fmt.Printf("\n  Table %d:\n", j+1)
				fmt.Printf("    Dimensions: %d rows x %d columns\n",
					len(table.Rows), getMaxColumns(table.Rows))
				fmt.Printf("    BBox: (%.2f, %.2f) to (%.2f, %.2f)\n",
					table.BBox.X0, table.BBox.Y0, table.BBox.X1, table.BBox.Y1)

				printTable(table)
			}
		}

		courses := schedule.ParseTables(page.ExtractTables())
		fmt.Printf("\nCourse rows kept: %d\n", len(courses))
		for i, c := range courses {
			fmt.Printf("  %2d %-10s %-30s %v\n", i, c.Code, c.Name, c.Days)
		}

		fmt.Println()
	}
}

// getMaxColumns returns the maximum number of columns in any row
func getMaxColumns(rows [][]string) int {
	maxCols := 0
	for _, row := range rows {
		maxCols = max(maxCols, len(row))
	}
	return maxCols
}

// printTable prints a table in a formatted way
func printTable(table pdf.Table) {
	if len(table.Rows) == 0 {
		return
	}

	colWidths := make([]int, getMaxColumns(table.Rows))
	for _, row := range table.Rows {
		for j, cell := range row {
			colWidths[j] = max(colWidths[j], runewidth.StringWidth(flatten(cell)))
		}
	}

	for i := range colWidths {
		colWidths[i] = min(max(colWidths[i], 3), 30)
	}

	printSeparator(colWidths)

	for i, row := range table.Rows {
		fmt.Print("    |")
		for j, width := range colWidths {
			cell := ""
			if j < len(row) {
				cell = runewidth.Truncate(flatten(row[j]), width, "...")
			}
			fmt.Printf(" %s |", runewidth.FillRight(cell, width))
		}
		fmt.Println()

		if i == 0 {
			printSeparator(colWidths)
		}
	}

	printSeparator(colWidths)
}

// flatten puts a multi-line cell on one line
func flatten(cell string) string {
	return strings.Join(strings.Fields(cell), " ")
}

// printSeparator prints a table separator line
func printSeparator(colWidths []int) {
	fmt.Print("    +")
	for _, width := range colWidths {
		fmt.Print(strings.Repeat("-", width+2) + "+")
	}
	fmt.Println()
}
