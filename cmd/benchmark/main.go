// Command benchmark times each stage of reading a schedule PDF.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	classschedule "github.com/pyhub-apps/classschedule-golang"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: benchmark <pdf-file>")
		os.Exit(1)
	}

	pdfPath := os.Args[1]

	// Warm-up run
	doc, err := classschedule.Open(pdfPath)
	if err != nil {
		log.Fatalf("Failed to open PDF: %v", err)
	}
	doc.Close()

	start := time.Now()
	doc, err = classschedule.Open(pdfPath)
	if err != nil {
		log.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()
	openTime := time.Since(start)

	fmt.Printf("=== Schedule Extraction Benchmark ===\n")
	fmt.Printf("File: %s\n", pdfPath)
	fmt.Printf("Pages: %d (backend %s)\n", doc.PageCount(), doc.Metadata().Backend)
	fmt.Printf("Open time: %v\n", openTime)

	var totalTextLen int
	start = time.Now()
	for _, page := range doc.Pages() {
		totalTextLen += len(page.ExtractText())
	}
	textTime := time.Since(start)

	fmt.Printf("Text extraction time: %v\n", textTime)
	fmt.Printf("Total text length: %d chars\n", totalTextLen)

	var totalTables int
	start = time.Now()
	for _, page := range doc.Pages() {
		totalTables += len(page.ExtractTables())
	}
	tableTime := time.Since(start)

	fmt.Printf("Table extraction time: %v\n", tableTime)
	fmt.Printf("Total tables found: %d\n", totalTables)

	start = time.Now()
	s, err := classschedule.Extract(context.Background(), pdfPath)
	if err != nil {
		log.Fatalf("Failed to extract schedule: %v", err)
	}
	grid := classschedule.Timetable(s)
	scheduleTime := time.Since(start)

	fmt.Printf("Schedule extraction time: %v\n", scheduleTime)
	fmt.Printf("Courses: %d, blocks: %d, clashes: %d\n", len(s.Courses), len(grid.Blocks()), len(grid.Clashes()))
	fmt.Printf("Total time: %v\n", openTime+textTime+tableTime+scheduleTime)
}
