// Command extract_text dumps the text and page objects of a PDF, page by
// page, as the schedule parser sees them.
package main

import (
	"fmt"
	"log"
	"os"

	classschedule "github.com/pyhub-apps/classschedule-golang"
	"github.com/pyhub-apps/classschedule-golang/pkg/schedule"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: extract_text <pdf_file>")
		os.Exit(1)
	}

	pdfPath := os.Args[1]

	fmt.Printf("Opening PDF: %s\n", pdfPath)
	doc, err := classschedule.Open(pdfPath)
	if err != nil {
		log.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	meta := doc.Metadata()
	fmt.Printf("Document has %d pages (backend %s)\n", doc.PageCount(), meta.Backend)
	if meta.Title != "" {
		fmt.Printf("Title: %s\n", meta.Title)
	}
	fmt.Println()

	for _, page := range doc.Pages() {
		fmt.Printf("=== Page %d ===\n", page.Number())
		fmt.Printf("Size: %.2f x %.2f\n", page.Width(), page.Height())

		text := page.ExtractText()
		if text != "" {
			fmt.Println("\nExtracted Text:")
			fmt.Println(text)
		} else {
			fmt.Println("No text found on this page")
		}

		// the student header lives on the first page
		if page.Number() == 1 {
			info := schedule.ParseStudentInfo(text).Clean()
			fmt.Println("\nStudent header:")
			fmt.Printf("  ID: %q Name: %q Advisor: %q\n", info.ID, info.Name, info.Advisor)
			fmt.Printf("  Department: %q Major: %q Semester: %q\n", info.Department, info.Major, info.Semester)
		}

		objects := page.Objects()
		fmt.Printf("\nObjects found:\n")
		fmt.Printf("  Characters: %d\n", len(objects.Chars))
		fmt.Printf("  Lines: %d\n", len(objects.Lines))
		fmt.Printf("  Rectangles: %d\n", len(objects.Rects))

		if len(objects.Chars) > 0 {
			fmt.Println("\nFirst few characters:")
			for _, char := range objects.Chars[:min(5, len(objects.Chars))] {
				fmt.Printf("  %s '%s' at (%.2f, %.2f) size=%.2f\n",
					char.GetType(), char.Text, char.X0, char.Y0, char.FontSize)
			}
		}

		fmt.Println()
	}
}
