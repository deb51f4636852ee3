package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/pyhub-apps/classschedule-golang/pkg/config"
	"github.com/pyhub-apps/classschedule-golang/pkg/schedule"
	"github.com/pyhub-apps/classschedule-golang/pkg/timetable"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = map[string]*template.Template{
	"timetable": parsePage("timetable.html"),
	"details":   parsePage("details.html"),
	"about":     parsePage("about.html"),
}

func parsePage(name string) *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name))
}

// Page is the timetable view. A nil Schedule renders the "choose a PDF" prompt.
type Page struct {
	Schedule *schedule.Schedule
	Grid     *timetable.Grid
	Error    string
}

type blockView struct {
	timetable.Block
	Style template.CSS
}

type rowView struct {
	Label string
	Cells [][]blockView
}

// view is the data every template receives
type view struct {
	Title       string
	AppName     string
	Version     string
	Description string
	Error       string

	Schedule *schedule.Schedule
	Student  []Field
	Days     []string
	Rows     []rowView

	Fields []Field
}

func newView(title string) view {
	return view{
		Title:       title,
		AppName:     config.AppName,
		Version:     config.Version,
		Description: config.Description,
	}
}

// HTML writes the timetable page
func HTML(w io.Writer, page Page) error {
	v := newView(config.AppName)
	v.Error = page.Error
	v.Schedule = page.Schedule

	if page.Schedule != nil {
		grid := page.Grid
		if grid == nil {
			grid = timetable.Build(page.Schedule)
		}
		v.Student = StudentFields(page.Schedule.Student)
		v.Days = timetable.DayHeaders()
		v.Rows = rows(grid)
	}

	return execute(w, "timetable", v)
}

func rows(g *timetable.Grid) []rowView {
	days := schedule.Days()
	result := make([]rowView, 0, timetable.Periods)
	for period := 1; period <= timetable.Periods; period++ {
		r := rowView{Label: timetable.PeriodLabel(period), Cells: make([][]blockView, len(days))}
		for d, day := range days {
			for _, b := range g.Cell(period, day) {
				r.Cells[d] = append(r.Cells[d], blockView{
					Block: b,
					Style: template.CSS("background-color: " + b.Color),
				})
			}
		}
		result = append(result, r)
	}
	return result
}

// DetailsHTML writes the details page of one course
func DetailsHTML(w io.Writer, c schedule.Course) error {
	v := newView("Course Details")
	v.Fields = DetailFields(c)
	return execute(w, "details", v)
}

// AboutHTML writes the About page
func AboutHTML(w io.Writer) error {
	return execute(w, "about", newView("About "+config.AppName))
}

func execute(w io.Writer, name string, v view) error {
	if err := templates[name].ExecuteTemplate(w, "layout", v); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}
