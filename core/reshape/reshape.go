// Package reshape turns description rows into a fixed-width table with a
// journey column and one column per interview round.
package reshape

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/interviewdigest/core"
	"github.com/gaurav-prasanna/interviewdigest/core/parse"
)

// Column names produced by Reshape.
const (
	DescriptionColumn = "description"
	JourneyColumn     = "journey"
	roundPrefix       = "round_"
)

// RoundColumn returns the name of the column holding round n.
func RoundColumn(n int) string {
	return fmt.Sprintf("%s%d", roundPrefix, n)
}

// Cell is one named value of an input row.
type Cell struct {
	Name  string
	Value string
}

// Row is an ordered set of named columns. Only "description" is interpreted;
// every other column passes through unchanged.
type Row []Cell

// Get returns the value of the named column.
func (r Row) Get(name string) (string, bool) {
	for _, c := range r {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// FromInterviews builds input rows from scraped write-ups.
func FromInterviews(items []core.RawInterview) []Row {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, Row{
			{Name: "company", Value: it.Company},
			{Name: "role", Value: it.Role},
			{Name: "title", Value: it.Title},
			{Name: "url", Value: it.URL},
			{Name: DescriptionColumn, Value: it.Description},
		})
	}
	return rows
}

// Record is one output row keyed by column name.
type Record map[string]core.Field

// Table is the reshaped batch. Every record has a value, possibly NotFound,
// for every column in Columns.
type Table struct {
	Columns   []string
	Records   []Record
	MaxRounds int
}

// Header returns the column names in output order: passthrough columns
// first, then journey, then round_1..round_MaxRounds.
func (t Table) Header() []string {
	return t.Columns
}

// Column returns the values of one column, in record order.
func (t Table) Column(name string) []core.Field {
	out := make([]core.Field, len(t.Records))
	for i, rec := range t.Records {
		out[i] = rec[name]
	}
	return out
}

// RoundColumns returns round_1..round_MaxRounds.
func (t Table) RoundColumns() []string {
	cols := make([]string, 0, t.MaxRounds)
	for i := 1; i <= t.MaxRounds; i++ {
		cols = append(cols, RoundColumn(i))
	}
	return cols
}

// Reshape splits each row's description into a journey part and round parts.
// The text before "## Interview Rounds" is the journey; the text after it is
// cut on "### Round" and each chunk becomes one round column with its
// "### Round " prefix restored. A second pass pads every record to the
// batch-wide round count so the table is rectangular.
func Reshape(rows []Row) Table {
	var passthrough []string
	seen := map[string]bool{}
	for _, row := range rows {
		for _, c := range row {
			if c.Name == DescriptionColumn || seen[c.Name] {
				continue
			}
			seen[c.Name] = true
			passthrough = append(passthrough, c.Name)
		}
	}

	t := Table{Records: make([]Record, 0, len(rows))}
	for _, row := range rows {
		rec := Record{}
		for _, c := range row {
			if c.Name != DescriptionColumn {
				rec[c.Name] = core.Found(c.Value)
			}
		}
		desc, _ := row.Get(DescriptionColumn)
		rounds := splitDescription(desc, rec)
		if rounds > t.MaxRounds {
			t.MaxRounds = rounds
		}
		t.Records = append(t.Records, rec)
	}

	t.Columns = append(append(passthrough, JourneyColumn), t.RoundColumns()...)
	for _, rec := range t.Records {
		for _, col := range t.Columns {
			if _, ok := rec[col]; !ok {
				rec[col] = core.NotFound
			}
		}
	}
	return t
}

// splitDescription fills the journey and round cells of rec and returns the
// number of rounds found.
func splitDescription(desc string, rec Record) int {
	journey, rest, hasRounds := strings.Cut(desc, parse.RoundsMarker)
	rec[JourneyColumn] = core.Found(strings.TrimSpace(journey))
	if !hasRounds {
		return 0
	}
	// A second rounds marker ends the rounds section.
	rest, _, _ = strings.Cut(rest, parse.RoundsMarker)

	chunks := strings.Split(rest, parse.RoundMarker)[1:]
	for i, chunk := range chunks {
		rec[RoundColumn(i+1)] = core.Found(parse.RoundMarker + " " + strings.TrimSpace(chunk))
	}
	return len(chunks)
}
