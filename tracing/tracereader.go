package tracing

import (
	"database/sql"
	"fmt"
	"strings"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/sarchlab/nicmsg/sim"
)

// TaskQuery selects tasks from a trace. Empty fields are not used as
// criteria.
type TaskQuery struct {
	ID       string
	ParentID string
	Kind     string
	Location string

	// EnableTimeRange selects the tasks that overlap [StartTime, EndTime).
	EnableTimeRange    bool
	StartTime, EndTime sim.VTimeInSec

	// EnableSteps also loads the steps of the selected tasks.
	EnableSteps bool
}

// KindSummary aggregates the tasks of one kind at one location.
type KindSummary struct {
	Location    string
	Kind        string
	Count       int
	AverageTime sim.VTimeInSec
	MaxTime     sim.VTimeInSec
}

// TraceReader reads back the tasks written by a DBTracer.
type TraceReader struct {
	*sql.DB
}

// NewTraceReader creates a reader over an open database.
func NewTraceReader(db *sql.DB) *TraceReader {
	return &TraceReader{DB: db}
}

// OpenTraceReader opens a trace database file.
func OpenTraceReader(filename string) (*TraceReader, error) {
	db, err := sql.Open("sqlite3", "file:"+filename+"?mode=ro")
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open trace %s: %w", filename, err)
	}

	return NewTraceReader(db), nil
}

// ListLocations returns the locations that appear in the trace, sorted.
func (r *TraceReader) ListLocations() ([]string, error) {
	rows, err := r.Query(
		"SELECT DISTINCT Location FROM " + traceTable + " ORDER BY Location")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []string
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, err
		}

		locations = append(locations, l)
	}

	return locations, rows.Err()
}

// ListTasks returns the tasks that match the query, ordered by start time.
func (r *TraceReader) ListTasks(query TaskQuery) ([]Task, error) {
	sqlStr, args := prepareTaskQuery(query)

	rows, err := r.Query(sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		var (
			t          Task
			start, end float64
		)

		err := rows.Scan(&t.ID, &t.ParentID, &t.Kind, &t.What, &t.Location,
			&start, &end)
		if err != nil {
			return nil, err
		}

		t.StartTime = sim.VTimeInSec(start)
		t.EndTime = sim.VTimeInSec(end)
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if query.EnableSteps {
		for i := range tasks {
			tasks[i].Steps, err = r.listSteps(tasks[i].ID)
			if err != nil {
				return nil, err
			}
		}
	}

	return tasks, nil
}

func prepareTaskQuery(query TaskQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)

	add := func(cond string, v ...any) {
		conds = append(conds, cond)
		args = append(args, v...)
	}

	if query.ID != "" {
		add("ID = ?", query.ID)
	}

	if query.ParentID != "" {
		add("ParentID = ?", query.ParentID)
	}

	if query.Kind != "" {
		add("Kind = ?", query.Kind)
	}

	if query.Location != "" {
		add("Location = ?", query.Location)
	}

	if query.EnableTimeRange {
		add("EndTime > ? AND StartTime < ?",
			float64(query.StartTime), float64(query.EndTime))
	}

	sqlStr := "SELECT ID, ParentID, Kind, What, Location, StartTime, EndTime" +
		" FROM " + traceTable
	if len(conds) > 0 {
		sqlStr += " WHERE " + strings.Join(conds, " AND ")
	}

	sqlStr += " ORDER BY StartTime, ID"

	return sqlStr, args
}

func (r *TraceReader) listSteps(taskID string) ([]TaskStep, error) {
	rows, err := r.Query(
		"SELECT What, Time FROM "+traceStepTable+
			" WHERE TaskID = ? ORDER BY Time", taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []TaskStep
	for rows.Next() {
		var (
			s  TaskStep
			tm float64
		)

		if err := rows.Scan(&s.What, &tm); err != nil {
			return nil, err
		}

		s.Time = sim.VTimeInSec(tm)
		steps = append(steps, s)
	}

	return steps, rows.Err()
}

// Summarize groups the tasks by location and kind.
func (r *TraceReader) Summarize() ([]KindSummary, error) {
	rows, err := r.Query(`
		SELECT Location, Kind, COUNT(*),
			AVG(EndTime - StartTime), MAX(EndTime - StartTime)
		FROM ` + traceTable + `
		GROUP BY Location, Kind
		ORDER BY Location, Kind`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []KindSummary
	for rows.Next() {
		var (
			s            KindSummary
			avg, longest float64
		)

		err := rows.Scan(&s.Location, &s.Kind, &s.Count, &avg, &longest)
		if err != nil {
			return nil, err
		}

		s.AverageTime = sim.VTimeInSec(avg)
		s.MaxTime = sim.VTimeInSec(longest)
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}
