// Package draftfile reads task drafts from YAML and writes tasks back out.
//
// A file holds either a single task or a list under "tasks":
//
//	tasks:
//	  - title: Buy milk
//	    due: 2025-03-12
//	    priority: high
//	    description: two litres
package draftfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/todolist/todo-client/internal/domain"
)

// entry is the on-disk form of one draft.
type entry struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Due         string `yaml:"due,omitempty"`
	Priority    string `yaml:"priority,omitempty"`
}

type document struct {
	Tasks []entry `yaml:"tasks"`
	entry `yaml:",inline"`
}

// Load reads drafts from path; "-" reads stdin.
func Load(path string, now time.Time) ([]domain.TaskDraft, error) {
	if path == "-" {
		return Parse(os.Stdin, now)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open draft file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f, now)
}

// Parse decodes drafts. A missing due date means today; dates use now's location.
func Parse(r io.Reader, now time.Time) ([]domain.TaskDraft, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrNoTasksInFile
		}
		return nil, fmt.Errorf("parse draft file: %w", err)
	}

	entries := doc.Tasks
	if len(entries) == 0 && doc.Title != "" {
		entries = []entry{doc.entry}
	}
	if len(entries) == 0 {
		return nil, domain.ErrNoTasksInFile
	}

	drafts := make([]domain.TaskDraft, 0, len(entries))
	for i, e := range entries {
		d, err := e.draft(now)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

func (e entry) draft(now time.Time) (domain.TaskDraft, error) {
	d := domain.NewTaskDraft(now)
	d.Title = strings.TrimSpace(e.Title)
	d.Description = strings.TrimSpace(e.Description)

	p, err := domain.ParsePriority(e.Priority)
	if err != nil {
		return d, err
	}
	d.Priority = p

	if e.Due != "" {
		due, err := domain.ParseDate(e.Due, now.Location())
		if err != nil {
			return d, err
		}
		d.DueDate = due
	}
	return d, nil
}

// exported is the YAML form of a stored task.
type exported struct {
	ID          int    `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Due         string `yaml:"due"`
	Priority    string `yaml:"priority"`
	Completed   bool   `yaml:"completed"`
}

// Encode writes tasks in a form Parse accepts (ids and completed are ignored on read).
func Encode(w io.Writer, tasks []*domain.Task) error {
	out := struct {
		Tasks []exported `yaml:"tasks"`
	}{Tasks: make([]exported, 0, len(tasks))}

	for _, t := range tasks {
		out.Tasks = append(out.Tasks, exported{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Due:         t.DueDate.Format(domain.DateLayout),
			Priority:    string(t.Priority),
			Completed:   t.Completed,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	return enc.Close()
}
