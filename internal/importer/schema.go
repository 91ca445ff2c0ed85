package importer

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

// Payload is the hierarchical document exchanged with the data-fetching
// collaborator: projects with nested sprints and tasks, plus backlog tasks.
type Payload struct {
	Projects     []ProjectPayload `json:"projects"`
	BacklogTasks []TaskPayload    `json:"backlogTasks"`
}

type ProjectPayload struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	Key       string          `json:"key,omitempty"`
	StartDate *string         `json:"startDate,omitempty"`
	EndDate   *string         `json:"endDate,omitempty"`
	Sprints   []SprintPayload `json:"sprints"`
}

type SprintPayload struct {
	ID        string        `json:"id,omitempty"`
	Name      string        `json:"name"`
	StartDate *string       `json:"startDate,omitempty"`
	EndDate   *string       `json:"endDate,omitempty"`
	Status    string        `json:"status,omitempty"`
	Tasks     []TaskPayload `json:"tasks"`
}

type TaskPayload struct {
	ID        string       `json:"id,omitempty"`
	Key       string       `json:"key,omitempty"`
	Name      string       `json:"name"`
	ProjectID string       `json:"projectId,omitempty"` // backlog tasks only
	StartDate *string      `json:"startDate,omitempty"`
	EndDate   *string      `json:"endDate,omitempty"`
	DueDate   *string      `json:"dueDate,omitempty"`
	Assignee  *AssigneeRef `json:"assigneeId,omitempty"`
	Status    StatusRef    `json:"statusId"`
}

// AssigneeRef is a populated assignee reference. It decodes from either a
// bare string (the display name) or an object with id and name/fullName.
type AssigneeRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

func (a *AssigneeRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*a = AssigneeRef{Name: name}
		return nil
	}
	var obj struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		FullName string `json:"fullName"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("assignee: %w", err)
	}
	name := obj.Name
	if name == "" {
		name = obj.FullName
	}
	*a = AssigneeRef{ID: obj.ID, Name: name}
	return nil
}

type StatusRef struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Decode parses a payload document.
func Decode(r io.Reader) (*Payload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	return DecodeBytes(data)
}

func DecodeBytes(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing payload: %w", err)
	}
	return &p, nil
}

// LoadPayload reads and parses a payload file.
func LoadPayload(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data)
}

// Encode writes p as indented JSON.
func Encode(w io.Writer, p *Payload) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing payload: %w", err)
	}
	return nil
}
