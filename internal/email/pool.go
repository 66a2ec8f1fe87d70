package email

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pool is a fixed set of body templates paired positionally with subject
// lines. Subjects repeat cyclically when there are fewer of them than bodies.
type Pool struct {
	Greeting string   `yaml:"greeting"`
	Signoff  string   `yaml:"signoff"`
	Subjects []string `yaml:"subjects"`
	Bodies   []string `yaml:"bodies"`
}

// LoadPool reads a template pool from a YAML file.
func LoadPool(path string) (*Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading templates %s: %w", path, err)
	}

	var p Pool
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Pool) validate() error {
	if len(p.Bodies) == 0 {
		return errors.New("templates: at least one body is required")
	}
	if len(p.Subjects) == 0 {
		return errors.New("templates: at least one subject is required")
	}
	return nil
}

// Size returns the number of body templates.
func (p *Pool) Size() int {
	return len(p.Bodies)
}

func (p *Pool) Subject(i int) string {
	return p.Subjects[i%len(p.Subjects)]
}

// Compose renders the subject and full body for template i signed by name.
func (p *Pool) Compose(i int, name string) (subject, body string) {
	parts := make([]string, 0, 3)
	if g := strings.TrimSpace(p.Greeting); g != "" {
		parts = append(parts, g)
	}
	// block scalars in the YAML file carry a trailing newline
	parts = append(parts, strings.TrimSpace(p.Bodies[i]))

	signoff := strings.TrimSpace(name)
	if s := strings.TrimSpace(p.Signoff); s != "" {
		signoff = s + "\n" + signoff
	}
	parts = append(parts, signoff)

	return p.Subject(i), strings.Join(parts, "\n\n")
}
