// Package flavor produces narrative text for generated heroes. The
// Anthropic generator asks a model for prose; the template generator
// renders deterministic class templates. A chain tries each in order,
// so hero generation keeps working when the model is unreachable.
package flavor

import (
	"context"
	"strings"
)

// Subject describes the hero a backstory is written for.
type Subject struct {
	Name    string
	Title   string
	Class   string
	Element string
	Rarity  string
	Origin  string
}

// Generator writes a backstory for a subject.
type Generator interface {
	Backstory(ctx context.Context, s Subject) (string, error)
}

// Templates renders backstories from class-keyed templates with
// {name}, {element}, {element_lower} and {origin} placeholders.
type Templates struct {
	byClass  map[string]string
	fallback string
}

// NewTemplates builds a template generator. Classes are matched case
// insensitively; subjects with no template get the fallback text.
func NewTemplates(byClass map[string]string, fallback string) *Templates {
	return &Templates{byClass: byClass, fallback: fallback}
}

func (t *Templates) Backstory(_ context.Context, s Subject) (string, error) {
	tmpl, ok := t.byClass[strings.ToLower(s.Class)]
	if !ok {
		return t.fallback, nil
	}
	r := strings.NewReplacer(
		"{name}", s.Name,
		"{element}", s.Element,
		"{element_lower}", strings.ToLower(s.Element),
		"{origin}", s.Origin,
	)
	return r.Replace(tmpl), nil
}

// Chain tries each generator in order and returns the first success.
type Chain []Generator

func (c Chain) Backstory(ctx context.Context, s Subject) (string, error) {
	var lastErr error
	for _, g := range c {
		text, err := g.Backstory(ctx, s)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", lastErr
}
