package dsl

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorConsumer receives validation errors. Validation never stops at the
// first error; every problem is reported to the consumer.
type ErrorConsumer interface {
	ConsumePropertyError(property, message string)
	ConsumeError(message string)
}

// PropertyError is a single validation problem. Property is empty for errors
// that are not tied to a property.
type PropertyError struct {
	Entity   string
	Property string
	Message  string
}

func (e *PropertyError) Error() string {
	if e.Entity == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Entity, e.Message)
}

// MissingPropertyMessage is the message reported for an unset mandatory
// property.
func MissingPropertyMessage(path string) string {
	return fmt.Sprintf("mandatory '%s' property is not specified", path)
}

// ErrorCollector is an ErrorConsumer that keeps every error in report order.
type ErrorCollector struct {
	errs []*PropertyError
}

func (c *ErrorCollector) ConsumePropertyError(property, message string) {
	c.add("", property, message)
}

func (c *ErrorCollector) ConsumeError(message string) {
	c.add("", "", message)
}

func (c *ErrorCollector) add(entity, property, message string) {
	c.errs = append(c.errs, &PropertyError{Entity: entity, Property: property, Message: message})
}

// Scope returns a consumer that records errors against entity.
func (c *ErrorCollector) Scope(entity string) ErrorConsumer {
	return &scopedCollector{collector: c, entity: entity}
}

func (c *ErrorCollector) Errors() []*PropertyError {
	return c.errs
}

func (c *ErrorCollector) Len() int {
	return len(c.errs)
}

// Err joins the collected errors, or returns nil when there are none.
func (c *ErrorCollector) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	errs := make([]error, len(c.errs))
	for i, e := range c.errs {
		errs[i] = e
	}
	return errors.Join(errs...)
}

type scopedCollector struct {
	collector *ErrorCollector
	entity    string
}

func (s *scopedCollector) ConsumePropertyError(property, message string) {
	s.collector.add(s.entity, property, message)
}

func (s *scopedCollector) ConsumeError(message string) {
	s.collector.add(s.entity, "", message)
}

func (s *scopedCollector) Scope(entity string) ErrorConsumer {
	return &scopedCollector{collector: s.collector, entity: s.entity + "/" + entity}
}

// Scope narrows c to entity when c supports scoping and returns c unchanged
// otherwise.
func Scope(c ErrorConsumer, entity string) ErrorConsumer {
	if s, ok := c.(interface{ Scope(string) ErrorConsumer }); ok {
		return s.Scope(entity)
	}
	return c
}

type variantSelector interface {
	selected() (Variant, bool)
}

// ValidateProperties reports every mandatory property that is unset, either
// through its typed setter or as a raw parameter. Selected compound variants
// are validated in turn, with their property paths prefixed by the compound
// name.
func ValidateProperties(c ErrorConsumer, props []Property, prefix string) {
	for _, p := range props {
		path := prefix + p.Name()
		if p.Mandatory() && !p.IsSet() {
			c.ConsumePropertyError(path, MissingPropertyMessage(path))
		}
		if sel, ok := p.(variantSelector); ok {
			if v, ok := sel.selected(); ok {
				ValidateProperties(c, v.Properties(), path+".")
			}
		}
	}
}

// joinPath builds a scope label such as "Build/steps[0]".
func joinPath(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "/")
}
