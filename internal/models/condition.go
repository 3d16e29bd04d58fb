package models

import (
	"errors"
	"fmt"
)

// Operator is a comparison operator in a condition leaf
type Operator string

// Supported leaf operators
const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpGreaterThan Operator = "gt"
	OpGreaterOrEq Operator = "gte"
	OpLessThan    Operator = "lt"
	OpLessOrEq    Operator = "lte"
	OpIn          Operator = "in"
	OpNotIn       Operator = "not_in"
)

// KnownOperator reports whether op is one of the supported leaf operators
func KnownOperator(op Operator) bool {
	switch op {
	case OpEquals, OpNotEquals, OpGreaterThan, OpGreaterOrEq, OpLessThan, OpLessOrEq, OpIn, OpNotIn:
		return true
	}
	return false
}

// Condition is a boolean expression tree node evaluated against a FieldStore.
// A node is exactly one of:
//   - a leaf: Field, Operator and Value set
//   - All: true iff every child is true (empty list is true)
//   - Any: true iff at least one child is true (empty list is false)
type Condition struct {
	Field    string      `yaml:"field,omitempty" json:"field,omitempty"`
	Operator Operator    `yaml:"operator,omitempty" json:"operator,omitempty"`
	Value    interface{} `yaml:"value,omitempty" json:"value,omitempty"`

	All []Condition `yaml:"all,omitempty" json:"all,omitempty"`
	Any []Condition `yaml:"any,omitempty" json:"any,omitempty"`
}

// IsLeaf reports whether the node is a field comparison rather than a
// combinator. A nil All/Any slice means "not a combinator"; an explicit
// empty list is a valid combinator (All([]) is true, Any([]) is false).
func (c *Condition) IsLeaf() bool {
	return c.All == nil && c.Any == nil
}

// Validate checks the structural invariants of the expression tree.
// A malformed condition is still evaluable (it fails closed), but definition
// files are rejected up front so catalog maintainers see mistakes early.
func (c *Condition) Validate() error {
	if c.All != nil && c.Any != nil {
		return errors.New("condition cannot combine all and any in one node")
	}
	if !c.IsLeaf() {
		if c.Field != "" || c.Operator != "" {
			return errors.New("combinator condition cannot also be a field comparison")
		}
		children := c.All
		if c.Any != nil {
			children = c.Any
		}
		for i := range children {
			if err := children[i].Validate(); err != nil {
				return err
			}
		}
		return nil
	}
	if c.Field == "" {
		return errors.New("leaf condition requires a field name")
	}
	if !KnownOperator(c.Operator) {
		return fmt.Errorf("unknown operator %q for field %q", c.Operator, c.Field)
	}
	switch c.Operator {
	case OpIn, OpNotIn:
		if _, ok := c.Value.([]interface{}); !ok {
			return fmt.Errorf("operator %s on field %q requires a list value", c.Operator, c.Field)
		}
	}
	return nil
}

// String renders the condition for log messages
func (c *Condition) String() string {
	if c == nil {
		return "<always>"
	}
	if c.All != nil {
		return fmt.Sprintf("all(%d)", len(c.All))
	}
	if c.Any != nil {
		return fmt.Sprintf("any(%d)", len(c.Any))
	}
	return fmt.Sprintf("%s %s %v", c.Field, c.Operator, c.Value)
}
