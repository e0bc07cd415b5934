// Package printenum provides the print-enum command, which prints each
// enumerator of an enumeration type as "<name> = <value>".
//
// Importing the package registers the command with the host.
package printenum

import (
	"errors"
	"fmt"
	"strings"

	"dwarfenum/host"
)

const Name = "print-enum"

var (
	ErrInvalidUsage = errors.New("invalid usage")
	ErrTypeNotFound = errors.New("type not found")
	ErrNotAnEnum    = errors.New("not an enum")
)

// Error is a user-facing print-enum failure. Kind is one of the Err*
// sentinels above; Type is the type string the failure refers to.
type Error struct {
	Kind error
	Type string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrInvalidUsage:
		return "Usage: " + Name + " type"
	case ErrTypeNotFound:
		return "type " + e.Type + " not found"
	case ErrNotAnEnum:
		return "type " + e.Type + " is not an enum"
	}
	return fmt.Sprintf("%s: %v", Name, e.Kind)
}

func (e *Error) Unwrap() error { return e.Kind }

var Command = &host.Command{
	Name:     Name,
	Doc:      "Prints each of the enumerated values defined by an enum.\nUsage: " + Name + " type",
	Category: host.CategoryData,
	Complete: host.CompleteExpression,
	Invoke:   invoke,
}

func init() {
	host.MustRegister(Command)
}

func invoke(in *host.Interpreter, arg string, _ bool) error {
	t, err := Resolve(in, arg)
	if err != nil {
		return err
	}
	return Print(in, t)
}

// TypeLookup is the part of the host print-enum resolves types through.
type TypeLookup interface {
	LookupType(name string) (host.Type, error)
}

// Resolve finds the enumeration type named typename. A name that is not
// found as given is retried as "enum <typename>", which is how C debug
// information names tagged enums. A name that resolves to anything other
// than an enum is rejected without retrying.
func Resolve(l TypeLookup, typename string) (host.Type, error) {
	if strings.TrimSpace(typename) == "" {
		return nil, &Error{Kind: ErrInvalidUsage}
	}

	t, err := l.LookupType(typename)
	if err != nil {
		if !errors.Is(err, host.ErrTypeNotFound) {
			return nil, err
		}
		typename = "enum " + typename
		t, err = l.LookupType(typename)
		if err != nil {
			if !errors.Is(err, host.ErrTypeNotFound) {
				return nil, err
			}
			return nil, &Error{Kind: ErrTypeNotFound, Type: typename}
		}
	}

	if t.Code() != host.TypeCodeEnum {
		return nil, &Error{Kind: ErrNotAnEnum, Type: typename}
	}
	return t, nil
}

// Print writes one "<name> = <value>" line per enumerator of t.
func Print(in *host.Interpreter, t host.Type) error {
	for _, f := range t.Fields() {
		if _, err := fmt.Fprintf(in.Out(), "%s = %d\n", f.Name, f.EnumVal); err != nil {
			return err
		}
	}
	return nil
}
