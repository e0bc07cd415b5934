package host

import "errors"

// ErrTypeNotFound is returned by type lookups when no type carries the
// requested name.
var ErrTypeNotFound = errors.New("type not found")

// TypeCode classifies a type descriptor.
type TypeCode int

const (
	TypeCodeUndefined TypeCode = iota
	TypeCodeEnum
	TypeCodeStruct
	TypeCodeUnion
	TypeCodeTypedef
	TypeCodeInt
	TypeCodeChar
	TypeCodeBool
	TypeCodeFloat
	TypeCodeComplex
	TypeCodePointer
	TypeCodeArray
	TypeCodeFunc
	TypeCodeVoid
)

func (c TypeCode) String() string {
	switch c {
	case TypeCodeEnum:
		return "enum"
	case TypeCodeStruct:
		return "struct"
	case TypeCodeUnion:
		return "union"
	case TypeCodeTypedef:
		return "typedef"
	case TypeCodeInt:
		return "int"
	case TypeCodeChar:
		return "char"
	case TypeCodeBool:
		return "bool"
	case TypeCodeFloat:
		return "float"
	case TypeCodeComplex:
		return "complex"
	case TypeCodePointer:
		return "pointer"
	case TypeCodeArray:
		return "array"
	case TypeCodeFunc:
		return "func"
	case TypeCodeVoid:
		return "void"
	}
	return "undefined"
}

// Field is one entry of a type's field collection. Enumerators carry their
// value in EnumVal, struct and union members their offset in ByteOffset.
type Field struct {
	Name       string
	EnumVal    int64
	ByteOffset int64
}

// Type is a descriptor for a type in the debugged program.
type Type interface {
	Name() string
	Code() TypeCode
	// Fields returns the field collection in declaration order. Types
	// without fields return nil.
	Fields() []Field
	String() string
}

// Symbols is a loaded symbol table.
type Symbols interface {
	// LookupType resolves name to a type. Errors for unknown names wrap
	// ErrTypeNotFound.
	LookupType(name string) (Type, error)
	// TypeNames returns every name LookupType accepts.
	TypeNames() []string
	Close() error
}
