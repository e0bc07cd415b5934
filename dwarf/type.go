package dwarfhelper

import (
	"dwarfenum/host"

	"github.com/go-delve/delve/pkg/dwarf/godwarf"
)

// Type adapts a decoded DWARF type to host.Type.
type Type struct {
	name string
	typ  godwarf.Type
}

func (t *Type) Name() string {
	return t.name
}

func (t *Type) Code() host.TypeCode {
	return typeCode(t.typ)
}

func (t *Type) Fields() []host.Field {
	switch tt := t.typ.(type) {
	case *godwarf.EnumType:
		fields := make([]host.Field, 0, len(tt.Val))
		for _, v := range tt.Val {
			fields = append(fields, host.Field{Name: v.Name, EnumVal: v.Val})
		}
		return fields
	case *godwarf.StructType:
		fields := make([]host.Field, 0, len(tt.Field))
		for _, f := range tt.Field {
			fields = append(fields, host.Field{Name: f.Name, ByteOffset: f.ByteOffset})
		}
		return fields
	}
	return nil
}

func (t *Type) String() string {
	return t.typ.String()
}

func (t *Type) Size() int64 {
	return t.typ.Common().ByteSize
}

// DwarfType is the underlying decoded type.
func (t *Type) DwarfType() godwarf.Type {
	return t.typ
}

func typeCode(typ godwarf.Type) host.TypeCode {
	switch tt := typ.(type) {
	case *godwarf.EnumType:
		return host.TypeCodeEnum
	case *godwarf.StructType:
		if tt.Kind == "union" {
			return host.TypeCodeUnion
		}
		return host.TypeCodeStruct
	case *godwarf.TypedefType:
		return host.TypeCodeTypedef
	case *godwarf.IntType, *godwarf.UintType:
		return host.TypeCodeInt
	case *godwarf.CharType, *godwarf.UcharType:
		return host.TypeCodeChar
	case *godwarf.BoolType:
		return host.TypeCodeBool
	case *godwarf.FloatType:
		return host.TypeCodeFloat
	case *godwarf.ComplexType:
		return host.TypeCodeComplex
	case *godwarf.PtrType:
		return host.TypeCodePointer
	case *godwarf.ArrayType:
		return host.TypeCodeArray
	case *godwarf.FuncType:
		return host.TypeCodeFunc
	case *godwarf.VoidType:
		return host.TypeCodeVoid
	}
	return host.TypeCodeUndefined
}
