// Package dwarftest assembles small DWARF 4 images in memory for tests.
package dwarftest

import (
	"debug/dwarf"
	"encoding/binary"
)

// DW_LANG values.
const (
	LangC99       = 0x0c
	LangCPlusPlus = 0x04
)

// DW_ATE values.
const (
	EncSigned       = 0x05
	EncUnsigned     = 0x07
	EncUnsignedChar = 0x08
)

const (
	abbrevCompileUnit = iota + 1
	abbrevBaseType
	abbrevEnum
	abbrevEnumerator
	abbrevTypedef
	abbrevStruct
	abbrevMember
	abbrevAnonEnum
	abbrevNamespace
	abbrevEnumDecl
	abbrevClass
	abbrevEnumClass
	abbrevSubprogram
	abbrevUnion
)

const (
	formString      = 0x08
	formData1       = 0x0b
	formSdata       = 0x0d
	formRef4        = 0x13
	formFlagPresent = 0x19
)

type attr struct{ at, form byte }

var abbrevs = []struct {
	code     byte
	tag      byte
	children bool
	attrs    []attr
}{
	{abbrevCompileUnit, 0x11, true, []attr{{0x03, formString}, {0x13, formData1}}},
	{abbrevBaseType, 0x24, false, []attr{{0x03, formString}, {0x0b, formData1}, {0x3e, formData1}}},
	{abbrevEnum, 0x04, true, []attr{{0x03, formString}, {0x0b, formData1}, {0x49, formRef4}}},
	{abbrevEnumerator, 0x28, false, []attr{{0x03, formString}, {0x1c, formSdata}}},
	{abbrevTypedef, 0x16, false, []attr{{0x03, formString}, {0x49, formRef4}}},
	{abbrevStruct, 0x13, true, []attr{{0x03, formString}, {0x0b, formData1}}},
	{abbrevMember, 0x0d, false, []attr{{0x03, formString}, {0x49, formRef4}, {0x38, formData1}}},
	{abbrevAnonEnum, 0x04, true, []attr{{0x0b, formData1}, {0x49, formRef4}}},
	{abbrevNamespace, 0x39, true, []attr{{0x03, formString}}},
	{abbrevEnumDecl, 0x04, false, []attr{{0x03, formString}, {0x3c, formFlagPresent}}},
	{abbrevClass, 0x02, true, []attr{{0x03, formString}, {0x0b, formData1}}},
	{abbrevEnumClass, 0x04, true, []attr{{0x03, formString}, {0x0b, formData1}, {0x49, formRef4}, {0x6d, formFlagPresent}}},
	{abbrevSubprogram, 0x2e, true, []attr{{0x03, formString}}},
	{abbrevUnion, 0x17, true, []attr{{0x03, formString}, {0x0b, formData1}}},
}

// unit header: length(4) version(2) abbrev offset(4) address size(1)
const headerSize = 11

// Ref is a unit-relative DIE offset.
type Ref uint32

type Enumerator struct {
	Name string
	Val  int64
}

type Member struct {
	Name   string
	Type   Ref
	Offset byte
}

// Unit is one compile unit under construction. DIEs may only refer to DIEs
// emitted before them.
type Unit struct {
	name string
	lang byte
	base int
	body []byte
}

type Builder struct {
	units []*Unit
}

func (b *Builder) Unit(name string, lang byte) *Unit {
	u := &Unit{name: name, lang: lang}
	// compile unit DIE: code, name, language
	u.base = headerSize + 1 + len(name) + 1 + 1
	b.units = append(b.units, u)
	return u
}

func (u *Unit) off() Ref {
	return Ref(u.base + len(u.body))
}

func (u *Unit) u8(v byte) {
	u.body = append(u.body, v)
}

func (u *Unit) str(s string) {
	u.body = append(u.body, s...)
	u.body = append(u.body, 0)
}

func (u *Unit) ref(r Ref) {
	u.body = binary.LittleEndian.AppendUint32(u.body, uint32(r))
}

func (u *Unit) sleb(v int64) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			u.body = append(u.body, b)
			return
		}
		u.body = append(u.body, b|0x80)
	}
}

func (u *Unit) enumerators(vals []Enumerator) {
	for _, v := range vals {
		u.u8(abbrevEnumerator)
		u.str(v.Name)
		u.sleb(v.Val)
	}
	u.u8(0)
}

func (u *Unit) members(members []Member) {
	for _, m := range members {
		u.u8(abbrevMember)
		u.str(m.Name)
		u.ref(m.Type)
		u.u8(m.Offset)
	}
}

func (u *Unit) BaseType(name string, size, enc byte) Ref {
	r := u.off()
	u.u8(abbrevBaseType)
	u.str(name)
	u.u8(size)
	u.u8(enc)
	return r
}

// Enum emits an enumeration type; an empty name makes it anonymous.
func (u *Unit) Enum(name string, size byte, base Ref, vals ...Enumerator) Ref {
	r := u.off()
	if name == "" {
		u.u8(abbrevAnonEnum)
	} else {
		u.u8(abbrevEnum)
		u.str(name)
	}
	u.u8(size)
	u.ref(base)
	u.enumerators(vals)
	return r
}

func (u *Unit) EnumClass(name string, size byte, base Ref, vals ...Enumerator) Ref {
	r := u.off()
	u.u8(abbrevEnumClass)
	u.str(name)
	u.u8(size)
	u.ref(base)
	u.enumerators(vals)
	return r
}

// EnumDecl emits a forward declaration of an enum.
func (u *Unit) EnumDecl(name string) Ref {
	r := u.off()
	u.u8(abbrevEnumDecl)
	u.str(name)
	return r
}

func (u *Unit) Typedef(name string, typ Ref) Ref {
	r := u.off()
	u.u8(abbrevTypedef)
	u.str(name)
	u.ref(typ)
	return r
}

func (u *Unit) Struct(name string, size byte, members ...Member) Ref {
	r := u.off()
	u.u8(abbrevStruct)
	u.str(name)
	u.u8(size)
	u.members(members)
	u.u8(0)
	return r
}

func (u *Unit) Union(name string, size byte, members ...Member) Ref {
	r := u.off()
	u.u8(abbrevUnion)
	u.str(name)
	u.u8(size)
	u.members(members)
	u.u8(0)
	return r
}

// Class emits a class whose children are members followed by whatever
// nested emits.
func (u *Unit) Class(name string, size byte, nested func(*Unit), members ...Member) Ref {
	r := u.off()
	u.u8(abbrevClass)
	u.str(name)
	u.u8(size)
	u.members(members)
	if nested != nil {
		nested(u)
	}
	u.u8(0)
	return r
}

func (u *Unit) Namespace(name string, nested func(*Unit)) {
	u.u8(abbrevNamespace)
	u.str(name)
	nested(u)
	u.u8(0)
}

func (u *Unit) Subprogram(name string, nested func(*Unit)) {
	u.u8(abbrevSubprogram)
	u.str(name)
	nested(u)
	u.u8(0)
}

func (b *Builder) abbrev() []byte {
	var out []byte
	for _, a := range abbrevs {
		out = append(out, a.code, a.tag)
		if a.children {
			out = append(out, 1)
		} else {
			out = append(out, 0)
		}
		for _, at := range a.attrs {
			out = append(out, at.at, at.form)
		}
		out = append(out, 0, 0)
	}
	return append(out, 0)
}

func (b *Builder) info() []byte {
	var out []byte
	for _, u := range b.units {
		var cu []byte
		cu = append(cu, abbrevCompileUnit)
		cu = append(cu, u.name...)
		cu = append(cu, 0, u.lang)
		cu = append(cu, u.body...)
		cu = append(cu, 0)

		out = binary.LittleEndian.AppendUint32(out, uint32(2+4+1+len(cu)))
		out = binary.LittleEndian.AppendUint16(out, 4)
		out = binary.LittleEndian.AppendUint32(out, 0)
		out = append(out, 8)
		out = append(out, cu...)
	}
	return out
}

// Data decodes the assembled sections.
func (b *Builder) Data() (*dwarf.Data, error) {
	return dwarf.New(b.abbrev(), nil, nil, b.info(), nil, nil, nil, nil)
}

// Sample builds a program with one C and one C++ compile unit:
//
//	// colors.c
//	enum Color { RED = 0, GREEN = 1, BLUE = 2 };
//	typedef enum Color color_t;
//	typedef enum { NORTH, SOUTH } Direction;
//	enum Sign { NEG = -1, ZERO = 0, POS = 1 };
//	enum Fwd;
//	enum Fwd { LATE = 7 };
//	struct point { int x; int y; };
//	typedef struct point point_t;
//	union value { int i; unsigned char c; };
//	int main(void) { enum Local { L = 1 }; }
//
//	// shapes.cpp
//	enum Weekday { MON = 1, TUE = 2 };
//	namespace gfx {
//	enum Shape { CIRCLE = 1, SQUARE = 4 };
//	class Canvas { int w; enum class Mode : unsigned char { FILL, STROKE }; };
//	}
func Sample() (*dwarf.Data, error) {
	var b Builder

	c := b.Unit("colors.c", LangC99)
	cInt := c.BaseType("int", 4, EncSigned)
	cUchar := c.BaseType("unsigned char", 1, EncUnsignedChar)
	cUint := c.BaseType("unsigned int", 4, EncUnsigned)
	color := c.Enum("Color", 4, cUint,
		Enumerator{"RED", 0}, Enumerator{"GREEN", 1}, Enumerator{"BLUE", 2})
	c.Typedef("color_t", color)
	dir := c.Enum("", 4, cUint, Enumerator{"NORTH", 0}, Enumerator{"SOUTH", 1})
	c.Typedef("Direction", dir)
	c.Enum("Sign", 4, cInt, Enumerator{"NEG", -1}, Enumerator{"ZERO", 0}, Enumerator{"POS", 1})
	c.EnumDecl("Fwd")
	c.Enum("Fwd", 4, cUint, Enumerator{"LATE", 7})
	point := c.Struct("point", 8, Member{"x", cInt, 0}, Member{"y", cInt, 4})
	c.Typedef("point_t", point)
	c.Union("value", 4, Member{"i", cInt, 0}, Member{"c", cUchar, 0})
	c.Subprogram("main", func(u *Unit) {
		u.Enum("Local", 4, cUint, Enumerator{"L", 1})
	})

	cc := b.Unit("shapes.cpp", LangCPlusPlus)
	ccInt := cc.BaseType("int", 4, EncSigned)
	ccUchar := cc.BaseType("unsigned char", 1, EncUnsignedChar)
	ccUint := cc.BaseType("unsigned int", 4, EncUnsigned)
	cc.Enum("Weekday", 4, ccUint, Enumerator{"MON", 1}, Enumerator{"TUE", 2})
	cc.Namespace("gfx", func(u *Unit) {
		u.Enum("Shape", 4, ccUint, Enumerator{"CIRCLE", 1}, Enumerator{"SQUARE", 4})
		u.Class("Canvas", 4, func(u *Unit) {
			u.EnumClass("Mode", 1, ccUchar, Enumerator{"FILL", 0}, Enumerator{"STROKE", 1})
		}, Member{"w", ccInt, 0})
	})

	return b.Data()
}
