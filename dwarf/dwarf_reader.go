package dwarfhelper

import (
	"debug/dwarf"
)

// DW_LANG values of languages that keep struct/union/enum tags apart from
// ordinary identifiers.
const (
	langC89  = 0x1
	langC    = 0x2
	langC99  = 0xc
	langObjC = 0x10
	langC11  = 0x1d
	langC17  = 0x2c
)

func isCLike(lang int64) bool {
	switch lang {
	case langC89, langC, langC99, langObjC, langC11, langC17:
		return true
	}
	return false
}

type indexEntry struct {
	off  dwarf.Offset
	decl bool
}

type enumEntry struct {
	off       dwarf.Offset
	enumClass bool
}

// scope is one open DIE with children while walking the tree.
type scope struct {
	prefix string
	lang   int64
}

func (_this *DwarfInfo) index() error {
	reader := _this.data.Reader()
	var stack []scope
	cur := func() scope {
		if len(stack) == 0 {
			return scope{}
		}
		return stack[len(stack)-1]
	}

	for {
		entry, err := reader.Next()
		if err != nil {
			return err
		}
		if entry == nil {
			return nil
		}
		if entry.Tag == 0 {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			continue
		}

		sc := cur()
		name, _ := entry.Val(dwarf.AttrName).(string)

		switch entry.Tag {
		case dwarf.TagCompileUnit, dwarf.TagPartialUnit:
			lang, _ := entry.Val(dwarf.AttrLanguage).(int64)
			if entry.Children {
				stack = append(stack, scope{lang: lang})
			}
			continue

		case dwarf.TagNamespace:
			if entry.Children {
				ns := name
				if ns == "" {
					ns = "(anonymous namespace)"
				}
				stack = append(stack, scope{prefix: sc.prefix + ns + "::", lang: sc.lang})
			}
			continue

		case dwarf.TagBaseType, dwarf.TagTypedef, dwarf.TagUnspecifiedType:
			if name != "" {
				_this.add(sc.prefix+name, entry)
			}

		case dwarf.TagEnumerationType:
			if name != "" {
				_this.addTagged("enum", sc, name, entry)
			}
			if !isDeclaration(entry) {
				enumClass, _ := entry.Val(dwarf.AttrEnumClass).(bool)
				_this.enums = append(_this.enums, enumEntry{
					off:       entry.Offset,
					enumClass: enumClass,
				})
			}

		case dwarf.TagStructType, dwarf.TagUnionType, dwarf.TagClassType:
			if name != "" {
				_this.addTagged(tagKeyword(entry.Tag), sc, name, entry)
			}
			if entry.Children {
				// nested types live in the aggregate's scope
				inner := sc
				if name != "" && !isCLike(sc.lang) {
					inner.prefix = sc.prefix + name + "::"
				}
				stack = append(stack, inner)
				continue
			}
		}

		// Types local to functions are not visible to lookups by name.
		if entry.Children {
			reader.SkipChildren()
		}
	}
}

func (_this *DwarfInfo) addTagged(keyword string, sc scope, name string, entry *dwarf.Entry) {
	qualified := sc.prefix + name
	_this.add(keyword+" "+qualified, entry)
	if !isCLike(sc.lang) {
		_this.add(qualified, entry)
	}
}

// add records name unless a definition already owns it. Definitions
// replace declarations.
func (_this *DwarfInfo) add(name string, entry *dwarf.Entry) {
	decl := isDeclaration(entry)
	if old, ok := _this.types[name]; ok && (!old.decl || decl) {
		return
	}
	_this.types[name] = indexEntry{off: entry.Offset, decl: decl}
}

func isDeclaration(entry *dwarf.Entry) bool {
	decl, _ := entry.Val(dwarf.AttrDeclaration).(bool)
	return decl
}

func tagKeyword(tag dwarf.Tag) string {
	switch tag {
	case dwarf.TagUnionType:
		return "union"
	case dwarf.TagClassType:
		return "class"
	}
	return "struct"
}
