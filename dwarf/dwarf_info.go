package dwarfhelper

import (
	"debug/dwarf"
	"debug/elf"
	"debug/macho"
	"fmt"
	"io"
	"sort"
	"strings"

	"dwarfenum/host"

	"github.com/apex/log"
	"github.com/go-delve/delve/pkg/dwarf/godwarf"
	"github.com/pkg/errors"
)

// DwarfInfo is a symbol table backed by the DWARF sections of one binary.
type DwarfInfo struct {
	file      io.Closer
	data      *dwarf.Data
	types     map[string]indexEntry
	enums     []enumEntry
	typeCache map[dwarf.Offset]godwarf.Type
}

// NewDwarfInfo opens an ELF or Mach-O binary and indexes its types.
func NewDwarfInfo(input string) (*DwarfInfo, error) {
	var (
		file io.Closer
		data *dwarf.Data
	)
	elfFile, err := elf.Open(input)
	if err == nil {
		file = elfFile
		data, err = elfFile.DWARF()
	} else {
		machoFile, merr := macho.Open(input)
		if merr != nil {
			return nil, errors.Wrapf(err, "failed to open %s", input)
		}
		file = machoFile
		data, err = machoFile.DWARF()
	}
	if err != nil {
		file.Close()
		return nil, errors.Wrapf(err, "failed to read DWARF from %s", input)
	}

	info, err := NewFromData(data)
	if err != nil {
		file.Close()
		return nil, errors.Wrapf(err, "failed to index %s", input)
	}
	info.file = file
	log.WithFields(log.Fields{
		"file":  input,
		"types": len(info.types),
		"enums": len(info.enums),
	}).Debug("Loaded symbols")
	return info, nil
}

// NewFromData indexes already decoded DWARF data.
func NewFromData(data *dwarf.Data) (*DwarfInfo, error) {
	info := &DwarfInfo{
		data:      data,
		types:     make(map[string]indexEntry),
		typeCache: make(map[dwarf.Offset]godwarf.Type),
	}
	if err := info.index(); err != nil {
		return nil, err
	}
	return info, nil
}

func (_this *DwarfInfo) Close() error {
	if _this.file == nil {
		return nil
	}
	err := _this.file.Close()
	_this.file = nil
	return err
}

func (_this *DwarfInfo) GetData() *dwarf.Data {
	return _this.data
}

// LookupType resolves a type name the way a C/C++ debugger would: tagged
// names ("enum Color", "struct point") always, plain names for base types,
// typedefs, and for tagged types of languages without a separate tag
// namespace.
func (_this *DwarfInfo) LookupType(name string) (host.Type, error) {
	name = strings.Join(strings.Fields(name), " ")
	e, ok := _this.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: No type named %s.", host.ErrTypeNotFound, name)
	}
	typ, err := _this.readType(e.off)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode type %s", name)
	}
	return &Type{name: stripTag(name), typ: typ}, nil
}

func (_this *DwarfInfo) TypeNames() []string {
	names := make([]string, 0, len(_this.types))
	for n := range _this.types {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (_this *DwarfInfo) readType(off dwarf.Offset) (godwarf.Type, error) {
	return godwarf.ReadType(_this.data, 0, off, _this.typeCache)
}

func stripTag(name string) string {
	for _, tag := range []string{"enum ", "struct ", "union ", "class "} {
		if s, ok := strings.CutPrefix(name, tag); ok {
			return s
		}
	}
	return name
}
