package dwarfhelper

import (
	"crypto/sha1"
	"fmt"

	"dwarfenum/utils"

	"github.com/go-delve/delve/pkg/dwarf/godwarf"
)

// Enum is one enumeration definition found in the DWARF.
type Enum struct {
	Name      string
	Size      int64
	Base      string
	EnumClass bool
	EnumType  *godwarf.EnumType
}

// Enums decodes every enumeration definition in declaration order.
// Entries that fail to decode are skipped.
func (_this *DwarfInfo) Enums() []*Enum {
	out := make([]*Enum, 0, len(_this.enums))
	for _, e := range _this.enums {
		typ, err := _this.readType(e.off)
		if err != nil {
			continue
		}
		enumType, ok := typ.(*godwarf.EnumType)
		if !ok {
			continue
		}

		size := enumType.ByteSize
		if size < 0 {
			size = 0
		}
		isSigned := false
		for _, v := range enumType.Val {
			if v.Val < 0 {
				isSigned = true
			}
		}

		out = append(out, &Enum{
			Name:      GetEnumName(enumType),
			Size:      size,
			Base:      utils.GetEnumType(size, isSigned),
			EnumClass: e.enumClass,
			EnumType:  enumType,
		})
	}
	return out
}

// GetEnumName names an enum, making up a stable name from its contents when
// it is anonymous.
func GetEnumName(enumType *godwarf.EnumType) string {
	if enumType.EnumName != "" {
		return enumType.EnumName
	}
	data := sha1.Sum([]byte(enumType.String()))
	return fmt.Sprintf("$%x", data[0:4])
}
