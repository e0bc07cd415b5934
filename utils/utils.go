package utils

import (
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set"
)

// GetEnumType names the C integer type backing an enum of the given size.
func GetEnumType(size int64, isSigned bool) string {
	if isSigned {
		switch size {
		case 1:
			return "__int8"
		case 2:
			return "__int16"
		case 4:
			return "__int32"
		case 8:
			return "__int64"
		}
	} else {
		switch size {
		case 1:
			return "__uint8"
		case 2:
			return "__uint16"
		case 4:
			return "__uint32"
		case 8:
			return "__uint64"
		}
	}
	return "__int32"
}

var filterList = mapset.NewSetFromSlice([]interface{}{"__cxx", "__gnu_cxx", "_ZN", "_ZT", "std::"})

// FilterEnumName reports whether an enum name belongs to the toolchain or
// standard library rather than the program, or is empty.
func FilterEnumName(name string) bool {
	if len(name) == 0 || filterList.Contains(name) {
		return true
	}
	for _, p := range filterList.ToSlice() {
		if strings.HasPrefix(name, p.(string)) {
			return true
		}
	}
	return false
}

// FormatEnumValue renders v in hex, truncated to the width of base.
func FormatEnumValue(base string, v int64) string {
	var u uint64
	switch base {
	case "__uint8", "__int8":
		u = uint64(uint8(v))
	case "__uint16", "__int16":
		u = uint64(uint16(v))
	case "__uint32", "__int32":
		u = uint64(uint32(v))
	default:
		u = uint64(v)
	}
	return "0x" + strings.ToUpper(strconv.FormatUint(u, 16))
}
