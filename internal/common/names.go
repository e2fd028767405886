package common

import (
	"strings"

	"clr-typesys/utils"
)

// UnknownStr is the string form of unrecognized enum values.
const UnknownStr = "unknown"

// SplitFullName splits "Namespace.Name" at the last dot outside of a nested
// type path. Nested types are separated by '/' and never split.
func SplitFullName(fullName string) (namespace, name string) {
	outer, _ := utils.Unpack2(strings.SplitN(fullName, "/", 2))

	dot := strings.LastIndexByte(outer, '.')
	if dot < 0 {
		return "", fullName
	}

	return fullName[:dot], fullName[dot+1:]
}

// JoinFullName is the inverse of SplitFullName.
func JoinFullName(namespace, name string) string {
	if namespace == "" {
		return name
	}

	return namespace + "." + name
}
