package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse   bool
	Include bool
	Macro   bool
	Expand  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("BABYLON_DEBUG_PARSE")
	d.Include = boolEnv("BABYLON_DEBUG_INCLUDE")
	d.Macro = boolEnv("BABYLON_DEBUG_MACRO")
	d.Expand = boolEnv("BABYLON_DEBUG_EXPAND")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Include() bool {
	return d.Include
}
func Macro() bool {
	return d.Macro
}
func Expand() bool {
	return d.Expand
}
