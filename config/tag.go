package config

import (
	"reflect"
	"strconv"
)

// TagString holds free-form driver options in Go struct-tag syntax,
// e.g. `baud:"115200"`.
type TagString reflect.StructTag

func (d TagString) GetInt(key string, defaultValue int) (int, error) {
	value := reflect.StructTag(d).Get(key)
	if value == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}

func (d TagString) Get(key string) string {
	return reflect.StructTag(d).Get(key)
}
