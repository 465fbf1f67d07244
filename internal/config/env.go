package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
)

// applyEnvOverrides walks the config struct and replaces any field whose
// `env` tag names a set environment variable. The config only carries
// string and int fields; durations stay strings and are parsed where
// they are consumed.
func applyEnvOverrides(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)

		if field.Kind() == reflect.Struct {
			if err := applyEnvOverrides(field.Addr()); err != nil {
				return err
			}
			continue
		}

		key := t.Field(i).Tag.Get("env")
		if key == "" {
			continue
		}
		raw, ok := os.LookupEnv(key)
		if !ok {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(raw)
		case reflect.Int:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("%s: expected an integer, got %q", key, raw)
			}
			field.SetInt(int64(n))
		default:
			return fmt.Errorf("%s: unsupported config field kind %s", key, field.Kind())
		}
	}

	return nil
}
