package config

import (
	"fmt"
	"reflect"
	"strconv"
)

// String retrieves a string value from the configuration. Non-string
// scalars are formatted, so numbers and booleans convert cleanly.
func (c *Config) String(path string) (string, error) {
	value, ok := c.Find(path)
	if !ok {
		return "", fmt.Errorf("%w: no value at '%s'", ErrNotFound, path)
	}
	if value == nil {
		return "", nil
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return fmt.Sprintf("%v", value), nil
}

// Int64 retrieves an integer value from the configuration, converting
// compatible kinds including json.Number.
func (c *Config) Int64(path string) (int64, error) {
	value, ok := c.Find(path)
	if !ok {
		return 0, fmt.Errorf("%w: no value at '%s'", ErrNotFound, path)
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return int64(rv.Float()), nil
	case reflect.String:
		// json.Number and numeric strings land here
		if i, err := strconv.ParseInt(rv.String(), 10, 64); err == nil {
			return i, nil
		}
		if f, err := strconv.ParseFloat(rv.String(), 64); err == nil {
			return int64(f), nil
		}
	}
	return 0, fmt.Errorf("cannot convert value at '%s' (%T) to int64", path, value)
}

// Bool retrieves a boolean value from the configuration. Strings parse
// through strconv.ParseBool.
func (c *Config) Bool(path string) (bool, error) {
	value, ok := c.Find(path)
	if !ok {
		return false, fmt.Errorf("%w: no value at '%s'", ErrNotFound, path)
	}
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b, nil
		}
	}
	return false, fmt.Errorf("cannot convert value at '%s' (%T) to bool", path, value)
}

// Float64 retrieves a floating-point value from the configuration.
func (c *Config) Float64(path string) (float64, error) {
	value, ok := c.Find(path)
	if !ok {
		return 0, fmt.Errorf("%w: no value at '%s'", ErrNotFound, path)
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.String:
		if f, err := strconv.ParseFloat(rv.String(), 64); err == nil {
			return f, nil
		}
	}
	return 0, fmt.Errorf("cannot convert value at '%s' (%T) to float64", path, value)
}
