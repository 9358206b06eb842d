package config

import (
	"fmt"
	"net"
	"net/url"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the subtree at path into target, which must be a
// pointer. Field mapping honors the "config" struct tag with weakly
// typed conversions and the standard hook chain: durations, RFC3339
// times, comma-separated slices, IP addresses, CIDR networks, and
// URLs all decode from strings.
func (c *Config) Scan(path string, target any) error {
	value, ok := c.Find(path)
	if !ok {
		return fmt.Errorf("%w: no value at '%s'", ErrNotFound, path)
	}
	return decodeValue(value, target)
}

// Unmarshal decodes the entire merged tree into target.
func (c *Config) Unmarshal(target any) error {
	return decodeValue(c.Tree(), target)
}

func decodeValue(value, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "config",
		WeaklyTypedInput: true,
		ZeroFields:       true,
		DecodeHook:       decodeHooks(),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(value); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}
	return nil
}

// decodeHooks composes the conversions applied during Scan and
// Unmarshal.
func decodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		stringToNetIPHookFunc(),
		stringToNetIPNetHookFunc(),
		stringToURLHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// stringToNetIPHookFunc converts strings to net.IP values.
func stringToNetIPHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(net.IP{}) {
			return data, nil
		}
		s := data.(string)
		ip := net.ParseIP(s)
		if ip == nil {
			return nil, fmt.Errorf("failed to parse IP address '%s'", s)
		}
		return ip, nil
	}
}

// stringToNetIPNetHookFunc converts CIDR strings to net.IPNet values.
func stringToNetIPNetHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(net.IPNet{}) {
			return data, nil
		}
		s := data.(string)
		_, ipNet, err := net.ParseCIDR(s)
		if err != nil {
			return nil, fmt.Errorf("failed to parse CIDR '%s': %w", s, err)
		}
		return *ipNet, nil
	}
}

// stringToURLHookFunc converts strings to url.URL values.
func stringToURLHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(url.URL{}) {
			return data, nil
		}
		s := data.(string)
		u, err := url.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("failed to parse URL '%s': %w", s, err)
		}
		return *u, nil
	}
}
