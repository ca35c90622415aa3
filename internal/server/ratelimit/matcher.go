package ratelimit

import "strings"

// MatchEndpoint finds the first endpoint configuration matching the given
// path and method. Paths ending with a slash match by prefix, everything
// else matches exactly.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	for i := range configs {
		c := &configs[i]
		if c.Method != "" && c.Method != method {
			continue
		}
		if strings.HasSuffix(c.Path, "/") {
			if strings.HasPrefix(path, c.Path) {
				return c
			}
			continue
		}
		if path == c.Path {
			return c
		}
	}
	return nil
}
