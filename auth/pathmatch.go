package auth

import "strings"

// RequiresAuth reports whether path is subject to authentication given the
// configured exclusion patterns. An empty path or an empty exclusion list
// fails closed (auth required). The path is normalized with a trailing slash
// so "/status" and "/status/" are treated identically. Patterns ending in '*'
// match any path sharing their prefix; all other patterns must equal the
// normalized path exactly. The first matching pattern wins.
func RequiresAuth(path string, excluded []string) bool {
	if path == "" || len(excluded) == 0 {
		return true
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	for _, pattern := range excluded {
		if strings.HasSuffix(pattern, "*") {
			if strings.HasPrefix(path, strings.TrimSuffix(pattern, "*")) {
				return false
			}
		} else if pattern == path {
			return false
		}
	}
	return true
}
