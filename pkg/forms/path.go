package forms

import "strings"

// Get resolves a path of segments to a descendant control, or nil when any
// segment misses. String segments address Group children by name, int
// segments address Array children by position; numeric strings address
// either. A single string argument is split on "." before resolution, and
// an empty or absent path resolves to nil.
func (c *controlBase) Get(path ...any) Control {
	if len(path) == 1 {
		if joined, ok := path[0].(string); ok && strings.Contains(joined, ".") {
			return c.GetWithDelimiter(joined, ".")
		}
	}
	return c.find(path)
}

// GetWithDelimiter resolves a delimiter-joined string path, splitting on
// delim before resolution.
func (c *controlBase) GetWithDelimiter(path, delim string) Control {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, delim)
	segments := make([]any, len(parts))
	for i, part := range parts {
		segments[i] = part
	}
	return c.find(segments)
}

// find walks the tree one segment at a time. A miss at any step yields nil
// for the whole resolution; there is no partial result.
func (c *controlBase) find(segments []any) Control {
	if len(segments) == 0 {
		return nil
	}
	var current Control = c.self
	for _, segment := range segments {
		if current == nil {
			return nil
		}
		current = current.base().self.childNamed(segment)
	}
	return current
}
