// Package fragment defines the value type handed to the host application.
//
// A fragment is an immutable pair of text content and a source identifier.
// Every loader in this module produces fragments; nothing in this module
// consumes them.
package fragment

// Fragment is a piece of text plus the identifier of where it came from.
// Values are not mutated after creation.
type Fragment struct {
	Content string
	Source  string
}

// New creates a fragment.
func New(content, source string) Fragment {
	return Fragment{Content: content, Source: source}
}

// String returns the fragment's text content.
func (f Fragment) String() string {
	return f.Content
}
