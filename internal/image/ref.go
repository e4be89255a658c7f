package image

import "strings"

// DefaultTag is used when an image reference omits a tag.
const DefaultTag = "latest"

// Ref is a parsed image reference of the form "name[:tag]".
type Ref struct {
	Name string
	Tag  string
}

// ParseRef splits a reference string into name and tag, defaulting the tag
// to DefaultTag when absent. Equality of references is textual, per the
// data model: two refs are the same image exactly when String() matches.
func ParseRef(s string) Ref {
	if name, tag, ok := strings.Cut(s, ":"); ok {
		return Ref{Name: name, Tag: tag}
	}
	return Ref{Name: s, Tag: DefaultTag}
}

// String renders the reference back to "name:tag" form.
func (r Ref) String() string {
	return r.Name + ":" + r.Tag
}
