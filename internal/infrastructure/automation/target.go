package automation

import (
	"strings"

	"github.com/alexisbeaulieu97/xlamctl/internal/domain/addin"
)

// targets reports whether the registered item (name, fullName) is the add-in
// entry refers to. An entry with a full name is matched on it alone because
// several registered add-ins may share a base name. Excel compares both
// without case.
func targets(entry addin.Entry, name, fullName string) bool {
	if entry.FullName != "" {
		return strings.EqualFold(fullName, entry.FullName)
	}
	return strings.EqualFold(name, entry.Name)
}

func entryLabel(entry addin.Entry) string {
	if entry.FullName != "" {
		return entry.FullName
	}
	return entry.Name
}
