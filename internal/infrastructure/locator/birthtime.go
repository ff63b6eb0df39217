package locator

import (
	"io/fs"
	"time"

	"github.com/djherbis/times"
)

// CreationTimeFunc returns the creation timestamp of the file at path.
type CreationTimeFunc func(path string, info fs.FileInfo) time.Time

// CreationTime prefers the filesystem birth time, then the inode change
// time, then the modification time.
func CreationTime(path string, info fs.FileInfo) time.Time {
	ts, err := times.Stat(path)
	if err != nil {
		if info == nil {
			return time.Time{}
		}
		ts = times.Get(info)
	}
	switch {
	case ts.HasBirthTime():
		return ts.BirthTime()
	case ts.HasChangeTime():
		return ts.ChangeTime()
	default:
		return ts.ModTime()
	}
}
