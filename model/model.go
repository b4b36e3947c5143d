// Package model contains abstract data models.
package model

import (
	"strings"
	"time"

	"github.com/blang/semver/v4"
)

// Tag is a release tag read from the repository history.
type Tag struct {
	Hash string    `json:"hash"`
	Date time.Time `json:"date"`
	Name string    `json:"name"`
}

// Semver returns the version encoded in the tag name, ignoring any leading
// non-numeric prefix such as "dev" or "v".
func (t *Tag) Semver() (semver.Version, error) {
	return semver.Parse(strings.TrimLeft(t.Name, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"))
}
