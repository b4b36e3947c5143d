// Package changelog turns commit history into changelog sections.
//
// Commits titled `Resolve "<description>"` become entries. The entry's
// reference number is borrowed from the commit right after it in history
// (the previous line of a newest-first log), which is where a merge request
// workflow records "!<number>". Entries are grouped by the action word they
// contain (Added, Updated, Fixed), ordered by reference number within a
// group, and prepended to the changelog document under a version heading.
package changelog
