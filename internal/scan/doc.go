// Package scan implements the document health, duplication and security
// scans.
//
// A Generator reads watched documents through an fs.FS rooted at the
// repository, so tests can run every scan against fstest.MapFS. Scans never
// fail because of the documents they inspect: a missing or unreadable file
// becomes a FileProblem in the report and the scan moves on. The only error
// a scan returns is context cancellation.
package scan
