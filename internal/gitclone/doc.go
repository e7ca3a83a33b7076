// Package gitclone implements the repository cloning step of repo-setup.
//
// It shells out to the `git` CLI rather than reimplementing the transport:
// clone behavior (authentication helpers, protocol negotiation, progress
// output) should match what the operator gets from running git by hand,
// and the operator needs to be able to retry a failed clone verbatim.
//
// Clone failures are per-URL and never fatal: the cloner reports the
// failure with the exact command and target directory, then moves on to
// the next URL. Only the subset of URLs that cloned successfully is
// handed to the dependency install step.
package gitclone
