// Package version exposes build metadata for the talentsearch binary.
//
// The variables are set at build time with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/talentsearch/version.Version=1.2.3 \
//	  -X github.com/ncobase/talentsearch/version.Revision=abc123 \
//	  -X 'github.com/ncobase/talentsearch/version.BuiltAt=$(date -u +%FT%TZ)'"
//
// When they are left unset, GetVersionInfo falls back to the VCS stamp
// embedded by the Go toolchain.
package version
