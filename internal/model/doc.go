// Package model defines the records miniature reads from and writes to disk.
//
// # Registry
//
// A [RegistryEntry] maps a repository identifier (the "db-repo" URL) to the
// local working copy that backs it. The registry file is a JSON array of
// entries, unique by Repo.
//
// # Package metadata
//
// [PackageMetadata] is the per-package pkg.json file. It drives the tag name
// used on publish:
//
//	root-dir set:   {root-dir}/{version}
//	root-dir empty: {version}
//
// # Manifest
//
// A [Manifest] declares several packages to load in one batch, each one a
// [ManifestEntry] pointing at a repository, a subpath and a version request.
package model
