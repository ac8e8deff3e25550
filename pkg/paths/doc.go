// Package paths provides centralized path handling for subpack.
//
// It handles:
//
//   - XDG directory defaults (cache, data, config)
//   - The working cache layout (staged archives, result/, apps/, output)
//   - Path validation and containment checks
//
// # Working cache layout
//
//	<cache>/
//	  source.zip          staged base archive
//	  substratum.zip      staged base archive
//	  result/             merged working tree
//	    assets/           assets root for categorized placement
//	  apps/               fetched application packages
//	  dummy.apk           output archive
//
// # Containment
//
// Every caller-supplied relative path that ends up under the working tree
// goes through SecureJoin, which rejects absolute paths and any path that
// resolves outside its root.
package paths
