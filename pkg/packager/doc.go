// Package packager assembles the themed output archive.
//
// A run works inside a cache directory:
//
//	<cache>/
//	├── source.zip, substratum.zip   staged base archives
//	├── result/                      working tree, serialized at the end
//	│   └── assets/                  root for categorized placement
//	├── apps/                        fetched application packages
//	└── dummy.apk                    output archive
//
// Both operations follow the same steps: stage the base archives, extract
// them into result/, layer assets on top, then serialize result/ into the
// output archive. DoWork layers whole directories and application assets;
// ProcessPackageRequest places a categorized request under result/assets.
//
// The cache is never cleaned automatically. Two runs must not share a
// cache directory at the same time.
package packager
