// Package assets places categorized asset bundles into the working tree.
//
// Every category has a fixed subdirectory under the assets root
// (result/assets):
//
//	overlays        -> assets/overlays
//	audio           -> assets/audio
//	fonts           -> assets/fonts
//	boot animations -> assets/bootanimation
//
// A FileInfo may name an explicit destination relative to the assets root,
// which replaces the category directory. Destinations are always joined
// with containment checks; anything that would land outside the assets
// root is rejected with PATH_ESCAPE.
//
// Requests can be built in code, from CLI flags (ParseSpec) or from a YAML
// request file (LoadRequest):
//
//	overlays:
//	  - path: ./overlays
//	  - path: extra/icon.png
//	    destination: overlays/icons
//	fonts:
//	  - ./fonts
//	audio: ./sounds
package assets
