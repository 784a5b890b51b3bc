// Package assets provides the CSS style and cover template used to lay out
// the policy document.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in style and cover, compiled in
//	    ├── FilesystemLoader  - overrides from a directory on disk
//	    └── AssetResolver     - custom first, embedded on not-found
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}.html      # e.g. cover.html
//
// Asset names are validated so they cannot traverse out of basePath.
package assets
