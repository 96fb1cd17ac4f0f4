// Package assets provides the CSS styles, the HTML page template and the
// client scripts of preview pages.
//
// # Loaders
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - go:embed tree
//	    ├── FilesystemLoader  - custom directory on disk
//	    └── Resolver          - custom first, embedded on ErrNotFound
//
// The converter uses a Resolver, so a custom directory may override a single
// asset (the template, one script) and keep the built-in rest.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/{name}.css
//	├── templates/{name}.html
//	└── scripts/{name}.js
//
// A custom page template must keep the element ids the converter relies on:
// the document container ("content" by default), the TOC container when a
// TOC is requested, "markdown-base64" for the embedded source and
// "mdpreview-config" for the client settings read by the scripts.
//
// # Security
//
// Names are bare file stems. FilesystemLoader resolves symlinks and rejects
// targets outside basePath.
package assets
