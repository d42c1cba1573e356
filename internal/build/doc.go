// Package build turns a generated site into a deployment-ready build.
//
// A build always starts from scratch: any existing build directory for the site is removed,
// the generated tree is mirrored file by file, HTML, CSS and JS files are passed through the
// whitespace transforms in package minify, and the deployment manifests from package deploy
// are added. The file count in the result covers the mirrored files only.
package build
