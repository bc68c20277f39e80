// Package project inspects a target directory without running anything in it.
//
// Everything here is textual: tsconfig.json, package.json and bundler
// configs are searched with regular expressions rather than parsed, since
// tsconfig allows comments and trailing commas and bundler configs are code.
package project
