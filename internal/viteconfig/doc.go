// Package viteconfig reads and patches vite.config.ts without executing it.
//
// A small lexer that understands string, template and comment syntax locates
// the object literal handed to defineConfig (or exported as default) and
// inspects its top-level properties. Patches insert a property into that
// object; everything else in the file is kept byte for byte.
package viteconfig
