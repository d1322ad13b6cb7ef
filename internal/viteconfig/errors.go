package viteconfig

import "errors"

var (
	// ErrNoConfigObject indicates no defineConfig({...}) or export default {...}
	// object literal was found.
	ErrNoConfigObject = errors.New("no config object literal found")

	// ErrUnterminated indicates a string, template or object ran past the end
	// of the file.
	ErrUnterminated = errors.New("unterminated literal")
)
