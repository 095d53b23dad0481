// Package file provides file-based implementations of driven port
// interfaces. These adapters persist data under the arsip config
// directory, ~/.arsip by default.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - TokenStore: bearer token persistence with change watching
package file
