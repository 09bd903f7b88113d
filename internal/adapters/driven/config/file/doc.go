// Package file provides TOML file-based configuration storage.
package file
