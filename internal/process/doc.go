// Package process cleans up the headless browser's process tree.
package process
