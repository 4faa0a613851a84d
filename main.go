// Package main provides the entry point for the calculator CLI.
package main

import "yqhp/calculator/cmd"

func main() {
	cmd.Execute()
}
