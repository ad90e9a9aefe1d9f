// Package main is the entry point for the lisabuild CLI.
package main

import "synthlisa.dev/pkg/lisabuild/cmd"

func main() {
	cmd.Execute()
}
