// Package main provides the entry point for the wordspider CLI.
package main

func main() {
	Execute()
}
