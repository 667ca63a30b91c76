package main

import "github.com/keygrep/keygrep/cmd/keygrep"

func main() { keygrep.Execute() }
