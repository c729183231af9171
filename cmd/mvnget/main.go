package main

import "github.com/mvnget/mvnget/pkg/cmd"

func main() {
	cmd.Execute()
}
