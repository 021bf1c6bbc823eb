package main

import "github.com/gatehouse-dev/gatehouse/cmd/gatehouse/cmd"

func main() {
	cmd.Execute()
}
