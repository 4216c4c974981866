package main

import "github.com/engagesphere/engagesphere-backend/cmd"

func main() {
	cmd.Execute()
}
