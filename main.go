package main

import "github.com/gaurav-prasanna/interviewdigest/cmd"

func main() {
	cmd.Execute()
}
