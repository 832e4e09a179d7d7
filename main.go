package main

import "github.com/sahilmaurya2006/website-security-scanner/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
