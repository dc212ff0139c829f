package main

import "github.com/sonar-libras/sonar/cmd"

func main() {
	cmd.Execute()
}
