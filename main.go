package main

import "github.com/cguerreroieu2023-ops/Stream-analytics/cmd"

func main() {
	cmd.Execute()
}
