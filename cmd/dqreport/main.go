// Package main is the entry point for the dqreport CLI.
package main

import "dq-report-service/internal/cli"

func main() {
	cli.Execute()
}
