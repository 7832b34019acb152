package main

import "moneyflow/internal/cli"

func main() {
	cli.Execute()
}
