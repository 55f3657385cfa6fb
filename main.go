package main

import "github.com/julisunkan/CoverWizard/cmd"

func main() {
	cmd.Execute()
}
