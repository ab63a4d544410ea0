package main

import "github.com/kinoshitayoshihiro/haru/cmd"

func main() {
	cmd.Execute()
}
