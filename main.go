package main

import "github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/cmd/big2fit"

func main() {
	big2fit.Execute()
}
