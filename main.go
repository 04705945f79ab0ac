package main

import "github.com/parkinsense/symptom-engine/cmd"

func main() {
	cmd.Execute()
}
