package main

import (
	"go.schedpool.org/scheduler/assigner"
	basecmd "go.schedpool.org/scheduler/cmd"
)

func main() {
	basecmd.Run(&assigner.Cmd{}, "schedpool-assigner", "Round-robin host assignment")
}
