package main

import (
	"log"
	"os"

	"github.com/toolkits/pkg/runner"
	"gopkg.in/alecthomas/kingpin.v2"

	"flashcat.cloud/nfsmon/agent"
	"flashcat.cloud/nfsmon/config"
	"flashcat.cloud/nfsmon/inputs"
	"flashcat.cloud/nfsmon/writer"
)

var (
	configDir    = kingpin.Flag("configs", "Specify configuration directory.").Envar("NFSMON_CONFIGS").Default("conf").String()
	debugMode    = kingpin.Flag("debug", "Is debug mode?").Envar("NFSMON_DEBUG").Bool()
	testMode     = kingpin.Flag("test", "Is test mode? Print metrics to stdout.").Bool()
	interval     = kingpin.Flag("interval", "Global interval in seconds.").Default("0").Int64()
	inputFilters = kingpin.Flag("inputs", "e.g. nfs:self_metrics").Default("").String()
	listInputs   = kingpin.Flag("list-inputs", "List the supported inputs and exit.").Bool()
)

func main() {
	kingpin.Version(config.Version)
	kingpin.HelpFlag.Short('h')
	kingpin.Parse()

	if *listInputs {
		for _, name := range inputs.Names() {
			os.Stdout.WriteString(name + "\n")
		}
		return
	}

	if err := config.InitConfig(*configDir, *debugMode, *testMode, *interval, *inputFilters); err != nil {
		log.Fatalln("F! failed to init config:", err)
	}

	initLog(config.Config.Log)
	printEnv()

	if err := writer.InitWriters(); err != nil {
		log.Fatalln("F! failed to init writers:", err)
	}

	ag := agent.NewAgent(*inputFilters)
	ag.Start()

	if err := serve(ag); err != nil {
		log.Println("E!", err)
	}

	ag.Stop()
	writer.StopWriters()
	log.Println("I! exited")
}

func printEnv() {
	runner.Init()
	log.Println("I! nfsmon version:", config.Version)
	log.Println("I! runner.binarydir:", runner.Cwd)
	log.Println("I! runner.hostname:", runner.Hostname)
	log.Println("I! runner.fd_limits:", runner.FdLimits())
	log.Println("I! runner.vm_limits:", runner.VMLimits())
}
