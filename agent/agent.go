package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/toolkits/pkg/file"

	"flashcat.cloud/nfsmon/api"
	"flashcat.cloud/nfsmon/config"
	"flashcat.cloud/nfsmon/inputs"
	"flashcat.cloud/nfsmon/pkg/cfg"
	"flashcat.cloud/nfsmon/types"

	// auto registry
	_ "flashcat.cloud/nfsmon/inputs/nfs"
	_ "flashcat.cloud/nfsmon/inputs/self_metrics"
)

const inputFilePrefix = "input."

type Agent struct {
	InputFilters map[string]struct{}
	InputReaders map[string]*InputReader
	Server       *api.Server
}

// NewAgent parses the "a:b:c" input filter of the command line.
func NewAgent(inputFilters string) *Agent {
	filters := make(map[string]struct{})
	for _, name := range strings.Split(inputFilters, ":") {
		if name = strings.TrimSpace(name); name != "" {
			filters[name] = struct{}{}
		}
	}

	return &Agent{
		InputFilters: filters,
		InputReaders: make(map[string]*InputReader),
	}
}

func (a *Agent) Start() {
	log.Println("I! agent starting")

	if err := a.startInputs(); err != nil {
		log.Println("E! failed to start inputs:", err)
	}
	a.startHttpAgent()

	log.Println("I! agent started")
}

func (a *Agent) Stop() {
	log.Println("I! agent stopping")

	a.stopHttpAgent()
	for name, r := range a.InputReaders {
		r.Stop()
		delete(a.InputReaders, name)
	}

	log.Println("I! agent stopped")
}

// Reload drops every input and builds them again from the configuration
// directory, so filter policies are replaced as a whole.
func (a *Agent) Reload() {
	log.Println("I! agent reloading")

	a.Stop()
	a.Start()
}

func (a *Agent) FilterPass(name string) bool {
	if len(a.InputFilters) == 0 {
		return true
	}
	_, has := a.InputFilters[name]
	return has
}

func (a *Agent) startInputs() error {
	names, err := getInputsByDirs(config.Config.ConfigDir)
	if err != nil {
		return err
	}

	if len(names) == 0 {
		log.Println("I! no inputs")
		return nil
	}

	for _, name := range names {
		if !a.FilterPass(name) {
			continue
		}

		creator, has := inputs.InputCreators[name]
		if !has {
			log.Println("E! input:", name, "not supported")
			continue
		}

		input := creator()
		if err := cfg.LoadConfigs(path.Join(config.Config.ConfigDir, inputFilePrefix+name), input); err != nil {
			log.Println("E! failed to load configuration of input:", name, "error:", err)
			continue
		}

		if err := input.Init(); err != nil {
			if !errors.Is(err, types.ErrInstancesEmpty) {
				log.Println("E! failed to init input:", name, "error:", err)
			}
			continue
		}

		reader := newInputReader(name, input)
		reader.Start()
		a.InputReaders[name] = reader

		log.Println("I! input:", name, "started")
	}

	return nil
}

// getInputsByDirs lists the inputs configured under dir, one
// sub directory named input.<name> each.
func getInputsByDirs(dir string) ([]string, error) {
	dirs, err := file.DirsUnder(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get dirs under %s : %v", dir, err)
	}

	names := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if strings.HasPrefix(d, inputFilePrefix) && len(d) > len(inputFilePrefix) {
			names = append(names, d[len(inputFilePrefix):])
		}
	}
	sort.Strings(names)

	return names, nil
}

func (a *Agent) startHttpAgent() {
	if config.Config.HTTP == nil || !config.Config.HTTP.Enable || config.Config.TestMode {
		return
	}

	a.Server = api.NewServer(config.Config.HTTP)
	a.Server.Start()
}

func (a *Agent) stopHttpAgent() {
	if a.Server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.Server.Stop(ctx); err != nil {
		log.Println("E! failed to stop http agent:", err)
	}
	a.Server = nil
}
