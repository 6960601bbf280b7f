package inputs

import (
	"sort"

	"flashcat.cloud/nfsmon/config"
	"flashcat.cloud/nfsmon/types"
)

type Input interface {
	Name() string
	Init() error
	Drop()
	GetInterval() config.Duration
	Gather(slist *types.SampleList)
	Process(slist *types.SampleList) *types.SampleList
}

type Creator func() Input

var InputCreators = map[string]Creator{}

func Add(name string, creator Creator) {
	InputCreators[name] = creator
}

// Names lists the registered inputs in lexical order.
func Names() []string {
	names := make([]string, 0, len(InputCreators))
	for name := range InputCreators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
