package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"

	"github.com/they4kman/broadside/director/human"
	"github.com/they4kman/broadside/director/hunt"
	"github.com/they4kman/broadside/director/random"
	"github.com/they4kman/broadside/game"
)

var strategies = map[string]func(rng *rand.Rand) game.Director{
	"random": func(rng *rand.Rand) game.Director {
		return &random.Director{Rand: rng}
	},
	"hunt": func(rng *rand.Rand) game.Director {
		return &hunt.Director{Rand: rng}
	},
	"human": func(*rand.Rand) game.Director {
		return &human.Director{In: os.Stdin, Out: os.Stdout}
	},
}

func strategyNames() string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func newDirector(strategy string, rng *rand.Rand) (game.Director, error) {
	build, isValid := strategies[strategy]
	if !isValid {
		return nil, fmt.Errorf("invalid strategy %q, expected one of %s", strategy, strategyNames())
	}
	return build(rng), nil
}

type strategyValue string

func newStrategyValue(p *string) *strategyValue {
	return (*strategyValue)(p)
}

func (strategyVal *strategyValue) String() string {
	return string(*strategyVal)
}

func (strategyVal *strategyValue) Set(value string) error {
	if _, isValid := strategies[value]; !isValid {
		return fmt.Errorf("invalid strategy, expected one of %s", strategyNames())
	}
	*strategyVal = strategyValue(value)
	return nil
}

func (strategyVal *strategyValue) Type() string {
	return "strategy"
}
