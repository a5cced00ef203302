package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/they4kman/broadside/match"
	"github.com/they4kman/broadside/protocol"
	"github.com/they4kman/broadside/transport"
)

var matchConfig = match.NewConfig()
var configPath string
var useHuman = false

var rootCmd = &cobra.Command{
	Use:   "broadside",
	Short: "Play naval combat against a peer over a text connection",
	Long: `broadside is a two-player naval combat game. One peer listens,
the other connects and fires first; both then trade shots until a
fleet is sunk.

Wait for a peer on port 9999
	broadside --mode server --map my.map

Connect to it and play by hand
	broadside --mode client --host localhost --map my.map --human
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfigFile(cmd.Flags())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		configureLogging(matchConfig.Verbose)

		if useHuman {
			matchConfig.Strategy = "human"
		}
		if matchConfig.Seed == 0 {
			matchConfig.Seed = time.Now().UnixNano()
		}

		director, err := newDirector(matchConfig.Strategy, rand.New(rand.NewSource(matchConfig.Seed)))
		if err != nil {
			return err
		}
		matchConfig.Director = director

		_, err = match.Run(matchConfig)
		if errors.Is(err, protocol.ErrRetriesExhausted) {
			fmt.Fprintln(os.Stderr, "Communication failure")
		}
		return err
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadConfigFile overlays the --config file onto the defaults, keeping any
// flag given explicitly on the command line
func loadConfigFile(flags *pflag.FlagSet) error {
	if configPath == "" {
		return nil
	}

	explicit := make(map[string]string)
	flags.Visit(func(flag *pflag.Flag) {
		explicit[flag.Name] = flag.Value.String()
	})

	if err := match.LoadConfigFile(configPath, &matchConfig); err != nil {
		return err
	}

	for name, value := range explicit {
		if err := flags.Set(name, value); err != nil {
			return errors.Wrapf(err, "reapplying --%s", name)
		}
	}
	return nil
}

func configureLogging(verbose bool) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

type roleValue match.Role

func newRoleValue(p *match.Role) *roleValue {
	return (*roleValue)(p)
}

func (roleVal *roleValue) String() string {
	if match.Role(*roleVal) == 0 {
		return ""
	}
	return match.Role(*roleVal).String()
}

func (roleVal *roleValue) Set(value string) error {
	role, err := match.ParseRole(value)
	if err != nil {
		return err
	}
	*roleVal = roleValue(role)
	return nil
}

func (roleVal *roleValue) Type() string {
	return "match.Role"
}

type transportValue struct {
	p *transport.Kind
}

func (transportVal transportValue) String() string {
	return string(*transportVal.p)
}

func (transportVal transportValue) Set(value string) error {
	kind, err := transport.ParseKind(value)
	if err != nil {
		return err
	}
	*transportVal.p = kind
	return nil
}

func (transportVal transportValue) Type() string {
	return "transport.Kind"
}

func init() {
	flags := rootCmd.Flags()

	flags.StringVarP(&configPath, "config", "c", "", "YAML file with settings; flags override it")
	flags.Var(newRoleValue(&matchConfig.Role), "mode", `Role of this peer:
server: wait for the peer to connect
client: connect to the peer and fire first`)
	flags.StringVarP(&matchConfig.MapPath, "map", "m", "", "Map file: 10 lines of 10 characters, '#' marking ship cells")
	flags.StringVar(&matchConfig.Host, "host", matchConfig.Host, "Host to connect to, in client mode")
	flags.IntVarP(&matchConfig.Port, "port", "p", matchConfig.Port, "Port to listen on or connect to")
	flags.BoolVar(&useHuman, "human", false, "Enter shots by hand (same as --strategy human)")
	flags.Var(newStrategyValue(&matchConfig.Strategy), "strategy", `How shots are chosen:
random: any cell not fired at yet
hunt: finish wounded ships, otherwise random
human: prompt for each shot`)
	flags.Var(transportValue{&matchConfig.Transport}, "transport", "Connection type: tcp or ws")
	flags.DurationVar(&matchConfig.ReadTimeout, "timeout", matchConfig.ReadTimeout, "How long to wait for each message from the peer")
	flags.IntVar(&matchConfig.MaxRetries, "retries", matchConfig.MaxRetries, "Failed reads tolerated before giving up")
	flags.Int64Var(&matchConfig.Seed, "seed", 0, "Seed for automated shots (0 picks one from the clock)")
	flags.StringVar(&matchConfig.SavedSnapshotsDir, "snapshots", "", "Directory to save a YAML snapshot of each finished match to")
	flags.BoolVarP(&matchConfig.Verbose, "verbose", "v", false, "Log every message sent and received")
}
