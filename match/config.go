package match

import (
	"io"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/they4kman/broadside/game"
	"github.com/they4kman/broadside/protocol"
	"github.com/they4kman/broadside/transport"
	"gopkg.in/yaml.v2"
)

type Role int

const (
	// Server waits for the peer to connect and fire first
	Server Role = iota + 1
	// Client connects to the peer and fires first
	Client
)

var Roles = map[string]Role{
	"server": Server,
	"client": Client,
}

func (role Role) String() string {
	for name, r := range Roles {
		if r == role {
			return name
		}
	}
	return "unset"
}

func ParseRole(s string) (Role, error) {
	if role, ok := Roles[s]; ok {
		return role, nil
	}
	return 0, errors.Errorf("invalid mode %q, expected server or client", s)
}

func (role *Role) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*role = parsed
	return nil
}

type Config struct {
	Role    Role   `yaml:"role"`
	MapPath string `yaml:"map"`

	// Peer to connect to, as a client
	Host string `yaml:"host"`
	// Port to listen on as a server, or to connect to as a client
	Port int `yaml:"port"`

	Transport   transport.Kind `yaml:"transport"`
	ReadTimeout time.Duration  `yaml:"readTimeout"`
	MaxRetries  int            `yaml:"maxRetries"`

	// Shot generation strategy: random, hunt or human
	Strategy string `yaml:"strategy"`
	Seed     int64  `yaml:"seed"`

	// Path to directory where final snapshots of boards should be saved
	SavedSnapshotsDir string `yaml:"snapshots"`

	Verbose bool `yaml:"verbose"`

	Director game.Director `yaml:"-"`
	// Where the boards and the result are printed
	Out io.Writer `yaml:"-"`
}

func NewConfig() Config {
	return Config{
		Host:        "localhost",
		Port:        9999,
		Transport:   transport.TCP,
		ReadTimeout: protocol.DefaultReadTimeout,
		MaxRetries:  protocol.DefaultMaxRetries,
		Strategy:    "random",
		Out:         os.Stdout,
	}
}

// LoadConfigFile overlays the settings of a YAML file onto config
func LoadConfigFile(path string, config *Config) error {
	in, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading config")
	}
	if err := yaml.UnmarshalStrict(in, config); err != nil {
		return errors.Wrapf(err, "parsing config %s", path)
	}
	return nil
}

func (config Config) Validate() error {
	switch {
	case config.Role != Server && config.Role != Client:
		return errors.New("mode is required: server or client")
	case config.MapPath == "":
		return errors.New("map is required")
	case config.Port < 0 || config.Port > 65535:
		return errors.Errorf("invalid port %d", config.Port)
	case config.Role == Client && config.Host == "":
		return errors.New("host is required in client mode")
	}
	return nil
}

// Address is where a server listens or a client connects
func (config Config) Address() string {
	if config.Role == Server {
		return net.JoinHostPort("", strconv.Itoa(config.Port))
	}
	return net.JoinHostPort(config.Host, strconv.Itoa(config.Port))
}

func (config Config) sessionConfig() protocol.SessionConfig {
	return protocol.SessionConfig{
		ReadTimeout: config.ReadTimeout,
		MaxRetries:  config.MaxRetries,
	}
}
