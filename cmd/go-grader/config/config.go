package config

import (
	"os"

	"github.com/koding/multiconfig"
)

// Config defines grader configuration
type Config struct {
	// test suite
	TestFile string `flagUsage:"specifies the test list (json or yaml)" default:".github/classroom/autograding.json"`
	Dir      string `flagUsage:"specifies the working directory of the tests" default:"."`
	Shell    string `flagUsage:"specifies the shell prefix for setup and run commands" default:"/bin/sh -c"`
	Reporter string `flagUsage:"specifies the reporter (auto, github, console)" default:"auto"`
	NoColor  bool   `flagUsage:"disable colored output"`

	// metrics
	MetricsFile   string `flagUsage:"write prometheus metrics of the suite to the text file"`
	EnableMetrics bool   `flagUsage:"enable prometheus metrics endpoint in server mode"`

	// server config
	Serve         bool     `flagUsage:"start the grading http server instead of running the test list"`
	HTTPAddr      string   `flagUsage:"specifies the http binding address" default:":5060"`
	Parallelism   int      `flagUsage:"control the # of suites running concurrently in server mode" default:"1"`
	WorkDirPrefix []string `flagUsage:"specifies allowed work directory prefixes in server mode"`
	AuthToken     string   `flagUsage:"bearer token auth for REST"`

	// logger config
	Release     bool `flagUsage:"release level of logs"`
	Silent      bool `flagUsage:"do not print logs"`
	EnableDebug bool `flagUsage:"enable debug logs"`

	// show version and exit
	Version bool `flagUsage:"show version and exit"`
}

// Load loads config from flag & environment variables
func (c *Config) Load() error {
	cl := multiconfig.MultiLoader(
		&multiconfig.TagLoader{},
		&multiconfig.EnvironmentLoader{
			Prefix:    "GRADER",
			CamelCase: true,
		},
		&multiconfig.FlagLoader{
			CamelCase: true,
			EnvPrefix: "GRADER",
		},
	)
	if os.Getpid() == 1 {
		c.Release = true
	}
	if err := cl.Load(c); err != nil {
		return err
	}
	if c.Parallelism <= 0 {
		c.Parallelism = 1
	}
	return nil
}
