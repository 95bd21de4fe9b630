package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("wyvern")

var (
	buildVersion = "(devel)"

	configPath = flag.String("config", "", "optional TOML engine-options file")
	version    = flag.Bool("version", false, "only print version and exit")
)

// EngineConfig holds the startup defaults cmd/wyvern reads from an
// optional TOML file; the UCI "setoption" command can override both
// later.
type EngineConfig struct {
	Chess960 bool `toml:"chess960"`
	HashMB   int  `toml:"hash_mb"`
}

func loadConfig(path string) EngineConfig {
	cfg := EngineConfig{HashMB: 16}
	if path == "" {
		return cfg
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		log.Warningf("failed to read config %q: %v", path, err)
	}
	return cfg
}

func main() {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	logging.SetBackend(backend)
	logging.SetFormatter(logging.MustStringFormatter(`%{time:15:04:05.000} %{level} %{message}`))

	fmt.Printf("wyvern %v, built with %v, running on %v\n", buildVersion, runtime.Version(), runtime.GOARCH)

	flag.Parse()
	if *version {
		return
	}

	cfg := loadConfig(*configPath)

	bio := bufio.NewReader(os.Stdin)
	u := NewUCI(cfg)
	for {
		line, _, err := bio.ReadLine()
		if err != nil {
			log.Infof("stdin closed: %v", err)
			break
		}
		if err := u.Execute(string(line)); err != nil {
			if err != errQuit {
				log.Errorf("line %q: %v", string(line), err)
			} else {
				break
			}
		}
	}
}
