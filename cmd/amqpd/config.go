// Daemon configuration, loaded from a TOML file the way hekad loads
// HekadConfig (cmd/hekad/config.go) — a single top-level table decoded
// straight into a struct of defaults.
package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type AmqpdConfig struct {
	ListenAddr    string
	DashboardAddr string
	StorageDSN    string
	Maxprocs      int
}

func defaultConfig() *AmqpdConfig {
	return &AmqpdConfig{
		ListenAddr:    "127.0.0.1:5672",
		DashboardAddr: "0.0.0.0:8080",
		StorageDSN:    "",
		Maxprocs:      1,
	}
}

// LoadAmqpdConfig reads filename if it exists and overlays it onto the
// defaults; a missing file is not an error; an on-disk file that fails to
// parse is.
func LoadAmqpdConfig(filename string) (*AmqpdConfig, error) {
	config := defaultConfig()
	if filename == "" {
		return config, nil
	}

	var table struct {
		Amqpd AmqpdConfig
	}
	table.Amqpd = *config

	meta, err := toml.DecodeFile(filename, &table)
	if err != nil {
		if isNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("decoding config file: %s", err)
	}
	_ = meta

	return &table.Amqpd, nil
}

func isNotExist(err error) bool {
	return os.IsNotExist(err)
}
