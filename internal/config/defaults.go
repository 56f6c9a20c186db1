package config

import (
	_ "embed"
)

//go:embed defaults/gridpath.yaml
var defaultAppYAML []byte

// DefaultAppConfig returns the built-in configuration.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Search: SearchConfig{
			Speed: SpeedNormal,
		},
		Storage: StorageConfig{
			DBPath: "~/.gridpath/gridpath.db",
		},
		Layouts: LayoutsConfig{
			Dir: "~/.gridpath/layouts",
		},
		SSH: SSHConfig{
			Address:            "0.0.0.0:2323",
			HostKey:            ".ssh/gridpath_ed25519",
			IdleTimeoutMinutes: 10,
		},
		HTTP: HTTPConfig{
			Address: "127.0.0.1:8080",
			GinMode: "release",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
