package testhelpers

import (
	"encoding/json"
	"os"

	. "github.com/onsi/gomega"

	"github.com/nimaam/cpanel-exporter/pkg/config"
)

func BuildTempConfigFile(port int, whmapiPath, uapiPath string) (configFilePath string) {
	exporterConfig := config.Config{
		LogLevel: "DEBUG",
		Server: config.ServerConfig{
			Host:                 "127.0.0.1",
			Port:                 port,
			MaxConcurrentScrapes: 2,
		},
		CPanel: config.CPanelConfig{
			WHMAPIPath:            whmapiPath,
			UAPIPath:              uapiPath,
			DisablePrivilegeCheck: true,
		},
	}
	temporaryConfigFile, err := os.CreateTemp("", "cpanel-exporter-config-")
	Expect(err).ToNot(HaveOccurred())
	configJSON, err := json.Marshal(exporterConfig)
	Expect(err).ToNot(HaveOccurred())
	configFilePath = temporaryConfigFile.Name()
	err = os.WriteFile(configFilePath, configJSON, 0644)
	Expect(err).ToNot(HaveOccurred())
	return configFilePath
}
