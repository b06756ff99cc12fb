package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager"
	"github.com/tedsuo/ifrit"
	"github.com/tedsuo/ifrit/grouper"
	"github.com/tedsuo/ifrit/sigmon"

	"github.com/nimaam/cpanel-exporter/pkg/accounts"
	"github.com/nimaam/cpanel-exporter/pkg/collector"
	"github.com/nimaam/cpanel-exporter/pkg/config"
	"github.com/nimaam/cpanel-exporter/pkg/cpanel"
	"github.com/nimaam/cpanel-exporter/pkg/exporter"
)

var (
	configFilePath string

	logLevels = map[string]lager.LogLevel{
		"DEBUG": lager.DEBUG,
		"INFO":  lager.INFO,
		"ERROR": lager.ERROR,
		"FATAL": lager.FATAL,
	}
)

func init() {
	flag.StringVar(&configFilePath, "config", "", "Location of the config file")
}

var logger = lager.NewLogger("cpanel-exporter")

func initLogger(logLevel string) lager.Logger {
	lagerLogLevel, ok := logLevels[strings.ToUpper(logLevel)]
	if !ok {
		log.Fatal("Invalid log level: ", logLevel)
	}

	logger.RegisterSink(lager.NewWriterSink(os.Stdout, lagerLogLevel))

	return logger
}

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		log.Fatal(fmt.Sprintf("Error loading config file: '%s'. ", configFilePath), err)
	}
	initLogger(cfg.LogLevel)

	// whmapi1 and uapi --user refuse unprivileged callers
	if !cfg.CPanel.DisablePrivilegeCheck && os.Geteuid() != 0 {
		log.Fatal("This exporter must be run as root, because it uses WHM API 1 and UAPI for all accounts")
	}

	client := cpanel.NewClient(
		cpanel.NewExecutor(),
		cfg.CPanel.WHMAPIPath,
		cfg.CPanel.UAPIPath,
		logger.Session("cpanel-api"),
	)

	usageExporter := exporter.New(
		accounts.NewWHMDirectory(client, logger.Session("account-directory")),
		accounts.NewUAPIIdentityResolver(client, logger.Session("identity-resolver")),
		collector.New(client, logger.Session("collector")),
		clock.NewClock(),
		logger.Session("exporter"),
	)

	metricsServer := exporter.NewServer(
		cfg.Server,
		usageExporter,
		logger.Session("server", lager.Data{"host": cfg.Server.Host, "port": cfg.Server.Port}),
	)

	members := []grouper.Member{
		{Name: "metricsServer", Runner: metricsServer},
	}

	group := grouper.NewOrdered(os.Interrupt, members)

	monitor := ifrit.Invoke(sigmon.New(group))
	err = <-monitor.Wait()

	if err != nil {
		logger.Error("process-group-stopped-with-error", err)
		os.Exit(1)
	}
}
