// Copyright 2019 Tad Lebeck
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aaaaalbert/kubernetes-py/pkg/cluster"
	"github.com/aaaaalbert/kubernetes-py/pkg/kube"
	"github.com/jessevdk/go-flags"
	"github.com/op/go-logging"
)

// Build information passed in via ld flags
var (
	BuildID   string
	BuildTime string
	BuildHost string
	BuildJob  string
	Appname   = "kobjctl"
)

// AppCtx contains common top-level options and state
type AppCtx struct {
	OutputFormat string `short:"o" long:"output" description:"Output format control" choice:"json" choice:"table" choice:"yaml" default:"table"`
	ConfigFile   string `short:"c" long:"config" description:"YAML file with the API server connection. The in-cluster configuration is used if not set"`
	TimeoutSecs  int    `short:"t" long:"timeout-seconds" description:"Specify the request timeout in seconds" default:"30"`
	Verbose      bool   `short:"v" long:"verbose" description:"Enable debugging"`
	Transport    kube.Transport
	Config       *kube.Config
	Log          *logging.Logger
	ctx          context.Context
	Emitter
}

var appCtx = &AppCtx{}
var parser = flags.NewParser(appCtx, flags.Default&^flags.PrintErrors)
var outputWriter io.Writer

// newTransport is replaced in tests
var newTransport = func(ac *AppCtx) (kube.Transport, error) {
	var cfg *cluster.K8sConfig
	var err error
	if ac.ConfigFile != "" {
		cfg, err = cluster.LoadConfigFile(ac.ConfigFile)
	} else {
		cfg, err = cluster.InClusterConfig()
	}
	if err != nil {
		return nil, err
	}
	if ac.TimeoutSecs > 0 {
		cfg.TimeoutSecs = ac.TimeoutSecs
	}
	k8s, err := cluster.NewK8s(cfg)
	if err != nil {
		return nil, err
	}
	k8s.SetDebugLogger(ac.Log)
	return k8s, nil
}

func init() {
	outputWriter = os.Stdout
	initParser()
}

func initParser() {
	parser.ShortDescription = Appname
	parser.Usage = "[Application Options]"
	parser.LongDescription = "Development tool to exercise the typed Namespace and PersistentVolume controllers"
	initNamespace()
	initPV()
	initApply()
	initVersion()
}

func commandHandler(command flags.Commander, args []string) error {
	if command == nil {
		return nil
	}
	log := logging.MustGetLogger(Appname)
	if appCtx.Verbose {
		logging.SetLevel(logging.DEBUG, Appname)
	} else {
		logging.SetLevel(logging.INFO, Appname)
	}
	appCtx.Log = log
	t, err := newTransport(appCtx)
	if err != nil {
		return err
	}
	appCtx.Transport = t
	appCtx.Config = kube.NewConfig(t, log)
	if appCtx.ctx == nil {
		appCtx.ctx = context.Background()
	}
	return command.Execute(args)
}

func parseAndRun(args []string) error {
	parser.CommandHandler = commandHandler
	_, err := parser.ParseArgs(args)
	if err != nil {
		return fmt.Errorf("%s", err.Error())
	}
	return nil
}

func main() {
	appCtx.Emitter = &StdoutEmitter{}
	appCtx.ctx = context.Background()
	if err := parseAndRun(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}
	os.Exit(0)
}
