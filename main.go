package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"pipeheat/calculator"
	"pipeheat/model"
	"pipeheat/recorder"
	"pipeheat/runner"
	"pipeheat/server"
	"pipeheat/weather"
)

var (
	configPath  = flag.String("config", "conf/config.ini", "ini config file")
	pipesPath   = flag.String("pipes", "conf/pipes.json", "pipe definitions")
	weatherPath = flag.String("weather", "conf/weather.csv", "hourly boundary conditions")
	outPath     = flag.String("out", "result.csv", "result csv")
	serve       = flag.Bool("serve", false, "run the websocket server instead of a batch run")
	verbose     = flag.Bool("v", false, "debug logging")
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func main() {
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	file, err := ini.Load(*configPath)
	if err != nil {
		log.WithError(err).Warn("配置文件读取错误，使用默认配置")
		file = ini.Empty()
	}
	solver := calculator.LoadConfig(file)
	runCfg := runner.LoadConfig(file)
	props := calculator.NewFluidLibrary()
	// [fluids] 名称 = 物性表 json 路径
	for _, key := range file.Section("fluids").Keys() {
		if err = props.LoadFluid(key.Name(), key.String()); err != nil {
			log.Fatal(err)
		}
	}

	if *serve {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
		s := server.NewServer(server.LoadConfig(file), upgrader, solver, runCfg, props)
		log.Fatal(s.Serve())
	}

	pipes, err := readPipes(*pipesPath)
	if err != nil {
		log.Fatal(err)
	}
	series, err := weather.Load(*weatherPath)
	if err != nil {
		log.Fatal(err)
	}
	csv := recorder.NewCSV(*outPath)
	r, err := runner.New(runCfg, solver, pipes, props, series, csv)
	if err != nil {
		log.Fatal("configuration errors:\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err = r.Run(ctx); err != nil {
		log.WithError(err).Error("run aborted")
	}
	if err = csv.Close(); err != nil {
		log.Fatal(err)
	}
	log.WithFields(log.Fields{"file": *outPath, "rows": csv.Len()}).Info("results written")
}

func readPipes(path string) ([]model.PipeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pipes []model.PipeConfig
	if err = json.Unmarshal(data, &pipes); err != nil {
		return nil, err
	}
	return pipes, nil
}
