package main

import (
	"flag"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/opanaf/donations/cmd/gateway/internal/router"
	"gopkg.in/yaml.v3"
)

var app struct {
	debug  bool
	config string
}

func init() {
	flagset := flag.NewFlagSet("gateway", flag.ExitOnError)
	flagset.BoolVar(&app.debug, "debug", false, "set debug mode")
	flagset.StringVar(&app.config, "config", "config.yaml", "YAML configuration")
	err := flagset.Parse(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	if app.debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	err := godotenv.Load()
	if err != nil {
		log.Println("no .env file, continuing with system environment variables")
	}

	configContents, err := os.ReadFile(app.config)
	if err != nil {
		log.Fatal(err)
	}

	var cfg Config
	err = yaml.Unmarshal(configContents, &cfg)
	if err != nil {
		log.Fatal(err)
	}

	ctrl, config, public, err := cfg.Compile()
	if err != nil {
		log.Fatal(err)
	}
	if config.DB != nil {
		defer config.DB.Close()
	}

	e := gin.Default()
	e.HandleMethodNotAllowed = true
	e.NoMethod(router.NoMethod)
	e.Use(router.RequestId())

	var r = router.Router{
		Gateway: &ctrl,
		Public:  public,
		Base:    e,
	}
	r.Register()

	err = e.Run(cfg.ListenAddress)
	if err != nil {
		log.Fatal(err)
	}
}
