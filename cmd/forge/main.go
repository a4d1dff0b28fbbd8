//
//   date  : 2025-10-06
//   author: forgenet
//

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/op/go-logging"
	"github.com/thecodeteam/goodbye"

	"github.com/forgenet/forge"
)

var VERSION = "0.1-dev"

var logger = logging.MustGetLogger("forge")

func init() {
	logging.SetFormatter(logging.MustStringFormatter(
		`%{color}%{time:06-01-02 15:04:05.000} %{level:.4s} @%{shortfile}%{color:reset} %{message}`,
	))
	logging.SetBackend(logging.NewLogBackend(os.Stdout, "", 0))
}

func main() {
	version := flag.Bool("version", false, "Get version info")
	debug := flag.Bool("debug", false, "Print debug info")
	config := flag.String("config", "", "config file")
	ping := flag.String("ping", "", "send ICMP echo requests to this host")
	probe := flag.String("probe", "", "send TCP SYN probes to this host")
	flag.Parse()

	if *version {
		fmt.Printf("Version: %s\n", VERSION)
		os.Exit(1)
	}

	if *debug {
		logging.SetLevel(logging.DEBUG, "forge")
	} else {
		logging.SetLevel(logging.INFO, "forge")
	}

	var source interface{} = []byte{}
	if *config != "" {
		logger.Infof("using config file: %v", *config)
		source = *config
	}

	cfg, err := forge.ParseConfig(source)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(2)
	}

	f, err := forge.FromConfig(cfg)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(3)
	}

	// raw sockets and tun routes should not outlive an interrupt
	ctx := context.Background()
	defer goodbye.Exit(ctx, -1)
	goodbye.Notify(ctx)
	goodbye.Register(func(ctx context.Context, s os.Signal) {
		f.Close()
	})

	switch {
	case *ping != "":
		if _, err := f.Ping(*ping); err != nil {
			logger.Error(err.Error())
			os.Exit(4)
		}
	case *probe != "":
		if err := f.Probe(*probe); err != nil {
			logger.Error(err.Error())
			os.Exit(4)
		}
	default:
		flag.Usage()
		os.Exit(1)
	}
}
