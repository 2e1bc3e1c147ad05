package main

import (
	"flag"
	"fmt"
	"net"
	"strconv"

	"github.com/zzzzer91/gopkg/logx"

	"github.com/eaon/rotating-buffer/internal/config"
	"github.com/eaon/rotating-buffer/internal/stream"
)

// pick returns the named stream, or the first one when no name was given.
func pick(conf *config.Conf, name string) *config.Stream {
	if name == "" && len(conf.Streams) > 0 {
		return conf.Streams[0]
	}
	for _, s := range conf.Streams {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// printValue prints every complete value on its own line. Partial chunks of
// an oversized value stay on the line until the rest of it arrives.
func printValue(value []byte, partial bool) {
	if partial {
		fmt.Print(string(value))
		return
	}
	fmt.Println(string(value))
}

func main() {
	var flags struct {
		confPath   string
		streamName string
		logLevel   int
	}
	flag.StringVar(&flags.confPath, "c", "config.yaml", "config file path")
	flag.StringVar(&flags.streamName, "s", "", "stream name from the config, defaults to the first")
	flag.IntVar(&flags.logLevel, "l", 0, "log level, -1 debug, 0 info ...")
	flag.Parse()

	logx.SetLevel(flags.logLevel)

	conf, err := config.LoadConf(flags.confPath)
	if err != nil {
		logx.Fatal(err)
	}

	s := pick(conf, flags.streamName)
	if s == nil {
		logx.Fatal("no stream named " + flags.streamName)
	}

	buf, err := s.NewBuffer()
	if err != nil {
		logx.Fatal(err)
	}
	c := stream.NewCtx(s.Name, buf, s.Delim(), printValue, nil)

	addr := s.Server + ":" + strconv.Itoa(s.Port)
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		logx.Fatal(err)
	}
	logx.Debug("connected " + addr)

	c.Attach(conn)
	defer c.Reset()

	if err := c.Run(); err != nil {
		logx.Fatal(err)
	}
}
