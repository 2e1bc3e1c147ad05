package main

import (
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zzzzer91/gopkg/logx"

	"github.com/eaon/rotating-buffer/internal/config"
	"github.com/eaon/rotating-buffer/internal/manager"
	"github.com/eaon/rotating-buffer/internal/stream"
)

func runOne(s *config.Stream, metrics *stream.Metrics) error {
	pool := &sync.Pool{
		New: func() interface{} {
			// the strategy and sizes were validated at config load
			buf, err := s.NewBuffer()
			if err != nil {
				logx.Fatal(err)
			}
			return stream.NewCtx(s.Name, buf, s.Delim(), logValue(s.Name), metrics)
		},
	}
	if err := manager.M.Register(s, pool); err != nil {
		return err
	}
	go serve(s)
	return nil
}

func serve(s *config.Stream) {
	l, err := net.Listen("tcp", s.Server+":"+strconv.Itoa(s.Port))
	if err != nil {
		logx.Fatal(err)
	}
	pool := manager.M.CtxPools[s.Name]
	logx.Info("stream " + s.Name + " listening on " + l.Addr().String())
	for {
		conn, err := l.Accept()
		if err != nil {
			logx.Error(err)
			continue
		}
		logx.Debug("accept " + conn.RemoteAddr().String())
		c := pool.Get().(*stream.Ctx)
		c.Attach(conn)
		go handle(pool, c)
	}
}

func handle(pool *sync.Pool, c *stream.Ctx) {
	defer pool.Put(c)
	defer c.Reset()
	if err := c.Run(); err != nil {
		logx.Error(c.Name + ": " + err.Error())
	}
}

func logValue(name string) stream.Handler {
	return func(value []byte, partial bool) {
		if partial {
			logx.Info(name + " value (partial): " + string(value))
			return
		}
		logx.Info(name + " value: " + string(value))
	}
}

func main() {
	var flags struct {
		confPath    string
		logLevel    int
		metricsAddr string
	}
	flag.StringVar(&flags.confPath, "c", "config.yaml", "config file path")
	flag.IntVar(&flags.logLevel, "l", 0, "log level, -1 debug, 0 info ...")
	flag.StringVar(&flags.metricsAddr, "m", ":2112", "prometheus metrics listen address")
	flag.Parse()

	logx.SetLevel(flags.logLevel)

	conf, err := config.LoadConf(flags.confPath)
	if err != nil {
		logx.Fatal(err)
	}

	manager.Init(conf)

	registry := prometheus.NewRegistry()
	metrics := stream.NewMetrics(registry)

	for _, s := range conf.Streams {
		if err := runOne(s, metrics); err != nil {
			logx.Fatal(err)
		}
	}

	go func() {
		http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		if err := http.ListenAndServe(flags.metricsAddr, nil); err != nil {
			logx.Error(err)
		}
	}()

	logx.Info("Server started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
}
