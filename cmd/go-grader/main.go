// Command go-grader runs the autograding test list of a repository and
// reports the result to the CI host. With -serve it starts a http server that
// grades work directories on request.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/criyle/go-grader/cmd/go-grader/config"
	restexecutor "github.com/criyle/go-grader/cmd/go-grader/rest_executor"
	"github.com/criyle/go-grader/cmd/go-grader/version"
	"github.com/criyle/go-grader/judger"
	"github.com/criyle/go-grader/reporter"
	"github.com/criyle/go-grader/testlist"
	"github.com/criyle/go-grader/worker"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/google/shlex"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

var logger *zap.Logger

func main() {
	conf := loadConf()
	if conf.Version {
		fmt.Println(version.Version)
		return
	}
	initLogger(conf)
	if ce := logger.Check(zap.DebugLevel, "Config loaded"); ce != nil {
		ce.Write(zap.String("config", fmt.Sprintf("%+v", conf)))
	}

	shell, err := shlex.Split(conf.Shell)
	if err != nil || len(shell) == 0 {
		logger.Fatal("invalid shell", zap.String("shell", conf.Shell), zap.Error(err))
	}

	if conf.Serve {
		serve(conf, shell)
		logger.Sync()
		return
	}
	code := runSuite(conf, shell)
	logger.Sync()
	os.Exit(code)
}

func loadConf() *config.Config {
	var conf config.Config
	if err := conf.Load(); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		log.Fatalln("load config failed ", err)
	}
	return &conf
}

func initLogger(conf *config.Config) {
	if conf.Silent {
		logger = zap.NewNop()
		return
	}

	var err error
	if conf.Release {
		logger, err = zap.NewProduction()
	} else {
		config := zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		if !conf.EnableDebug {
			config.Level.SetLevel(zap.InfoLevel)
		}
		logger, err = config.Build()
	}
	if err != nil {
		log.Fatalln("init logger failed ", err)
	}
}

func newReporter(conf *config.Config) judger.Reporter {
	switch strings.ToLower(conf.Reporter) {
	case "github":
		return reporter.NewGitHub(os.Stdout)
	case "console":
		return &reporter.Console{Logger: logger}
	default:
		if reporter.IsGitHubActions() {
			return reporter.NewGitHub(os.Stdout)
		}
		return &reporter.Console{Logger: logger}
	}
}

// runSuite runs the test list once and returns the exit code
func runSuite(conf *config.Config, shell []string) int {
	rep := newReporter(conf)
	tests, err := testlist.Load(conf.TestFile)
	if err != nil {
		logger.Error("load test list failed", zap.String("file", conf.TestFile), zap.Error(err))
		rep.Fail(err.Error())
		return 1
	}
	logger.Debug("test list loaded", zap.String("file", conf.TestFile), zap.Int("tests", len(tests)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	noColor := colorDisabled(conf.NoColor)
	j := judger.New(judger.Config{
		Shell:    shell,
		Reporter: rep,
		Logger:   logger,
		Observer: testObserve,
		NoColor:  noColor,
	})
	res := j.Run(ctx, conf.Dir, tests)
	writeSummary(os.Stdout, res, noColor)

	if conf.MetricsFile != "" {
		suiteObserve(res)
		if err := writeMetricsFile(conf.MetricsFile); err != nil {
			logger.Warn("write metrics file failed", zap.String("file", conf.MetricsFile), zap.Error(err))
		}
	}
	if !res.Passed {
		return 1
	}
	return 0
}

type (
	stopFunc func(ctx context.Context) error
	initFunc func() (start func(), cleanUp stopFunc)
)

func serve(conf *config.Config, shell []string) {
	if len(conf.WorkDirPrefix) == 0 {
		logger.Warn("No work directory prefix set, any directory can be graded")
	}
	work := newWorker(conf, shell)
	work.Start()
	logger.Info("Worker started", zap.Int("parallelism", conf.Parallelism))

	servers := []initFunc{
		cleanUpWorker(work),
		initHTTPServer(conf, work),
	}

	// Gracefully shutdown, with signal / HTTP server
	sig := make(chan os.Signal, 1+len(servers))

	stops := []stopFunc{}
	for _, s := range servers {
		start, stop := s()
		if start != nil {
			go func() {
				start()
				sig <- os.Interrupt
			}()
		}
		if stop != nil {
			stops = append(stops, stop)
		}
	}

	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	signal.Reset(syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Shutting Down...")

	ctx, cancel := context.WithTimeout(context.TODO(), time.Second*3)
	defer cancel()

	var eg errgroup.Group
	for _, s := range stops {
		eg.Go(func() error {
			return s(ctx)
		})
	}

	go func() {
		logger.Info("Shutdown Finished", zap.Error(eg.Wait()))
		cancel()
	}()
	<-ctx.Done()
}

func newWorker(conf *config.Config, shell []string) worker.Worker {
	w := worker.New(worker.Config{
		Parallelism:    conf.Parallelism,
		Shell:          shell,
		Logger:         logger,
		TestObserver:   testObserve,
		ResultObserver: resultObserve,
	})
	if conf.EnableMetrics {
		w = newMetricsWorker(w)
	}
	return w
}

func cleanUpWorker(work worker.Worker) initFunc {
	return func() (start func(), cleanUp stopFunc) {
		return nil, func(ctx context.Context) error {
			work.Shutdown()
			logger.Info("Worker shutdown")
			return nil
		}
	}
}

func initHTTPServer(conf *config.Config, work worker.Worker) initFunc {
	return func() (start func(), cleanUp stopFunc) {
		r := initHTTPMux(conf, work)
		srv := http.Server{
			Addr:    conf.HTTPAddr,
			Handler: r,
		}

		return func() {
				logger.Info("Starting http server", zap.String("addr", conf.HTTPAddr))
				if err := srv.ListenAndServe(); errors.Is(err, http.ErrServerClosed) {
					logger.Info("Http server stopped", zap.Error(err))
				} else {
					logger.Error("Http server stopped", zap.Error(err))
				}
			}, func(ctx context.Context) error {
				logger.Info("Http server shutting down")
				return srv.Shutdown(ctx)
			}
	}
}

func initHTTPMux(conf *config.Config, work worker.Worker) http.Handler {
	if conf.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(ginzap.Ginzap(logger, "", false))
	r.Use(ginzap.RecoveryWithZap(logger, true))

	// Metrics Handle
	if conf.EnableMetrics {
		initGinMetrics(r)
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// Version handle
	r.GET("/version", handleVersion)

	// Add auth token
	if conf.AuthToken != "" {
		r.Use(tokenAuth(conf.AuthToken))
		logger.Info("Attach token auth")
	}

	// Rest Handle
	cmdHandle := restexecutor.NewCmdHandle(work, conf.WorkDirPrefix, logger)
	cmdHandle.Register(r)

	return r
}

func initGinMetrics(r *gin.Engine) {
	p := ginprometheus.NewWithConfig(ginprometheus.Config{
		Subsystem:          "gin",
		DisableBodyReading: true,
	})
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		return c.FullPath()
	}
	r.Use(p.HandlerFunc())
}

func tokenAuth(token string) gin.HandlerFunc {
	const bearer = "Bearer "
	return func(c *gin.Context) {
		reqToken := c.GetHeader("Authorization")
		if strings.HasPrefix(reqToken, bearer) && reqToken[len(bearer):] == token {
			c.Next()
			return
		}
		c.AbortWithStatus(http.StatusUnauthorized)
	}
}

func handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"buildVersion": version.Version,
		"goVersion":    runtime.Version(),
		"platform":     runtime.GOARCH,
		"os":           runtime.GOOS,
	})
}
