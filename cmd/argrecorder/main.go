// Command argrecorder drives an ftprime.Recorder from a TOML
// configuration and a roster of input IDs: when simplify_interval is
// positive it simplifies the initial roster once, and it then extracts
// a tree sequence, in the style of the teacher binary
// bin/contagion/main.go. It runs no generations of its own, so no
// further simplify calls are made.
package main

import (
	"flag"
	"log"
	"math/rand"
	"runtime"
	"time"

	"github.com/ashander/ftprime"
	"github.com/ashander/ftprime/internal/rlog"
)

func main() {
	numCPUPtr := flag.Int("threads", runtime.NumCPU(), "number of CPU threads")
	loggerType := flag.String("logger", "csv", "data logger type (csv|sqlite)")
	seedNum := flag.Int64("seed", time.Now().UTC().UnixNano(), "random seed. Uses Unix time in nanoseconds as default")
	instance := flag.Int("instance", 1, "instance number, used to namespace log output paths")
	flag.Parse()

	rand.Seed(*seedNum)
	runtime.GOMAXPROCS(*numCPUPtr)

	configPath := flag.Arg(0)
	conf, err := ftprime.LoadRecorderConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	var logger rlog.DataLogger
	switch *loggerType {
	case "csv":
		logger = rlog.NewCSVLogger(conf.LogPath, *instance)
	case "sqlite":
		logger = rlog.NewSQLiteLogger(conf.LogPath, *instance)
	default:
		log.Fatalf("%s is not a valid logger type (csv|sqlite)", *loggerType)
	}
	if err := logger.Init(); err != nil {
		log.Fatalf("error initializing logger: %s", err)
	}
	defer logger.Close()

	roster := ftprime.InitialRoster{Time: 0}
	for i := 0; i < conf.InitialRosterSize; i++ {
		roster.InputIDs = append(roster.InputIDs, i)
	}
	recorder, err := ftprime.NewRecorderFromRoster(roster, conf.SequenceLength)
	if err != nil {
		log.Fatalf("error constructing recorder: %s", err)
	}
	recorder.Timings = &rlog.Timings{}

	start := time.Now()
	if conf.SimplifyInterval > 0 {
		if err := recorder.MarkSamples(roster.InputIDs); err != nil {
			log.Fatalf("error marking initial samples: %s", err)
		}
		if err := recorder.Simplify(); err != nil {
			log.Fatalf("error simplifying initial roster: %s", err)
		}
		if err := logger.WriteCycle(rlog.CycleRecord{
			Cycle:       0,
			NodesAfter:  recorder.NumNodes(),
			EdgesBefore: 0,
			EdgesAfter:  0,
			Duration:    time.Since(start),
		}); err != nil {
			log.Printf("error writing cycle diagnostics: %s", err)
		}
	}

	ts, err := recorder.TreeSequence(nil)
	if err != nil {
		log.Fatalf("error extracting tree sequence: %s", err)
	}
	log.Printf("extracted tree sequence: %d nodes, %d edges, %d sites, %d mutations in %s (sorting %s, simplifying %s)",
		ts.Nodes.NumRows(), ts.Edges.NumRows(), ts.Sites.NumRows(), ts.Mutations.NumRows(),
		time.Since(start), recorder.Timings.Sorting, recorder.Timings.Simplifying)
}
