// Command repcount counts repetitions of a two-limb exercise from a
// stream of pose-estimator keypoint frames.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/repcount/internal/api"
	"github.com/banshee-data/repcount/internal/config"
	"github.com/banshee-data/repcount/internal/db"
	"github.com/banshee-data/repcount/internal/monitoring"
	"github.com/banshee-data/repcount/internal/pose"
	"github.com/banshee-data/repcount/internal/posesource"
	"github.com/banshee-data/repcount/internal/rep"
	"github.com/banshee-data/repcount/internal/timeutil"
)

var (
	source     = flag.String("source", "-", "Pose frame source: path, '-' (stdin), udp:<addr>, or serial:<dev>")
	listen     = flag.String("listen", ":8080", "HTTP listen address (empty disables the API)")
	dbFile     = flag.String("db", "repcount.db", "Sqlite database file (empty disables persistence)")
	configFile = flag.String("config", "", "Tuning config JSON file")
	debugMode  = flag.Bool("debug", false, "Save per-tick channel history to CSV on exit")
	exportDir  = flag.String("export-dir", ".", "Directory for CSV history export")
)

// liveSession guards the session for concurrent reads from the HTTP API
// while the frame loop remains the only writer.
type liveSession struct {
	mu        sync.Mutex
	session   *rep.Session
	startedAt time.Time
	tickHz    float64
}

func (ls *liveSession) update(f pose.Frame) (counted bool, err error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.session.Update(f)
}

func (ls *liveSession) snapshotCount() (count, ticks int) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.session.Count(), ls.session.Ticks()
}

func (ls *liveSession) Status() api.SessionStatus {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return api.SessionStatus{
		Count:     ls.session.Count(),
		Ticks:     ls.session.Ticks(),
		StartedAt: ls.startedAt,
		Stats:     rep.ComputeIntervalStats(ls.session.RepTicks(), ls.tickHz),
	}
}

func (ls *liveSession) ChartData() ([]string, [][]float64) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.session.Limbs().Header(), ls.session.Limbs().Rows()
}

func main() {
	flag.Parse()
	monitoring.Verbose = *debugMode

	tuning := config.EmptyTuningConfig()
	if *configFile != "" {
		var err error
		tuning, err = config.LoadTuningConfig(*configFile)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	sessionConfig := tuning.SessionConfig()
	if err := sessionConfig.Validate(); err != nil {
		log.Fatalf("invalid session config: %v", err)
	}

	frames, err := posesource.Open(*source)
	if err != nil {
		log.Fatalf("failed to open pose source %q: %v", *source, err)
	}
	defer frames.Close()

	var database *db.DB
	if *dbFile != "" {
		database, err = db.NewDB(*dbFile)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer database.Close()
	}

	clock := timeutil.RealClock{}
	live := &liveSession{
		session:   rep.NewSession(sessionConfig, clock),
		startedAt: clock.Now(),
		tickHz:    tuning.GetTickHz(),
	}

	if *listen != "" {
		server := api.NewServer(live, database)
		go func() {
			log.Printf("API listening on %s", *listen)
			if err := http.ListenAndServe(*listen, server.Routes()); err != nil {
				log.Fatalf("HTTP server failed: %v", err)
			}
		}()
	}

	// Close the source on SIGINT/SIGTERM; a blocked Next then returns
	// and the loop falls through to session finalisation.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Printf("received %s, ending session", sig)
		frames.Close()
	}()

	runLoop(live, frames)

	finishSession(live, database)
}

func runLoop(live *liveSession, frames posesource.Source) {
	for {
		frame, err := frames.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Printf("pose source ended: %v", err)
			}
			return
		}

		counted, err := live.update(frame)
		if err != nil {
			// Contract violation from the estimator; surface it and stop
			// rather than desynchronising the channels.
			log.Printf("stopping session: %v", err)
			return
		}
		if counted {
			count, ticks := live.snapshotCount()
			log.Printf("rep %d at tick %d", count, ticks)
		}
	}
}

func finishSession(live *liveSession, database *db.DB) {
	status := live.Status()
	log.Printf("session ended: %d reps over %d ticks", status.Count, status.Ticks)
	if status.Stats.Reps >= 2 {
		log.Printf("cadence: %.1f reps/min (mean interval %.2fs ± %.2f ticks)",
			status.Stats.RepsPerMinute, status.Stats.MeanIntervalSecs, status.Stats.StddevTicks)
	}

	if database != nil {
		params, _ := json.Marshal(live.session.Config())
		sessionID, err := database.RecordSession(
			status.StartedAt, time.Now(), status.Ticks, live.session.RepTicks(), string(params))
		if err != nil {
			log.Printf("failed to record session: %v", err)
		} else {
			log.Printf("recorded session %s", sessionID)
		}
	}

	if *debugMode {
		path, err := live.session.SaveHistory(*exportDir)
		if err != nil {
			log.Printf("failed to save history: %v", err)
		} else {
			log.Printf("saved channel history to %s", path)
		}
	}
}
