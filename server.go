package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"polygon-acreage/internal/calculator"
	"polygon-acreage/internal/config"
	"polygon-acreage/internal/kml"
	"polygon-acreage/internal/logging"
	"polygon-acreage/internal/metrics"
	"polygon-acreage/internal/pipeline"
	"polygon-acreage/internal/report"
)

// === Job System ===

type JobStatus string

const (
	StatusRunning JobStatus = "running"
	StatusDone    JobStatus = "done"
	StatusEmpty   JobStatus = "empty"
	StatusError   JobStatus = "error"
)

type JobResult struct {
	Polygons   int     `json:"polygons"`
	TotalAcres float64 `json:"total_acres"`
	Output     string  `json:"output"`   // Full path
	Filename   string  `json:"filename"` // Just filename for download
}

type Job struct {
	ID        string
	Status    JobStatus
	Logs      []string
	Progress  int // 0-100
	Result    *JobResult
	Error     string
	Mutex     sync.RWMutex
	CreatedAt time.Time
}

func NewJob() *Job {
	return &Job{
		ID:        uuid.New().String(),
		Status:    StatusRunning,
		Logs:      []string{},
		CreatedAt: time.Now(),
	}
}

func (j *Job) Log(msg string) {
	j.Mutex.Lock()
	defer j.Mutex.Unlock()
	ts := time.Now().Format("15:04:05")
	j.Logs = append(j.Logs, fmt.Sprintf("[%s] %s", ts, msg))
}

func (j *Job) SetProgress(current, total int, msg string) {
	j.Mutex.Lock()
	defer j.Mutex.Unlock()
	if total > 0 {
		j.Progress = int(float64(current) / float64(total) * 100)
	}
	if msg != "" {
		ts := time.Now().Format("15:04:05")
		j.Logs = append(j.Logs, fmt.Sprintf("[%s] %s", ts, msg))
	}
}

func (j *Job) finish(status JobStatus, msg string) {
	j.Mutex.Lock()
	defer j.Mutex.Unlock()
	j.Status = status
	if status == StatusError {
		j.Error = msg
		j.Logs = append(j.Logs, "[ERROR] "+msg)
	} else if msg != "" {
		ts := time.Now().Format("15:04:05")
		j.Logs = append(j.Logs, fmt.Sprintf("[%s] %s", ts, msg))
	}
	if status != StatusRunning {
		j.Progress = 100
	}
	metrics.JobsTotal.WithLabelValues(string(status)).Inc()
}

// === Server ===

type server struct {
	cfg *config.Config
	log *slog.Logger

	jobs    map[string]*Job
	jobLock sync.RWMutex
	wg      sync.WaitGroup
}

func newServer(cfg *config.Config, log *slog.Logger) *server {
	return &server{
		cfg:  cfg,
		log:  log,
		jobs: make(map[string]*Job),
	}
}

func (s *server) getJob(id string) *Job {
	s.jobLock.RLock()
	defer s.jobLock.RUnlock()
	return s.jobs[id]
}

func (s *server) addJob(job *Job) {
	s.jobLock.Lock()
	s.jobs[job.ID] = job
	s.jobLock.Unlock()
}

// maxUploadBytes caps the whole /run request body, multipart framing included.
func (s *server) maxUploadBytes() int64 {
	return int64(s.cfg.Server.MaxUploadMB) << 20
}

func (s *server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = s.maxUploadBytes()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.POST("/run", func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes())
		file, err := c.FormFile("input_file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{
					"ok":    false,
					"error": fmt.Sprintf("File too large, the limit is %d MB.", s.cfg.Server.MaxUploadMB),
				})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Please choose a KML or KMZ file."})
			return
		}

		method := calculator.Method(s.cfg.Area.Method)
		if m := c.PostForm("method"); m != "" {
			method = calculator.Method(m)
		}
		if !method.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": fmt.Sprintf("unknown method %q", method)})
			return
		}
		ext := ".csv"
		if strings.EqualFold(c.PostForm("format"), "xlsx") {
			ext = ".xlsx"
		}

		if err := os.MkdirAll(s.cfg.Server.UploadDir, 0755); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Upload failed."})
			return
		}
		if err := os.MkdirAll(s.cfg.Server.OutputDir, 0755); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Upload failed."})
			return
		}

		base := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(file.Filename))
		inputPath := filepath.Join(s.cfg.Server.UploadDir, base)
		if err := c.SaveUploadedFile(file, inputPath); err != nil {
			s.log.Error("failed to save upload", "file", file.Filename, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Upload failed."})
			return
		}

		stem := strings.TrimSuffix(base, filepath.Ext(base))
		outputPath := filepath.Join(s.cfg.Server.OutputDir, stem+"_acreage"+ext)

		job := NewJob()
		s.addJob(job)

		// Start Processing in Goroutine
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.processJob(job, inputPath, outputPath, method)
		}()

		c.JSON(http.StatusAccepted, gin.H{"ok": true, "job_id": job.ID})
	})

	r.GET("/logs", func(c *gin.Context) {
		job := s.getJob(c.Query("job_id"))
		if job == nil {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Job not found"})
			return
		}

		job.Mutex.RLock()
		logs := make([]string, len(job.Logs))
		copy(logs, job.Logs)
		status := job.Status
		progress := job.Progress
		job.Mutex.RUnlock()

		c.JSON(http.StatusOK, gin.H{
			"ok":       true,
			"logs":     logs,
			"status":   status,
			"progress": progress,
		})
	})

	r.GET("/status", func(c *gin.Context) {
		job := s.getJob(c.Query("job_id"))
		if job == nil {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Job not found"})
			return
		}
		job.Mutex.RLock()
		defer job.Mutex.RUnlock()

		res := gin.H{
			"ok":     true,
			"status": job.Status,
			"error":  job.Error,
		}
		if job.Result != nil {
			res["result"] = job.Result
		}
		c.JSON(http.StatusOK, res)
	})

	r.GET("/download-result/:filename", func(c *gin.Context) {
		filename := filepath.Base(c.Param("filename"))
		target := filepath.Join(s.cfg.Server.OutputDir, filename)
		if _, err := os.Stat(target); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Result not found"})
			return
		}
		c.FileAttachment(target, filename)
	})

	return r
}

func (s *server) processJob(job *Job, inputPath, outputPath string, method calculator.Method) {
	log := s.log.With("job_id", job.ID)
	defer func() {
		if r := recover(); r != nil {
			log.Error("job panicked", "panic", r)
			job.finish(StatusError, fmt.Sprintf("Panic: %v", r))
		}
	}()

	job.Log(fmt.Sprintf("Processing file: %s", filepath.Base(inputPath)))

	data, err := os.ReadFile(inputPath)
	if err != nil {
		job.finish(StatusError, fmt.Sprintf("Could not read upload: %v", err))
		return
	}
	format := kml.Detect(inputPath)
	if format == kml.FormatUnknown {
		format = kml.DetectFromMagic(data)
	}
	job.Log(fmt.Sprintf("Detected %s input.", format))

	res, err := pipeline.Process(data, format, pipeline.Options{
		Method:     method,
		Workers:    s.cfg.Area.Workers,
		OutputPath: outputPath,
		Sheet:      s.cfg.Report.Sheet,
		OnProgress: job.SetProgress,
		OnLog:      job.Log,
	}, log.With("input", filepath.Base(inputPath)))

	switch {
	case err == nil:
		job.Mutex.Lock()
		job.Result = &JobResult{
			Polygons:   len(res.Report.Results),
			TotalAcres: res.Report.TotalAcres,
			Output:     res.OutputPath,
			Filename:   filepath.Base(res.OutputPath),
		}
		job.Mutex.Unlock()
		job.finish(StatusDone, "Report completed.")
	case errors.Is(err, report.ErrNoPolygons):
		job.finish(StatusEmpty, "No polygons found in the KML file.")
	case errors.Is(err, kml.ErrUnsupportedFormat):
		job.finish(StatusError, "Please provide a KMZ or KML file.")
	case errors.Is(err, kml.ErrContainer):
		job.finish(StatusError, "Error extracting KML from KMZ.")
	case kml.IsInputError(err):
		job.finish(StatusError, "Error parsing KML.")
	default:
		job.finish(StatusError, fmt.Sprintf("Could not write report: %v", err))
	}
}

// wait blocks until every started job has finished.
func (s *server) wait() {
	s.wg.Wait()
}

func newServeCmd(configFile *string) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the upload server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, closer, err := logging.Setup(logging.Options{
				Level:  cfg.Log.Level,
				Format: cfg.Log.Format,
				File:   cfg.Log.File,
				Stderr: true,
			})
			if err != nil {
				return err
			}
			defer closer.Close()

			gin.SetMode(gin.ReleaseMode)
			s := newServer(cfg, log)

			addr := fmt.Sprintf(":%d", cfg.Server.Port)
			log.Info("acreage server running", "addr", addr)
			fmt.Fprintf(cmd.OutOrStdout(), "Acreage server running on port %d\n", cfg.Server.Port)
			return s.router().Run(addr)
		},
	}

	cmd.Flags().IntVar(&port, "port", 9595, "listen port")
	return cmd
}
