package capture

import (
	"image"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/facecam-go/domain/geometry"
)

const statsLogInterval = 5 * time.Second

// Service runs a capture loop over a Grabber and keeps the latest buffer.
// Frames are stamped with the sensor rotation and their own dimensions.
type Service struct {
	grabber  Grabber
	rotation geometry.Rotation
	interval time.Duration
	logger   *slog.Logger

	running      atomic.Bool
	latest       atomic.Pointer[Buffer]
	captures     atomic.Uint64
	skipped      atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
	wg           sync.WaitGroup
}

// NewService constructs a capture service. interval is the pause between
// grabs; zero grabs back to back.
func NewService(grabber Grabber, sensorRotation geometry.Rotation, interval time.Duration, logger *slog.Logger) *Service {
	if interval < 0 {
		interval = 0
	}
	return &Service{grabber: grabber, rotation: sensorRotation, interval: interval, logger: logger}
}

// LatestFrame returns the freshest buffer, or the zero Buffer before the first capture.
func (s *Service) LatestFrame() Buffer {
	b := s.latest.Load()
	if b == nil {
		return Buffer{}
	}
	return *b
}

func (s *Service) Running() bool { return s.running.Load() }

func (s *Service) Stats() Stats {
	captures := s.captures.Load()
	total := s.captureNanos.Load()
	var avg time.Duration
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
	}
	latest := s.LatestFrame()
	age := time.Duration(0)
	if !latest.CapturedAt.IsZero() {
		age = time.Since(latest.CapturedAt)
	}
	return Stats{
		Captures:       captures,
		Skipped:        s.skipped.Load(),
		AvgCapture:     avg,
		LastCapture:    latest.CapturedAt,
		LatestFrameAge: age,
		Sequence:       latest.Sequence,
	}
}

// Start launches the capture loop. It waits for a previous loop to exit
// so only one goroutine ever calls the grabber.
func (s *Service) Start() {
	if s.grabber == nil || s.running.Load() {
		return
	}
	s.wg.Wait()
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	s.wg.Add(1)
	go s.loop()
}

// Stop asks the loop to exit after the current grab.
func (s *Service) Stop() { s.running.Store(false) }

// Close stops the loop, waits for it and closes the grabber if it can be closed.
func (s *Service) Close() error {
	s.Stop()
	s.wg.Wait()
	if c, ok := s.grabber.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *Service) loop() {
	defer s.wg.Done()
	defer s.recoverLog()
	logTicker := time.NewTicker(statsLogInterval)
	defer logTicker.Stop()
	for s.running.Load() {
		start := time.Now()
		img, err := s.grabber.Grab()
		if err != nil || img == nil {
			if err != nil && s.logger != nil {
				s.logger.Error("capture grab", "error", err)
			}
			s.skipped.Add(1)
			time.Sleep(time.Millisecond + s.interval)
			continue
		}

		elapsed := time.Since(start)
		s.captureNanos.Add(uint64(elapsed.Nanoseconds()))
		s.captures.Add(1)
		s.latest.Store(&Buffer{
			Image:      img,
			Rotation:   s.rotation,
			Dimensions: dimensionsOf(img),
			Sequence:   s.sequence.Add(1),
			CapturedAt: time.Now(),
		})

		select {
		case <-logTicker.C:
			s.logStats()
		default:
		}

		if s.interval > 0 {
			time.Sleep(s.interval)
		}
	}
}

func (s *Service) recoverLog() {
	if r := recover(); r != nil {
		s.running.Store(false)
		if s.logger != nil {
			s.logger.Error("capture loop panic", "panic", r)
		}
	}
}

func (s *Service) logStats() {
	if s.logger == nil {
		return
	}
	stats := s.Stats()
	s.logger.Debug("capture.stats",
		"captures", stats.Captures,
		"skipped", stats.Skipped,
		"avg_capture", stats.AvgCapture,
		"age", stats.LatestFrameAge,
	)
}

func dimensionsOf(img image.Image) geometry.Dimensions {
	b := img.Bounds()
	return geometry.Dims(b.Dx(), b.Dy())
}

var _ FrameSource = (*Service)(nil)
var _ Lifecycle = (*Service)(nil)
