package rasterize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/shihuiarenjinba-png/portfolio-report/pkg/duration"
	"github.com/shihuiarenjinba-png/portfolio-report/pkg/retry"
)

// HTML is a chart handle holding a complete HTML document, for example a
// standalone Plotly or Vega export.
type HTML string

// SVG is a chart handle holding SVG markup.
type SVG string

// BrowserConfig configures the headless Chrome rasterizer.
type BrowserConfig struct {
	// ExecPath overrides Chrome discovery.
	ExecPath string
	// NoSandbox passes --no-sandbox, needed when running as root in containers.
	NoSandbox bool
	// Settle is the wait between loading markup and capturing it, giving
	// chart scripts time to draw.
	Settle time.Duration
	// StartupTimeout bounds launching Chrome.
	StartupTimeout time.Duration
	Logger         *slog.Logger
}

// DefaultBrowserConfig returns the configuration used by the CLI.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		NoSandbox:      true,
		Settle:         duration.BrowserSettle,
		StartupTimeout: duration.BrowserStartup,
	}
}

// captureAttempts covers a tab that crashes or detaches mid-capture; a
// second failure is reported as a chart failure.
const captureAttempts = 2

// Browser renders HTML and SVG chart handles with headless Chrome. Chrome
// is launched on first use and shared by later calls; each chart gets its
// own tab. Call Close to stop the browser.
type Browser struct {
	cfg    BrowserConfig
	logger *slog.Logger

	mu            sync.Mutex
	browserCtx    context.Context
	allocCancel   context.CancelFunc
	browserCancel context.CancelFunc
	startErr      error
}

// NewBrowser returns a browser rasterizer. Chrome is not started yet.
func NewBrowser(cfg BrowserConfig) *Browser {
	if cfg.StartupTimeout <= 0 {
		cfg.StartupTimeout = duration.BrowserStartup
	}
	if cfg.Settle < 0 {
		cfg.Settle = 0
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Browser{cfg: cfg, logger: logger}
}

func (b *Browser) Rasterize(ctx context.Context, chart any, path string, opts Options) error {
	var doc string
	switch v := chart.(type) {
	case HTML:
		doc = string(v)
	case SVG:
		doc = svgDocument(string(v))
	default:
		return ErrUnsupportedChart
	}

	browserCtx, err := b.start()
	if err != nil {
		return err
	}

	d := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = d.Width
	}
	if opts.Height <= 0 {
		opts.Height = d.Height
	}
	if opts.Scale <= 0 {
		opts.Scale = d.Scale
	}

	var buf []byte
	err = retry.Do(ctx, retry.Config{MaxAttempts: captureAttempts, InitDelay: b.cfg.Settle}, func() error {
		var err error
		buf, err = b.capture(ctx, browserCtx, doc, opts)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return retry.Stop(ctxErr)
		}
		if err != nil {
			b.logger.Debug("chart capture failed", slog.String("error", err.Error()))
		}
		return err
	})
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o600)
}

// capture renders doc in a fresh tab and returns the PNG screenshot.
func (b *Browser) capture(ctx, browserCtx context.Context, doc string, opts Options) ([]byte, error) {
	tabCtx, cancel := chromedp.NewContext(browserCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var buf []byte
	err := chromedp.Run(tabCtx,
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height), chromedp.EmulateScale(opts.Scale)),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, doc).Do(ctx)
		}),
		chromedp.Sleep(b.cfg.Settle),
		chromedp.CaptureScreenshot(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("rasterize: chrome: %w", err)
	}
	if len(buf) == 0 {
		return nil, errors.New("rasterize: chrome returned an empty screenshot")
	}
	return buf, nil
}

// start launches Chrome once. A failed launch is remembered so later charts
// fail fast instead of waiting for the startup timeout again.
func (b *Browser) start() (context.Context, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.browserCtx != nil || b.startErr != nil {
		return b.browserCtx, b.startErr
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	if b.cfg.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	if b.cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(b.cfg.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// The first Run launches Chrome and binds it to browserCtx, so the
	// startup bound is applied from outside rather than via a derived context.
	errc := make(chan error, 1)
	go func() { errc <- chromedp.Run(browserCtx) }()

	var err error
	select {
	case err = <-errc:
	case <-time.After(b.cfg.StartupTimeout):
		err = fmt.Errorf("startup exceeded %v", b.cfg.StartupTimeout)
	}
	if err != nil {
		b.shutdown(browserCtx, browserCancel, allocCancel)
		b.startErr = fmt.Errorf("rasterize: launch chrome: %w", err)
		b.logger.Warn("headless chrome unavailable", slog.String("error", err.Error()))
		return nil, b.startErr
	}

	b.logger.Debug("headless chrome started")
	b.browserCtx = browserCtx
	b.browserCancel = browserCancel
	b.allocCancel = allocCancel
	return browserCtx, nil
}

// Close stops Chrome if it was started. It is safe to call more than once.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.browserCtx == nil {
		return nil
	}
	b.shutdown(b.browserCtx, b.browserCancel, b.allocCancel)
	b.browserCtx = nil
	return nil
}

// shutdown cancels the chromedp contexts, force-killing the process tree
// when Chrome does not exit within duration.BrowserShutdown.
func (b *Browser) shutdown(browserCtx context.Context, browserCancel, allocCancel context.CancelFunc) {
	var proc *os.Process
	if c := chromedp.FromContext(browserCtx); c != nil && c.Browser != nil {
		proc = c.Browser.Process()
	}

	done := make(chan struct{})
	go func() {
		browserCancel()
		allocCancel()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(duration.BrowserShutdown):
		killProcessTree(proc)
		b.logger.Warn("chrome shutdown timed out, killed process tree")
	}
}

// ChromeAvailable reports whether a Chrome or Chromium binary can be found.
func ChromeAvailable() bool {
	for _, name := range []string{"chrome", "chromium", "chromium-browser", "google-chrome", "google-chrome-stable"} {
		if p, err := exec.LookPath(name); err == nil && p != "" {
			return true
		}
	}
	for _, p := range []string{
		`/usr/bin/google-chrome`,
		`/usr/bin/chromium-browser`,
		`/usr/bin/chromium`,
		`/snap/bin/chromium`,
		`/Applications/Google Chrome.app/Contents/MacOS/Google Chrome`,
		`/Applications/Chromium.app/Contents/MacOS/Chromium`,
		`C:\Program Files\Google\Chrome\Application\chrome.exe`,
		`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
	} {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}
	return false
}

func svgDocument(svg string) string {
	return `<!DOCTYPE html><html><head><meta charset="utf-8"><style>html,body{margin:0;padding:0;background:#fff}svg{width:100vw;height:100vh}</style></head><body>` +
		svg + `</body></html>`
}
