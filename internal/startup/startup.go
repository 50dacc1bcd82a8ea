package startup

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"drive-gallery/internal/logging"

	"github.com/gorilla/mux"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information.
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// Config holds all application configuration.
type Config struct {
	GalleryDir  string
	Port        string
	CacheSize   int
	RowsPerPage int
	OrganizeTTL time.Duration

	WatchEnabled    bool
	LogStaticFiles  bool
	LogHealthChecks bool
}

// LoadConfig loads and validates configuration from environment
// variables.
func LoadConfig() (*Config, error) {
	printBanner()
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	galleryDir := getEnv("GALLERY_DIR", "/gallery")
	port := getEnv("PORT", "8080")
	cacheSize := getEnvInt("CACHE_ENTRIES", 100)
	rowsPerPage := getEnvInt("ROWS_PER_PAGE", 3)
	organizeTTLStr := getEnv("ORGANIZE_TTL", "5m")
	watchEnabled := getEnvBool("WATCH_GALLERY", true)
	logStaticFiles := getEnvBool("LOG_STATIC_FILES", false)
	logHealthChecks := getEnvBool("LOG_HEALTH_CHECKS", true)

	logging.Info("  GALLERY_DIR:       %s", galleryDir)
	logging.Info("  PORT:              %s", port)
	logging.Info("  CACHE_ENTRIES:     %d", cacheSize)
	logging.Info("  ROWS_PER_PAGE:     %d", rowsPerPage)
	logging.Info("  ORGANIZE_TTL:      %s", organizeTTLStr)
	logging.Info("  WATCH_GALLERY:     %v", watchEnabled)
	logging.Info("  LOG_STATIC_FILES:  %v", logStaticFiles)
	logging.Info("  LOG_HEALTH_CHECKS: %v", logHealthChecks)
	logging.Info("  LOG_LEVEL:         %s", logging.GetLevel())

	organizeTTL, err := time.ParseDuration(organizeTTLStr)
	if err != nil {
		logging.Warn("  Invalid ORGANIZE_TTL, using default: 5m")
		organizeTTL = 5 * time.Minute
	}

	info, err := os.Stat(galleryDir)
	if err != nil {
		return nil, fmt.Errorf("gallery directory %s is not accessible: %w", galleryDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("gallery path %s is not a directory", galleryDir)
	}

	if cacheSize <= 0 {
		logging.Warn("  Invalid CACHE_ENTRIES, using default: 100")
		cacheSize = 100
	}
	if rowsPerPage <= 0 {
		logging.Warn("  Invalid ROWS_PER_PAGE, using default: 3")
		rowsPerPage = 3
	}

	logging.Info("------------------------------------------------------------")

	return &Config{
		GalleryDir:      galleryDir,
		Port:            port,
		CacheSize:       cacheSize,
		RowsPerPage:     rowsPerPage,
		OrganizeTTL:     organizeTTL,
		WatchEnabled:    watchEnabled,
		LogStaticFiles:  logStaticFiles,
		LogHealthChecks: logHealthChecks,
	}, nil
}

func printBanner() {
	logging.Printf("============================================================")
	logging.Printf("  drive-gallery %s (%s)", Version, Commit)
	logging.Printf("============================================================")
}

func logSystemInfo() {
	logging.Info("Go: %s, OS: %s/%s, CPUs: %d (GOMAXPROCS: %d)",
		GoVersion, runtime.GOOS, runtime.GOARCH, runtime.NumCPU(), runtime.GOMAXPROCS(0))
}

// LogHTTPRoutes walks the router and logs every registered route.
func LogHTTPRoutes(router *mux.Router) {
	logging.Info("------------------------------------------------------------")
	logging.Info("HTTP ROUTES")
	logging.Info("------------------------------------------------------------")

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil {
			return nil //nolint:nilerr // routes without templates are skipped
		}
		methods, err := route.GetMethods()
		if err != nil {
			logging.Info("  *       %s", path)
			return nil //nolint:nilerr // routes without methods are logged without one
		}
		for _, m := range methods {
			logging.Info("  %-7s %s", m, path)
		}
		return nil
	})
	if err != nil {
		logging.Warn("failed to walk routes: %v", err)
	}
	logging.Info("------------------------------------------------------------")
}

// LogServerStarted logs the final startup line with total boot time.
func LogServerStarted(port string, bootTime time.Duration) {
	logging.Info("Server listening on :%s (started in %v)", port, bootTime)
}

// LogFatal logs a fatal error and exits.
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		logging.Warn("  Invalid %s value %q, using default: %d", key, value, fallback)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		logging.Warn("  Invalid %s value %q, using default: %v", key, value, fallback)
	}
	return fallback
}
