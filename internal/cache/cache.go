package cache

import "time"

const (
	dashboardKey = "fitprogress::dashboard"

	DefaultDashboardTTL = 10 * time.Minute
	DefaultChartTTL     = 6 * time.Hour
	megabyte            = 1024 * 1024
	// freecache rejects entries larger than 1/1024 of its size, so charts up to ~128KB fit
	DefaultChartCacheSize = 128 * megabyte
)
